package launchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultBaseURL is the Launch Library 2 launch endpoint.
const DefaultBaseURL = "https://lldev.thespacedevs.com/2.2.0/launch"

// ErrNotFound is returned when the data source has no launch matching a query.
var ErrNotFound = errors.New("launch not found")

const historyPageLimit = 5

// Config holds the data source connection details.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Cache is optional; when set, raw responses are cached per request URL.
	Cache    *redis.Client
	CacheTTL time.Duration
}

// Client queries the external launch data source and normalizes its paginated
// JSON into the application's flat record shapes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
}

// NewClient creates a new data source client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cfg.Cache,
		cacheTTL:   cacheTTL,
	}
}

// apiResponse mirrors the data source's paginated envelope.
type apiResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []apiLaunch `json:"results"`
}

// apiLaunch mirrors one raw launch result. Only the fields the normalizer
// reads are declared.
type apiLaunch struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Net    string `json:"net"`
	Image  string `json:"image"`
	Status struct {
		Name string `json:"name"`
	} `json:"status"`
	Mission *struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Orbit       struct {
			Name string `json:"name"`
		} `json:"orbit"`
	} `json:"mission"`
	Rocket *struct {
		Configuration struct {
			Name    string `json:"name"`
			Family  string `json:"family"`
			Variant string `json:"variant"`
		} `json:"configuration"`
	} `json:"rocket"`
	Pad *struct {
		Name     string `json:"name"`
		MapURL   string `json:"map_url"`
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"pad"`
	LaunchServiceProvider *struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		ImageURL string `json:"image_url"`
	} `json:"launch_service_provider"`
}

// List returns one page of launches ordered by ascending scheduled time.
// pageURL, when non-empty, is a next/previous token from a prior Pagination
// and is followed verbatim.
func (c *Client) List(ctx context.Context, pageURL string) ([]Record, *Pagination, error) {
	requestURL := pageURL
	if requestURL == "" {
		params := url.Values{}
		params.Set("ordering", "net")
		requestURL = c.baseURL + "?" + params.Encode()
	}

	data, err := c.fetch(ctx, requestURL)
	if err != nil {
		return nil, nil, err
	}

	records := make([]Record, 0, len(data.Results))
	for _, launch := range data.Results {
		records = append(records, normalize(launch))
	}
	return records, paginationOf(data), nil
}

// Search returns launches matching the free-text term. A zero-match result
// from the source is reported as nil records with no error.
func (c *Client) Search(ctx context.Context, pageURL, term string) ([]Record, *Pagination, error) {
	requestURL := pageURL
	if requestURL == "" {
		params := url.Values{}
		params.Set("ordering", "net")
		params.Set("search", term)
		requestURL = c.baseURL + "?" + params.Encode()
	}

	data, err := c.fetch(ctx, requestURL)
	if err != nil {
		return nil, nil, err
	}
	if data.Count == 0 {
		return nil, nil, nil
	}

	records := make([]Record, 0, len(data.Results))
	for _, launch := range data.Results {
		records = append(records, normalize(launch))
	}
	return records, paginationOf(data), nil
}

// GetByName looks up a single launch by exact name match and returns one
// structured record with nested rocket, mission and pad info. Returns
// ErrNotFound when the source has no launch of that name.
func (c *Client) GetByName(ctx context.Context, name string) (*LaunchDetail, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("mode", "detailed")

	data, err := c.fetch(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	// The source does prefix/fuzzy matching on search; insist on the exact name.
	for _, launch := range data.Results {
		if launch.Name == name {
			detail := normalizeDetail(launch)
			return &detail, nil
		}
	}
	return nil, fmt.Errorf("launch %q: %w", name, ErrNotFound)
}

// History returns launches whose scheduled time falls inside [start, end],
// limited to small detailed pages. nextURL, when non-empty, continues a prior
// query; the returned string is the token for the following page, empty at
// the end.
func (c *Client) History(ctx context.Context, start, end time.Time, nextURL string) ([]HistoryRecord, string, error) {
	requestURL := nextURL
	if requestURL == "" {
		params := url.Values{}
		params.Set("net__gte", start.Format(time.RFC3339))
		params.Set("net__lte", end.Format(time.RFC3339))
		params.Set("mode", "detailed")
		params.Set("limit", fmt.Sprintf("%d", historyPageLimit))
		params.Set("ordering", "net")
		requestURL = c.baseURL + "?" + params.Encode()
	}

	data, err := c.fetch(ctx, requestURL)
	if err != nil {
		return nil, "", err
	}

	records := make([]HistoryRecord, 0, len(data.Results))
	for _, launch := range data.Results {
		record := HistoryRecord{
			Name: launch.Name,
			Date: launch.Net,
		}
		if launch.LaunchServiceProvider != nil {
			record.ProviderImageURL = launch.LaunchServiceProvider.ImageURL
		}
		records = append(records, record)
	}

	next := ""
	if data.Next != nil {
		next = *data.Next
	}
	return records, next, nil
}

// fetch performs one GET against the data source, going through the response
// cache when one is configured.
func (c *Client) fetch(ctx context.Context, requestURL string) (*apiResponse, error) {
	cacheKey := "launchapi:" + requestURL

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var data apiResponse
			if err := json.Unmarshal(cached, &data); err == nil {
				return &data, nil
			}
			// Corrupt cache entry; fall through to the source.
		} else if err != redis.Nil {
			log.Printf("launch data cache read failed: %v", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build launch data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("launch data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("launch data source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch data response: %w", err)
	}

	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode launch data response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL).Err(); err != nil {
			log.Printf("launch data cache write failed: %v", err)
		}
	}

	return &data, nil
}

// normalize maps one raw result onto the flat record shape.
func normalize(launch apiLaunch) Record {
	record := Record{
		ID:       launch.ID,
		Date:     launch.Net,
		Name:     launch.Name,
		Status:   launch.Status.Name,
		ImageURL: launch.Image,
	}
	if launch.Mission != nil {
		record.Description = launch.Mission.Description
	}
	if launch.LaunchServiceProvider != nil {
		record.Organization = launch.LaunchServiceProvider.Name
		record.OrganizationType = launch.LaunchServiceProvider.Type
	}
	if launch.Pad != nil {
		record.Location = launch.Pad.Location.Name
	}
	return record
}

// normalizeDetail extends normalize with the rocket, mission and pad
// sub-records.
func normalizeDetail(launch apiLaunch) LaunchDetail {
	detail := LaunchDetail{Record: normalize(launch)}
	if launch.Rocket != nil {
		detail.Rocket = RocketInfo{
			Name:    launch.Rocket.Configuration.Name,
			Family:  launch.Rocket.Configuration.Family,
			Variant: launch.Rocket.Configuration.Variant,
		}
	}
	if launch.Mission != nil {
		detail.Mission = MissionInfo{
			Name:        launch.Mission.Name,
			Description: launch.Mission.Description,
			Type:        launch.Mission.Type,
			Orbit:       launch.Mission.Orbit.Name,
		}
	}
	if launch.Pad != nil {
		detail.Pad = PadInfo{
			Name:     launch.Pad.Name,
			Location: launch.Pad.Location.Name,
			MapURL:   launch.Pad.MapURL,
		}
	}
	return detail
}

func paginationOf(data *apiResponse) *Pagination {
	p := &Pagination{Count: data.Count}
	if data.Next != nil {
		p.Next = *data.Next
	}
	if data.Previous != nil {
		p.Previous = *data.Previous
	}
	return p
}
