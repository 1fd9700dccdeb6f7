package handlers

import (
	"errors"
	"log"
	"net/url"
	"time"

	"launchtracker/internal/launchapi"

	"github.com/gofiber/fiber/v2"
)

// LaunchHandler handles HTTP requests for browsing the external launch data.
type LaunchHandler struct {
	client *launchapi.Client
}

// NewLaunchHandler creates a new LaunchHandler.
func NewLaunchHandler(client *launchapi.Client) *LaunchHandler {
	return &LaunchHandler{
		client: client,
	}
}

// RegisterRoutes registers the launch browsing routes with the Fiber app.
// Fixed paths go first so they are not swallowed by the :name parameter.
func (h *LaunchHandler) RegisterRoutes(router fiber.Router) {
	launchRoutes := router.Group("/launches")
	launchRoutes.Get("/", h.HandleListLaunches)
	launchRoutes.Get("/search", h.HandleSearchLaunches)
	launchRoutes.Get("/history", h.HandleHistory)
	launchRoutes.Get("/:name", h.HandleGetLaunch)
}

// HandleListLaunches returns one page of upcoming launches ordered by
// scheduled time. ?page= carries a next/previous token from a prior response.
func (h *LaunchHandler) HandleListLaunches(c *fiber.Ctx) error {
	pageURL := c.Query("page")
	records, pagination, err := h.client.List(c.Context(), pageURL)
	if err != nil {
		log.Printf("Error listing launches: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Launch data source unavailable",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"launches":   records,
		"pagination": pagination,
	})
}

// HandleSearchLaunches returns launches matching the free-text ?q= term.
func (h *LaunchHandler) HandleSearchLaunches(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'q' is required",
		})
	}

	records, pagination, err := h.client.Search(c.Context(), c.Query("page"), term)
	if err != nil {
		log.Printf("Error searching launches for %q: %v", term, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Launch data source unavailable",
			"error":   err.Error(),
		})
	}
	if records == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No launches matched the search term",
		})
	}
	return c.JSON(fiber.Map{
		"launches":   records,
		"pagination": pagination,
	})
}

// HandleHistory returns launches scheduled inside the ?start=/?end= range.
// ?next= continues a prior query.
func (h *LaunchHandler) HandleHistory(c *fiber.Ctx) error {
	nextURL := c.Query("next")

	var start, end time.Time
	if nextURL == "" {
		var err error
		start, err = parseDate(c.Query("start"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'start' must be a date (2006-01-02 or RFC3339)",
			})
		}
		end, err = parseDate(c.Query("end"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'end' must be a date (2006-01-02 or RFC3339)",
			})
		}
	}

	records, next, err := h.client.History(c.Context(), start, end, nextURL)
	if err != nil {
		log.Printf("Error fetching launch history: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Launch data source unavailable",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"launches": records,
		"next":     next,
	})
}

// HandleGetLaunch returns one launch by exact name with nested rocket,
// mission and pad info.
func (h *LaunchHandler) HandleGetLaunch(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}

	detail, err := h.client.GetByName(c.Context(), name)
	if err != nil {
		if errors.Is(err, launchapi.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Launch not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error getting launch %q: %v", name, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Launch data source unavailable",
			"error":   err.Error(),
		})
	}
	return c.JSON(detail)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
