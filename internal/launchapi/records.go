package launchapi

// Record is the flat launch shape handed to the rest of the application.
type Record struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	Organization     string `json:"organization"`
	OrganizationType string `json:"organization_type"`
	Location         string `json:"location"`
}

// RocketInfo describes the launch vehicle.
type RocketInfo struct {
	Name    string `json:"name"`
	Family  string `json:"family"`
	Variant string `json:"variant"`
}

// MissionInfo describes the payload mission.
type MissionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Orbit       string `json:"orbit"`
}

// PadInfo describes the launch pad.
type PadInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	MapURL   string `json:"map_url"`
}

// LaunchDetail is the full record for a single launch: the flat core fields
// plus the rocket, mission and pad sub-records as named fields.
type LaunchDetail struct {
	Record
	Rocket  RocketInfo  `json:"rocket"`
	Mission MissionInfo `json:"mission"`
	Pad     PadInfo     `json:"pad"`
}

// HistoryRecord is the reduced shape returned by historical range queries.
type HistoryRecord struct {
	Name             string `json:"name"`
	Date             string `json:"date"`
	ProviderImageURL string `json:"provider_image_url"`
}

// Pagination carries the data source's paging tokens alongside a page of
// records.
type Pagination struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
}
