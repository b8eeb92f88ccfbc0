// Package types contains the JSON shapes of a raffle report.
package types

// Standing is one donor's line in a report.
type Standing struct {
	Identity string `json:"identity"`
	Name     string `json:"name,omitempty"`
	Total    int64  `json:"total"`
	Entries  int64  `json:"entries"`
}

// Winner identifies the drawn donor.
type Winner struct {
	Identity string `json:"identity"`
	Name     string `json:"name,omitempty"`
	Label    string `json:"label"`
}

// Report is the machine-readable result of a run.
type Report struct {
	DrawID       string     `json:"draw_id"`
	Donors       int        `json:"donors"`
	TotalRaised  int64      `json:"total_raised"`
	TotalEntries int64      `json:"total_entries"`
	Standings    []Standing `json:"standings,omitempty"`
	Winner       *Winner    `json:"winner,omitempty"`
}
