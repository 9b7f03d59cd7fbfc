package extract

import "time"

// Run is the state of one end-to-end extraction: created on start, mutated
// once per page, closed out when the loop terminates. Records live only in
// memory for the duration of the run.
type Run struct {
	ID          string
	Query       Query
	PageLimit   int
	CurrentPage int
	Records     []Record
	StartedAt   time.Time
	FinishedAt  time.Time
	Err         string
}

// Status is the externally visible snapshot of the runner.
type Status struct {
	Running     bool   `json:"running"`
	RunID       string `json:"run_id,omitempty"`
	CurrentPage int    `json:"current_page"`
	PageLimit   int    `json:"page_limit"`
	Found       int    `json:"found"`
	Query       Query  `json:"query"`
	StartedAt   string `json:"started_at,omitempty"`
	FinishedAt  string `json:"finished_at,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}
