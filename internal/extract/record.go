// Package extract drives the page-by-page listing crawl: wait for content,
// pull records through selector cascades, accumulate, advance, terminate.
package extract

import "time"

// Record is one listing pulled out of a results page. Two records with the
// same DetailLink represent the same listing, but no dedup is enforced
// across pages.
type Record struct {
	ID          string    `json:"id,omitempty"` // derived from the detail link, may be empty
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Posted      string    `json:"posted,omitempty"`
	DetailLink  string    `json:"detailLink,omitempty"`
	Description string    `json:"description,omitempty"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Query names what the crawl was asked to look for.
type Query struct {
	Title    string `json:"title"`
	Location string `json:"location"`
}
