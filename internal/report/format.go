// Package report renders a finished extraction run as a plain-text file in
// the data directory.
package report

import (
	"fmt"
	"strings"
	"time"

	"applypilot-engine/internal/extract"
)

const rule = "================================================================================"

// Render produces the text body for a set of records. Record order is
// preserved as captured.
func Render(records []extract.Record, q extract.Query, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Job Search Results\n")
	b.WriteString("Search Query: " + q.Title)
	if q.Location != "" {
		b.WriteString(" in " + q.Location)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Search Date: %s\n", generatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Jobs Found: %d\n", len(records))
	b.WriteString("Generated by: ApplyPilot Engine\n\n")
	b.WriteString(rule + "\n\n")

	for i, r := range records {
		fmt.Fprintf(&b, "JOB #%d\n", i+1)
		b.WriteString(rule + "\n")
		b.WriteString("Title: " + r.Title + "\n")
		b.WriteString("Company: " + r.Company + "\n")
		b.WriteString("Location: " + r.Location + "\n")
		b.WriteString("Posted: " + r.Posted + "\n")
		b.WriteString("Job ID: " + r.ID + "\n")
		b.WriteString("Link: " + r.DetailLink + "\n\n")

		b.WriteString("Description:\n")
		if r.Description != "" {
			b.WriteString(r.Description + "\n\n")
		} else {
			b.WriteString("No description available\n\n")
		}

		fmt.Fprintf(&b, "Captured: %s\n\n", r.CapturedAt.Format("2006-01-02 15:04:05"))
		b.WriteString(rule + "\n\n")
	}

	return b.String()
}
