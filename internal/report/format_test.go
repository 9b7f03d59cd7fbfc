package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []extract.Record {
	captured := time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC)
	return []extract.Record{
		{
			ID:          "4111111111",
			Title:       "Backend Engineer",
			Company:     "Acme Corp",
			Location:    "Austin, TX",
			Posted:      "4 days ago",
			DetailLink:  "https://www.linkedin.com/jobs/view/4111111111",
			Description: "Build and run Go services.",
			CapturedAt:  captured,
		},
		{
			Title:      "SRE",
			Company:    "Globex",
			CapturedAt: captured,
		},
	}
}

func TestRender(t *testing.T) {
	generated := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	body := report.Render(sampleRecords(), extract.Query{Title: "Backend Engineer", Location: "Austin"}, generated)

	assert.True(t, strings.HasPrefix(body, "# Job Search Results\n"))
	assert.Contains(t, body, "Search Query: Backend Engineer in Austin\n")
	assert.Contains(t, body, "Search Date: 2026-08-30\n")
	assert.Contains(t, body, "Total Jobs Found: 2\n")
	assert.Contains(t, body, "Generated by: ApplyPilot Engine\n")

	// Records appear in captured order.
	assert.Less(t, strings.Index(body, "JOB #1"), strings.Index(body, "JOB #2"))
	assert.Contains(t, body, "Title: Backend Engineer\n")
	assert.Contains(t, body, "Company: Acme Corp\n")
	assert.Contains(t, body, "Link: https://www.linkedin.com/jobs/view/4111111111\n")
	assert.Contains(t, body, "Build and run Go services.\n")
	assert.Contains(t, body, "Captured: 2026-08-30 09:15:00\n")

	// The record with no description carries the placeholder instead.
	assert.Contains(t, body, "No description available\n")
}

func TestRenderOmitsLocationlessQuerySuffix(t *testing.T) {
	body := report.Render(nil, extract.Query{Title: "sre"}, time.Now())
	assert.Contains(t, body, "Search Query: sre\n")
	assert.NotContains(t, body, " in ")
	assert.Contains(t, body, "Total Jobs Found: 0\n")
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	run := extract.Run{
		Query:      extract.Query{Title: "Backend Engineer"},
		Records:    sampleRecords(),
		FinishedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	path, err := report.Save(dir, run)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobs_backend_engineer_2026-08-30.txt"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "JOB #2")

	// No temp file is left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveEmptyQueryTitle(t *testing.T) {
	dir := t.TempDir()
	path, err := report.Save(dir, extract.Run{FinishedAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	assert.Equal(t, "jobs_search_1970-01-01.txt", filepath.Base(path))
}
