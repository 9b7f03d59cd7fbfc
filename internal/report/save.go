package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"applypilot-engine/internal/extract"
)

// Save renders the run and writes it under dataDir. Returns the full path of
// the written file.
func Save(dataDir string, run extract.Run) (string, error) {
	generated := run.FinishedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	body := Render(run.Records, run.Query, generated)
	name := fmt.Sprintf("jobs_%s_%s.txt", sanitize(run.Query.Title), generated.Format("2006-01-02"))
	path := filepath.Join(dataDir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("finalize report: %w", err)
	}
	return path, nil
}

func sanitize(s string) string {
	if s == "" {
		return "search"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
