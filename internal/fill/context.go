package fill

import (
	"strings"

	"applypilot-engine/internal/page"
	"applypilot-engine/internal/textutil"
)

const (
	sectionCap     = 200
	pageContextCap = 400
)

// PageContext builds the bounded context string sent along with every oracle
// request: page title, the target section's text, and heading text. target
// may be nil for whole-page fills.
func PageContext(doc page.Document, target page.Element) string {
	var headings []string
	for _, h := range doc.Find("h1, h2, h3") {
		if t := h.Text(); t != "" {
			headings = append(headings, t)
		}
	}

	parts := []string{"Page: " + doc.Title()}
	if target != nil {
		parts = append(parts, "Section: "+textutil.Truncate(target.Text(), sectionCap))
	}
	parts = append(parts, "Headings: "+strings.Join(headings, " "))

	return textutil.Truncate(strings.Join(parts, " | "), pageContextCap)
}
