package fill

import (
	"strings"

	"applypilot-engine/internal/page"
)

// ClearFields resets every writable text control and selection on the page,
// raising the usual notifications, and returns how many were touched.
func ClearFields(doc page.Document) int {
	cleared := 0

	sel := `input[type="text"], input[type="email"], input[type="tel"], ` +
		`input[type="url"], input[type="number"], input[type="date"], textarea`
	for _, el := range doc.Find(sel) {
		if el.Disabled() || el.ReadOnly() {
			continue
		}
		if err := el.SetValue(""); err == nil {
			cleared++
		}
	}

	for _, el := range doc.Find("select") {
		choices := el.Choices()
		if len(choices) == 0 || el.Disabled() {
			continue
		}
		if strings.TrimSpace(el.Value()) == choices[0].Value {
			continue
		}
		if err := el.SelectChoice(choices[0].Value); err == nil {
			cleared++
		}
	}

	return cleared
}

// Analysis is a quick census of a page's interactive surface.
type Analysis struct {
	InputFields int `json:"inputFields"`
	Forms       int `json:"forms"`
	Buttons     int `json:"buttons"`
}

func Analyze(doc page.Document) Analysis {
	return Analysis{
		InputFields: len(doc.Find("input, textarea, select")),
		Forms:       len(doc.Find("form")),
		Buttons:     len(doc.Find(`button, input[type="submit"]`)),
	}
}
