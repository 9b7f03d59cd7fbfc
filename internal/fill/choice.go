package fill

import (
	"context"
	"log"
	"strings"

	"applypilot-engine/internal/page"
	"applypilot-engine/internal/textutil"
)

// fillChoice handles single-choice controls. A control with one option or
// none, or a disabled one, has nothing meaningful to choose, so it returns
// false without contacting the oracle.
func (o *Orchestrator) fillChoice(ctx context.Context, doc page.Document, f page.Element, pageCtx string) (bool, error) {
	choices := f.Choices()
	if len(choices) <= 1 || f.Disabled() {
		return false, nil
	}

	// The first entry is conventionally a placeholder ("Select one").
	labels := make([]string, 0, len(choices)-1)
	for _, c := range choices[1:] {
		if l := textutil.Clean(c.Label); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return false, nil
	}

	sig := o.Classifier.Describe(doc, f)
	resp, err := o.Values.ChoiceFor(ctx, sig, labels, pageCtx)
	if err != nil {
		return false, err
	}
	if resp == "" {
		return false, nil
	}

	match := matchChoice(resp, choices)
	if match == nil {
		// No guessing: leave the field at its current state.
		log.Printf("[fill] choice %s: no option matched %q", fieldName(f), textutil.Truncate(resp, 60))
		return false, nil
	}

	f.Highlight()
	if err := f.SelectChoice(match.Value); err != nil {
		return false, err
	}
	log.Printf("[fill] choice %s -> %q", fieldName(f), match.Label)
	return true, nil
}

// matchChoice applies three-tier relaxed equality: exact case-insensitive
// match, then response-contains-label, then label-contains-response. The
// first tier yielding any match wins; ties within a tier go to the first
// choice in document order.
func matchChoice(resp string, choices []page.Choice) *page.Choice {
	r := strings.ToLower(strings.TrimSpace(resp))
	if r == "" {
		return nil
	}

	tiers := []func(label string) bool{
		func(l string) bool { return l == r },
		func(l string) bool { return l != "" && strings.Contains(r, l) },
		func(l string) bool { return strings.Contains(l, r) },
	}

	for _, match := range tiers {
		for i := range choices {
			l := strings.ToLower(strings.TrimSpace(choices[i].Label))
			if match(l) {
				return &choices[i]
			}
		}
	}
	return nil
}
