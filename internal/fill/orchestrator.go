package fill

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"applypilot-engine/internal/page"
)

// ValueSource synthesizes field values. The oracle package implements it;
// tests plug in counters and canned responses.
type ValueSource interface {
	// ValueFor returns a value for a free-text field. An empty result is a
	// failure at the call site, not here.
	ValueFor(ctx context.Context, sig Signature, pageContext string) (string, error)

	// ChoiceFor returns the label of the best-fitting choice among options.
	ChoiceFor(ctx context.Context, sig Signature, options []string, pageContext string) (string, error)
}

// Outcome reports one fill batch. Zero filled fields with no errors is a
// valid outcome, not a failure.
type Outcome struct {
	Filled int      `json:"filled"`
	Errors []string `json:"errors,omitempty"`
}

const defaultPace = 300 * time.Millisecond

// Orchestrator walks discovered fields in order and fills each one through
// the ValueSource. Strictly sequential: at most one oracle request is ever in
// flight.
type Orchestrator struct {
	Values     ValueSource
	Classifier Classifier

	// Pace is the pause after every successful fill, letting page-side
	// reactive logic settle before the next mutation. Defaults to 300ms.
	Pace time.Duration
}

// FillTarget resolves a target from coordinates (or the last known element),
// collects its fillable fields and fills them. The resolved target is
// returned so callers can reuse it on a later request with no coordinates.
// Returns ErrNoTarget or ErrNoFields when there is nothing to work on.
func (o *Orchestrator) FillTarget(ctx context.Context, doc page.Document, x, y float64, last page.Element) (Outcome, page.Element, error) {
	target, err := ResolveTarget(doc, x, y, last)
	if err != nil {
		return Outcome{}, nil, err
	}

	target.Highlight()
	defer doc.ClearHighlights()

	fields := CollectFillableFields(target)
	if len(fields) == 0 {
		return Outcome{}, target, ErrNoFields
	}
	log.Printf("[fill] target resolved, %d fillable fields", len(fields))

	return o.fillAll(ctx, doc, fields, PageContext(doc, target)), target, nil
}

// FillDocument fills every eligible field in the whole document.
func (o *Orchestrator) FillDocument(ctx context.Context, doc page.Document) (Outcome, error) {
	root := doc.Root()
	if root == nil {
		return Outcome{}, ErrNoTarget
	}
	fields := CollectFillableFields(root)
	if len(fields) == 0 {
		return Outcome{}, ErrNoFields
	}
	log.Printf("[fill] whole page, %d fillable fields", len(fields))

	return o.fillAll(ctx, doc, fields, PageContext(doc, nil)), nil
}

func (o *Orchestrator) fillAll(ctx context.Context, doc page.Document, fields []page.Element, pageCtx string) Outcome {
	var out Outcome
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			out.Errors = append(out.Errors, err.Error())
			break
		}

		// A pre-filled field is left alone, except single-choice controls:
		// a default selection is not "already filled".
		if !selectLike(f) && strings.TrimSpace(f.Value()) != "" {
			continue
		}

		filled, err := o.fillOne(ctx, doc, f, pageCtx)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("field %s: %v", fieldName(f), err))
			continue
		}
		if filled {
			out.Filled++
			o.pause()
		}
	}
	return out
}

func (o *Orchestrator) fillOne(ctx context.Context, doc page.Document, f page.Element, pageCtx string) (bool, error) {
	if selectLike(f) {
		return o.fillChoice(ctx, doc, f, pageCtx)
	}

	sig := o.Classifier.Describe(doc, f)
	log.Printf("[fill] field=%s kind=%s", fieldName(f), sig.Kind)

	val, err := o.Values.ValueFor(ctx, sig, pageCtx)
	if err != nil {
		return false, err
	}
	if val == "" {
		return false, fmt.Errorf("empty value for kind %s", sig.Kind)
	}

	f.Highlight()
	if err := f.SetValue(val); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	return true, nil
}

func (o *Orchestrator) pause() {
	d := o.Pace
	if d <= 0 {
		d = defaultPace
	}
	time.Sleep(d)
}

func selectLike(f page.Element) bool {
	k := f.Kind()
	return k == page.KindSelect || k == page.KindComposite
}

func fieldName(f page.Element) string {
	if id := f.Attr("id"); id != "" {
		return f.Tag() + "#" + id
	}
	if n := f.Attr("name"); n != "" {
		return f.Tag() + "#" + n
	}
	return f.Tag()
}
