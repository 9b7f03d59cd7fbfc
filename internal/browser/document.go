package browser

import (
	"context"
	"fmt"
	"time"

	"applypilot-engine/internal/page"

	"github.com/avast/retry-go/v4"
	"github.com/playwright-community/playwright-go"
)

const (
	readyPollDelay = 250 * time.Millisecond
	readyAttempts  = 40
)

type document struct {
	pg playwright.Page

	// targetSeq numbers hit-test markers so each resolved coordinate keeps a
	// locator that survives later hit tests.
	targetSeq int
}

func (d *document) Title() string {
	t, _ := d.pg.Title()
	return t
}

func (d *document) Root() page.Element {
	return &element{pg: d.pg, loc: d.pg.Locator("html").First(), key: "html"}
}

func (d *document) Find(selector string) []page.Element {
	return wrapAll(d.pg, d.pg.Locator(selector), selector)
}

func (d *document) First(selector string) page.Element {
	loc := d.pg.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil
	}
	return &element{pg: d.pg, loc: loc.First(), key: selector + "[0]"}
}

// ElementAt hit-tests the page and stamps the found element with a numbered
// marker attribute, so the returned locator re-resolves to that exact element.
func (d *document) ElementAt(x, y float64) page.Element {
	d.targetSeq++
	mark := fmt.Sprintf("%d", d.targetSeq)

	hit, err := d.pg.Evaluate(`([x, y, mark]) => {
		const el = document.elementFromPoint(x, y);
		if (!el) return false;
		el.setAttribute('data-apt-target', mark);
		return true;
	}`, []any{x, y, mark})
	if err != nil {
		return nil
	}
	if ok, _ := hit.(bool); !ok {
		return nil
	}

	sel := fmt.Sprintf(`[data-apt-target=%q]`, mark)
	return &element{pg: d.pg, loc: d.pg.Locator(sel).First(), key: sel}
}

func (d *document) WaitReady(ctx context.Context) error {
	return retry.Do(
		func() error {
			state, err := d.pg.Evaluate(`() => document.readyState`)
			if err != nil {
				return err
			}
			if s, _ := state.(string); s != "complete" {
				return fmt.Errorf("document readyState %q", s)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(readyAttempts),
		retry.Delay(readyPollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (d *document) ClearHighlights() {
	_, _ = d.pg.Evaluate(`() => {
		for (const el of document.querySelectorAll('[data-apt-highlight]')) {
			el.removeAttribute('data-apt-highlight');
			el.style.outline = '';
		}
	}`)
}

func wrapAll(pg playwright.Page, loc playwright.Locator, key string) []page.Element {
	n, err := loc.Count()
	if err != nil {
		return nil
	}
	out := make([]page.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &element{
			pg:  pg,
			loc: loc.Nth(i),
			key: fmt.Sprintf("%s[%d]", key, i),
		})
	}
	return out
}
