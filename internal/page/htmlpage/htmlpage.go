// Package htmlpage implements page.Document over a static HTML snapshot.
// It backs snapshot extraction (records from saved search-results pages) and
// gives tests a document with observable writes: every synthetic notification
// raised through SetValue/SelectChoice/Click lands in the event log.
package htmlpage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"applypilot-engine/internal/page"
	"applypilot-engine/internal/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

type hitKey struct{ x, y float64 }

type Document struct {
	doc   *goquery.Document
	title string

	mu       sync.Mutex
	values   map[*html.Node]string
	selected map[*html.Node]string
	events   []string
	hits     map[hitKey]string

	// OnClick, when set, observes every Click raised on the document. The
	// paged test double uses it to swap page content on next-control clicks.
	OnClick func(el page.Element)
}

func New(src string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("htmlpage parse: %w", err)
	}
	return &Document{
		doc:      gq,
		title:    textutil.Clean(gq.Find("title").First().Text()),
		values:   make(map[*html.Node]string),
		selected: make(map[*html.Node]string),
		hits:     make(map[hitKey]string),
	}, nil
}

func (d *Document) Title() string { return d.title }

func (d *Document) Root() page.Element {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	return &element{d: d, sel: body}
}

func (d *Document) Find(selector string) []page.Element {
	return wrapAll(d, d.doc.Find(selector))
}

func (d *Document) First(selector string) page.Element {
	return wrapFirst(d, d.doc.Find(selector))
}

// PlaceAt registers the element matching selector as physically present at
// the given coordinates.
func (d *Document) PlaceAt(x, y float64, selector string) {
	d.mu.Lock()
	d.hits[hitKey{x, y}] = selector
	d.mu.Unlock()
}

func (d *Document) ElementAt(x, y float64) page.Element {
	d.mu.Lock()
	sel, ok := d.hits[hitKey{x, y}]
	d.mu.Unlock()
	if !ok {
		return nil
	}
	return d.First(sel)
}

// WaitReady is immediate: a snapshot is always loaded.
func (d *Document) WaitReady(ctx context.Context) error { return ctx.Err() }

func (d *Document) ClearHighlights() {
	d.doc.Find("[data-apt-highlight]").Each(func(_ int, s *goquery.Selection) {
		s.RemoveAttr("data-apt-highlight")
	})
}

// Events returns the synthetic notifications raised so far, in order, as
// "<tag>#<id or name>:<event>" entries.
func (d *Document) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	copy(out, d.events)
	return out
}

func (d *Document) record(sel *goquery.Selection, event string) {
	name := goquery.NodeName(sel)
	if id, ok := sel.Attr("id"); ok && id != "" {
		name += "#" + id
	} else if nm, ok := sel.Attr("name"); ok && nm != "" {
		name += "#" + nm
	}
	d.mu.Lock()
	d.events = append(d.events, name+":"+event)
	d.mu.Unlock()
}

func wrapAll(d *Document, sel *goquery.Selection) []page.Element {
	out := make([]page.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &element{d: d, sel: s})
	})
	return out
}

func wrapFirst(d *Document, sel *goquery.Selection) page.Element {
	if sel.Length() == 0 {
		return nil
	}
	return &element{d: d, sel: sel.First()}
}

type element struct {
	d   *Document
	sel *goquery.Selection
}

func (e *element) node() *html.Node { return e.sel.Get(0) }

func (e *element) Tag() string { return goquery.NodeName(e.sel) }

func (e *element) Key() string { return fmt.Sprintf("%p", e.node()) }

func (e *element) Kind() page.ControlKind {
	switch e.Tag() {
	case "select":
		return page.KindSelect
	case "textarea":
		return page.KindTextArea
	case "input":
		switch strings.ToLower(e.Attr("type")) {
		case "hidden":
			return page.KindHidden
		case "", "text", "email", "tel", "url", "number", "date", "password":
			if e.isComposite() {
				return page.KindComposite
			}
			return page.KindText
		}
	}
	if e.isComposite() {
		return page.KindComposite
	}
	return page.KindUnknown
}

func (e *element) isComposite() bool {
	return strings.EqualFold(e.Attr("role"), "combobox") || e.HasClass(page.CompositeClassMarker)
}

func (e *element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

func (e *element) HasClass(name string) bool { return e.sel.HasClass(name) }

func (e *element) Text() string { return textutil.Clean(e.sel.Text()) }

func (e *element) Value() string {
	e.d.mu.Lock()
	if v, ok := e.d.values[e.node()]; ok {
		e.d.mu.Unlock()
		return v
	}
	if v, ok := e.d.selected[e.node()]; ok {
		e.d.mu.Unlock()
		return v
	}
	e.d.mu.Unlock()

	switch e.Tag() {
	case "textarea":
		return e.sel.Text()
	case "select":
		val := ""
		e.sel.Find("option").EachWithBreak(func(i int, opt *goquery.Selection) bool {
			v := optionValue(opt)
			if i == 0 {
				val = v // browser default: first option
			}
			if _, ok := opt.Attr("selected"); ok {
				val = v
				return false
			}
			return true
		})
		return val
	default:
		return e.Attr("value")
	}
}

func (e *element) Disabled() bool {
	_, ok := e.sel.Attr("disabled")
	return ok
}

func (e *element) ReadOnly() bool {
	_, ok := e.sel.Attr("readonly")
	return ok
}

func (e *element) SetValue(v string) error {
	e.d.mu.Lock()
	e.d.values[e.node()] = v
	e.d.mu.Unlock()
	e.d.record(e.sel, "input")
	e.d.record(e.sel, "change")
	e.d.record(e.sel, "blur")
	return nil
}

func (e *element) Choices() []page.Choice {
	var out []page.Choice
	e.sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		out = append(out, page.Choice{
			Label: textutil.Clean(opt.Text()),
			Value: optionValue(opt),
		})
	})
	return out
}

func (e *element) SelectChoice(value string) error {
	e.d.mu.Lock()
	e.d.selected[e.node()] = value
	e.d.mu.Unlock()
	e.d.record(e.sel, "change")
	return nil
}

func (e *element) Click() error {
	e.d.record(e.sel, "click")
	if e.d.OnClick != nil {
		e.d.OnClick(e)
	}
	return nil
}

func (e *element) Parent() page.Element {
	p := e.sel.Parent()
	if p.Length() == 0 || goquery.NodeName(p) == "#document" {
		return nil
	}
	return &element{d: e.d, sel: p}
}

func (e *element) PrevSibling() page.Element { return wrapFirst(e.d, e.sel.Prev()) }
func (e *element) NextSibling() page.Element { return wrapFirst(e.d, e.sel.Next()) }

func (e *element) Find(selector string) []page.Element {
	return wrapAll(e.d, e.sel.Find(selector))
}

func (e *element) First(selector string) page.Element {
	return wrapFirst(e.d, e.sel.Find(selector))
}

func (e *element) Highlight() { e.sel.SetAttr("data-apt-highlight", "1") }

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return textutil.Clean(opt.Text())
}
