package browser

import (
	"strings"

	"applypilot-engine/internal/page"

	"github.com/playwright-community/playwright-go"
)

type element struct {
	pg  playwright.Page
	loc playwright.Locator
	key string
}

func (e *element) Tag() string {
	v, err := e.loc.Evaluate(`el => el.tagName.toLowerCase()`, nil)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

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

func (e *element) Key() string { return e.key }

func (e *element) Attr(name string) string {
	v, err := e.loc.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

func (e *element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

func (e *element) Text() string {
	t, err := e.loc.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

func (e *element) Value() string {
	v, err := e.loc.InputValue()
	if err != nil {
		return ""
	}
	return v
}

func (e *element) Disabled() bool {
	d, err := e.loc.IsDisabled()
	return err == nil && d
}

func (e *element) ReadOnly() bool {
	v, err := e.loc.Evaluate(`el => !!el.readOnly`, nil)
	if err != nil {
		return false
	}
	ro, _ := v.(bool)
	return ro
}

// SetValue types the value then raises change and blur, so host page
// frameworks tracking controlled inputs observe the edit.
func (e *element) SetValue(v string) error {
	if err := e.loc.Fill(v); err != nil {
		return err
	}
	if err := e.loc.DispatchEvent("change", nil); err != nil {
		return err
	}
	return e.loc.Blur()
}

func (e *element) Choices() []page.Choice {
	v, err := e.loc.Evaluate(`el => Array.from(el.options || []).map(o => ({
		label: (o.label || o.textContent || '').trim(),
		value: o.value,
	}))`, nil)
	if err != nil {
		return nil
	}
	raw, _ := v.([]any)
	out := make([]page.Choice, 0, len(raw))
	for _, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		label, _ := m["label"].(string)
		value, _ := m["value"].(string)
		out = append(out, page.Choice{Label: label, Value: value})
	}
	return out
}

func (e *element) SelectChoice(value string) error {
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}})
	return err
}

func (e *element) Click() error { return e.loc.Click() }

func (e *element) Parent() page.Element {
	return e.related("xpath=..", e.key+"/..")
}

func (e *element) PrevSibling() page.Element {
	return e.related("xpath=preceding-sibling::*[1]", e.key+"/prev")
}

func (e *element) NextSibling() page.Element {
	return e.related("xpath=following-sibling::*[1]", e.key+"/next")
}

func (e *element) related(expr, key string) page.Element {
	loc := e.loc.Locator(expr)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil
	}
	return &element{pg: e.pg, loc: loc.First(), key: key}
}

func (e *element) Find(selector string) []page.Element {
	return wrapAll(e.pg, e.loc.Locator(selector), e.key+"/"+selector)
}

func (e *element) First(selector string) page.Element {
	loc := e.loc.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil
	}
	return &element{pg: e.pg, loc: loc.First(), key: e.key + "/" + selector + "[0]"}
}

func (e *element) Highlight() {
	_, _ = e.loc.Evaluate(`el => {
		el.setAttribute('data-apt-highlight', '1');
		el.style.outline = '2px solid #ff9800';
	}`, nil)
}
