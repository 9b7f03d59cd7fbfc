package fill

import (
	"applypilot-engine/internal/page"
)

// fieldSelectors are the structural queries run against a target subtree to
// discover fillable controls. Order matters only for result ordering, not
// correctness.
var fieldSelectors = []string{
	`input[type="text"]`,
	`input[type="email"]`,
	`input[type="tel"]`,
	`input[type="url"]`,
	`input[type="number"]`,
	`input[type="date"]`,
	`input[type="password"]`,
	"textarea",
	"select",
	`input[role="combobox"]`,
	"." + page.CompositeClassMarker,
}

// maxAncestorWalk bounds the upward fallback. A click target is frequently a
// decorative wrapper a level or two below the actual form container;
// unbounded walking risks matching the whole page.
const maxAncestorWalk = 3

// ResolveTarget returns the element at the given coordinates, falling back to
// the last known element when the coordinate lookup yields nothing.
func ResolveTarget(doc page.Document, x, y float64, last page.Element) (page.Element, error) {
	if x != 0 || y != 0 {
		if el := doc.ElementAt(x, y); el != nil {
			return el, nil
		}
	}
	if last != nil {
		return last, nil
	}
	return nil, ErrNoTarget
}

// CollectFillableFields enumerates candidate input elements under root,
// excluding disabled, read-only and hidden controls. If the subtree holds
// nothing, each ancestor is retried in turn up to maxAncestorWalk levels and
// the first non-empty result set wins.
func CollectFillableFields(root page.Element) []page.Element {
	if root == nil {
		return nil
	}
	fields := collectIn(root)
	if len(fields) > 0 {
		return fields
	}

	p := root.Parent()
	for i := 0; i < maxAncestorWalk && p != nil; i++ {
		if fs := collectIn(p); len(fs) > 0 {
			return fs
		}
		p = p.Parent()
	}
	return nil
}

func collectIn(root page.Element) []page.Element {
	var out []page.Element
	seen := make(map[string]bool)

	add := func(el page.Element) {
		if !eligible(el) || seen[el.Key()] {
			return
		}
		seen[el.Key()] = true
		out = append(out, el)
	}

	add(root)
	for _, sel := range fieldSelectors {
		for _, el := range root.Find(sel) {
			add(el)
		}
	}
	return out
}

func eligible(el page.Element) bool {
	switch el.Kind() {
	case page.KindText, page.KindTextArea, page.KindSelect, page.KindComposite:
	default:
		return false
	}
	return !el.Disabled() && !el.ReadOnly()
}
