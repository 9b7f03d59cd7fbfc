package fill

import (
	"strings"

	"applypilot-engine/internal/page"
	"applypilot-engine/internal/textutil"
)

const (
	// signatureCap bounds the assembled signal text. It feeds straight into
	// oracle prompts, so it is kept short.
	signatureCap = 200
	nearbyCap    = 100
)

// Signature is the ephemeral signal bag gathered about one field. It is
// deterministic for a fixed element state and discarded after use.
type Signature struct {
	Kind        FieldKind
	Text        string // case-folded concatenation of all signals, capped
	Placeholder string
	Label       string
}

// Describe assembles a field's signals: identifier, name, placeholder,
// resolved label, class tokens and the leading slice of the parent's visible
// text.
func (c Classifier) Describe(doc page.Document, el page.Element) Signature {
	label := resolveLabel(doc, el)

	nearby := ""
	if p := el.Parent(); p != nil {
		nearby = textutil.Truncate(p.Text(), nearbyCap)
	}

	parts := []string{
		el.Attr("id"),
		el.Attr("name"),
		el.Attr("placeholder"),
		label,
		el.Attr("class"),
		nearby,
	}
	text := strings.ToLower(textutil.Clean(strings.Join(parts, " ")))
	text = textutil.Truncate(text, signatureCap)

	return Signature{
		Kind:        c.Classify(text),
		Text:        text,
		Placeholder: el.Attr("placeholder"),
		Label:       label,
	}
}

// resolveLabel finds the text describing a control: an explicit label
// association first, else a label among the immediate parent's children,
// else an adjacent sibling label.
func resolveLabel(doc page.Document, el page.Element) string {
	if id := el.Attr("id"); id != "" {
		if lbl := doc.First(`label[for="` + id + `"]`); lbl != nil {
			return textutil.Clean(lbl.Text())
		}
	}
	if p := el.Parent(); p != nil {
		if lbl := p.First("label"); lbl != nil {
			return textutil.Clean(lbl.Text())
		}
	}
	if prev := el.PrevSibling(); prev != nil && prev.Tag() == "label" {
		return textutil.Clean(prev.Text())
	}
	if next := el.NextSibling(); next != nil && next.Tag() == "label" {
		return textutil.Clean(next.Text())
	}
	return ""
}
