package fill_test

import (
	"testing"

	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/page/htmlpage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, src string) *htmlpage.Document {
	t.Helper()
	doc, err := htmlpage.New(src)
	require.NoError(t, err)
	return doc
}

func TestCollectFillableFields(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form id="f">
			<input type="text" id="a">
			<input type="text" id="off" disabled>
			<input type="text" id="ro" readonly>
			<input type="hidden" id="h">
			<input type="submit" id="go">
			<textarea id="ta"></textarea>
			<select id="s"><option>One</option><option>Two</option></select>
			<input type="text" role="combobox" id="combo">
		</form>
	</body></html>`)

	fields := fill.CollectFillableFields(doc.First("#f"))

	var ids []string
	for _, f := range fields {
		ids = append(ids, f.Attr("id"))
	}
	// Disabled, readonly, hidden and button-like inputs are excluded. The
	// combobox is also a text input, so it is collected on the first selector
	// pass right after #a, and only once even though two selectors match it.
	assert.Equal(t, []string{"a", "combo", "ta", "s"}, ids)
}

func TestCollectFillableFieldsAncestorWalk(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div id="section">
			<span id="deco">apply here</span>
			<input type="text" id="inside">
		</div>
	</body></html>`)

	// The decorative span holds nothing, but its parent does.
	fields := fill.CollectFillableFields(doc.First("#deco"))
	require.Len(t, fields, 1)
	assert.Equal(t, "inside", fields[0].Attr("id"))
}

func TestCollectFillableFieldsWalkIsBounded(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<input type="text" id="far">
		<div><div><div><div><div>
			<span id="deep">nothing here</span>
		</div></div></div></div></div>
	</body></html>`)

	// The only field sits more than three ancestors above the target.
	assert.Empty(t, fill.CollectFillableFields(doc.First("#deep")))
}

func TestResolveTarget(t *testing.T) {
	doc := mustDoc(t, `<html><body><form id="f"><input type="text" id="a"></form></body></html>`)
	doc.PlaceAt(10, 20, "#f")

	el, err := fill.ResolveTarget(doc, 10, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, "f", el.Attr("id"))

	// Miss with no remembered element.
	_, err = fill.ResolveTarget(doc, 5, 5, nil)
	assert.ErrorIs(t, err, fill.ErrNoTarget)

	// Miss falls back to the last known target.
	last := doc.First("#a")
	el, err = fill.ResolveTarget(doc, 5, 5, last)
	require.NoError(t, err)
	assert.Equal(t, "a", el.Attr("id"))
}
