package fill_test

import (
	"context"
	"testing"

	"applypilot-engine/internal/oracle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectPage = `<html><body>
	<form id="apply">
		<label for="loc">Work Location</label>
		<select id="loc">
			<option value="">Select one</option>
			<option value="R">Remote</option>
			<option value="H">Hybrid</option>
		</select>
	</form>
</body></html>`

func TestFillChoiceSelectsMatchingOption(t *testing.T) {
	doc := mustDoc(t, selectPage)
	doc.PlaceAt(1, 1, "#apply")

	mock := &oracle.Mock{Response: "remote"}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Filled)
	assert.Equal(t, 1, mock.Calls())
	assert.Equal(t, "R", doc.First("#loc").Value())
	assert.Contains(t, doc.Events(), "select#loc:change")
}

func TestFillChoiceDefaultSelectionIsNotPrefilled(t *testing.T) {
	// A select always reports its default option as its value; that must not
	// count as "already filled" the way text inputs do.
	doc := mustDoc(t, selectPage)
	doc.PlaceAt(1, 1, "#apply")

	mock := &oracle.Mock{Response: "Hybrid"}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Filled)
	assert.Equal(t, "H", doc.First("#loc").Value())
}

func TestFillChoiceSingleOptionSkipsOracle(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form id="apply">
			<select id="one"><option value="only">Only option</option></select>
		</form>
	</body></html>`)
	doc.PlaceAt(1, 1, "#apply")

	mock := &oracle.Mock{Response: "anything"}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Filled)
	assert.Empty(t, out.Errors)
	assert.Zero(t, mock.Calls())
}

func TestFillChoiceNoMatchLeavesFieldAlone(t *testing.T) {
	doc := mustDoc(t, selectPage)
	doc.PlaceAt(1, 1, "#apply")

	before := doc.First("#loc").Value()

	mock := &oracle.Mock{Response: "on the moon"}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Filled)
	assert.Empty(t, out.Errors)
	assert.Equal(t, before, doc.First("#loc").Value())
}

func TestFillChoiceResponseContainsLabel(t *testing.T) {
	doc := mustDoc(t, selectPage)
	doc.PlaceAt(1, 1, "#apply")

	mock := &oracle.Mock{Response: "I would prefer a hybrid arrangement"}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Filled)
	assert.Equal(t, "H", doc.First("#loc").Value())
}
