package fill_test

import (
	"context"
	"testing"
	"time"

	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/oracle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestrator(mock *oracle.Mock) *fill.Orchestrator {
	return &fill.Orchestrator{
		Values: &oracle.Generator{
			Client:  mock,
			Profile: "Name: Alex Doe\nEmail: alex.doe@example.com",
		},
		Classifier: fill.NewClassifier(),
		Pace:       time.Millisecond,
	}
}

func TestFillTargetFillsEmptyField(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form id="apply">
			<label for="email">Email Address</label>
			<input type="text" id="email">
			<input type="text" id="who" value="already set">
		</form>
	</body></html>`)
	doc.PlaceAt(100, 200, "#apply")

	mock := &oracle.Mock{Response: `"alex.doe@example.com"`}
	orch := newOrchestrator(mock)

	out, target, err := orch.FillTarget(context.Background(), doc, 100, 200, nil)
	require.NoError(t, err)
	require.NotNil(t, target)

	// One empty field filled, one pre-filled field left alone, one request.
	assert.Equal(t, 1, out.Filled)
	assert.Empty(t, out.Errors)
	assert.Equal(t, 1, mock.Calls())

	// Quotes around the response are stripped before the write.
	assert.Equal(t, "alex.doe@example.com", doc.First("#email").Value())
	assert.Equal(t, "already set", doc.First("#who").Value())

	// The write raised the notifications host page scripts listen for.
	assert.Contains(t, doc.Events(), "input#email:input")
	assert.Contains(t, doc.Events(), "input#email:change")
	assert.Contains(t, doc.Events(), "input#email:blur")
}

func TestFillTargetNoTarget(t *testing.T) {
	doc := mustDoc(t, `<html><body><input type="text" id="a"></body></html>`)

	mock := &oracle.Mock{Response: "x"}
	_, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 7, 7, nil)

	assert.ErrorIs(t, err, fill.ErrNoTarget)
	assert.Zero(t, mock.Calls())
}

func TestFillTargetNoFields(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div><div><div><div><div><p id="txt">just prose</p></div></div></div></div></div>
	</body></html>`)
	doc.PlaceAt(1, 1, "#txt")

	mock := &oracle.Mock{Response: "x"}
	_, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)

	assert.ErrorIs(t, err, fill.ErrNoFields)
	assert.Zero(t, mock.Calls())
}

func TestFillTargetReusesLastTarget(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form id="apply">
			<label for="city">City</label>
			<input type="text" id="city">
		</form>
	</body></html>`)
	doc.PlaceAt(100, 200, "#apply")

	mock := &oracle.Mock{Response: "Austin"}
	orch := newOrchestrator(mock)

	_, target, err := orch.FillTarget(context.Background(), doc, 100, 200, nil)
	require.NoError(t, err)

	// Second call misses the hit test but carries the remembered target.
	out, _, err := orch.FillTarget(context.Background(), doc, 5, 5, target)
	require.NoError(t, err)
	// The city field already holds a value now, so nothing new is filled.
	assert.Equal(t, 0, out.Filled)
	assert.Equal(t, 1, mock.Calls())
}

func TestFillDocumentWholePage(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form>
			<label for="first">First Name</label><input type="text" id="first">
		</form>
		<form>
			<label for="last">Last Name</label><input type="text" id="last">
		</form>
	</body></html>`)

	mock := &oracle.Mock{Response: "Alex"}
	out, err := newOrchestrator(mock).FillDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Filled)
	assert.Equal(t, 2, mock.Calls())
	assert.Equal(t, "Alex", doc.First("#first").Value())
	assert.Equal(t, "Alex", doc.First("#last").Value())
}

func TestFillCollectsPerFieldErrors(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<form id="apply">
			<label for="a">First Name</label><input type="text" id="a">
			<label for="b">Last Name</label><input type="text" id="b">
		</form>
	</body></html>`)
	doc.PlaceAt(1, 1, "#apply")

	mock := &oracle.Mock{Err: &oracle.Error{Status: 429, Err: assert.AnError}}
	out, _, err := newOrchestrator(mock).FillTarget(context.Background(), doc, 1, 1, nil)
	require.NoError(t, err)

	// A failing oracle does not abort the batch; each field reports its own
	// error and nothing is written.
	assert.Equal(t, 0, out.Filled)
	assert.Len(t, out.Errors, 2)
	assert.Equal(t, "", doc.First("#a").Value())
}
