// Package page abstracts the live document the engine works against.
// Both the playwright-backed session and the in-memory HTML double used in
// tests implement these interfaces; everything above them (fill, extract)
// only sees page.Document and page.Element.
package page

import "context"

type ControlKind int

const (
	KindUnknown ControlKind = iota
	KindText                // single-line text-like <input>
	KindTextArea
	KindSelect    // native single-choice list
	KindComposite // custom dropdown widget recognized by class marker
	KindHidden
)

// CompositeClassMarker identifies custom dropdown widgets that behave like a
// select but are built out of divs. Vendor-specific; overridable per deploy
// via config, this is only the default.
const CompositeClassMarker = "rcmpaginatedselectinput"

// Choice is one entry of a single-choice control.
type Choice struct {
	Label string
	Value string
}

// Element is a handle into a live, externally mutated document. Every read
// may be stale the moment it returns; callers treat results as best-effort.
type Element interface {
	Tag() string // lower-case tag name
	Kind() ControlKind

	// Key identifies the element within its document. Identity is reference
	// equality on the underlying node; Key is its stable representation,
	// used to deduplicate overlapping query results.
	Key() string

	Attr(name string) string
	HasClass(name string) bool
	Text() string

	Value() string
	Disabled() bool
	ReadOnly() bool

	// SetValue writes v and raises input/change/blur notifications so host
	// page scripts observe the update as if typed by a user.
	SetValue(v string) error

	Choices() []Choice
	// SelectChoice picks the choice with the given value and raises a change
	// notification.
	SelectChoice(value string) error

	Click() error

	Parent() Element      // nil at the document root
	PrevSibling() Element // nil if none
	NextSibling() Element

	Find(selector string) []Element
	First(selector string) Element // nil if no match

	// Highlight marks the element so a UI layer can show what is being
	// touched. Best-effort; failures are ignored.
	Highlight()
}

// Document is one page context. At most one fill or extraction operation is
// in flight per Document.
type Document interface {
	Title() string
	Root() Element

	Find(selector string) []Element
	First(selector string) Element

	// ElementAt returns the element physically present at the coordinates,
	// or nil.
	ElementAt(x, y float64) Element

	// WaitReady blocks until the document reports a complete load state.
	WaitReady(ctx context.Context) error

	// ClearHighlights removes any marks left by Element.Highlight.
	ClearHighlights()
}
