package pagewire

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/net/html"
)

// Section is a single marked child of the document's main element, as handed
// to a Handler.
type Section struct {
	// ID is the Identifier extracted from the section's marker class,
	// exactly as written in the markup.
	ID Identifier

	// Index is the position of the section among all the sections in
	// the document, starting at 0.
	Index int

	// Node is the section element itself. Handlers own it for the
	// duration of their call and are free to change it.
	Node *html.Node

	// Components is the registry filled from the document's footer
	// before any Handler runs.
	Components *Components
}

// Handler owns the behavior of one kind of Section.
type Handler interface {
	HandleSection(ctx context.Context, section Section)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, section Section)

// HandleSection calls f.
func (f HandlerFunc) HandleSection(ctx context.Context, section Section) {
	f(ctx, section)
}

// Handlers maps section Identifiers to the Handler responsible for them. The
// empty value is not usable; use NewHandlers.
//
// Handlers is meant to be filled once at startup and not changed after it's
// passed to a Dispatcher.
type Handlers struct {
	byID map[Identifier]Handler
}

// NewHandlers returns an empty Handlers table.
func NewHandlers() *Handlers {
	return &Handlers{
		byID: map[Identifier]Handler{},
	}
}

// Register makes handler responsible for every Section with the Identifier
// id. It returns an error wrapping ErrInvalidIdentifier if id could never
// match a marker, and one wrapping ErrDuplicateHandler if id already has a
// Handler.
func (h *Handlers) Register(id Identifier, handler Handler) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if handler == nil {
		return fmt.Errorf("nil handler for %q", id)
	}
	if _, ok := h.byID[id]; ok {
		return fmt.Errorf("%q: %w", id, ErrDuplicateHandler)
	}
	h.byID[id] = handler
	return nil
}

// RegisterFunc is a shorthand for Register(id, HandlerFunc(fn)).
func (h *Handlers) RegisterFunc(id Identifier, fn func(context.Context, Section)) error {
	if fn == nil {
		return fmt.Errorf("nil handler for %q", id)
	}
	return h.Register(id, HandlerFunc(fn))
}

// Lookup returns the Handler registered for id, matching case-insensitively.
func (h *Handlers) Lookup(id Identifier) (Handler, bool) {
	handler, ok := h.byID[id.key()]
	return handler, ok
}

// Identifiers returns every Identifier with a Handler, sorted.
func (h *Handlers) Identifiers() []Identifier {
	ids := make([]Identifier, 0, len(h.byID))
	for id := range h.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
