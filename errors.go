package pagewire

import "errors"

var (
	// ErrStructuralPrecondition is returned when an element the document
	// is required to contain can't be found: the header, main, or footer
	// roots, or the component container inside the footer. There's no
	// page to bootstrap without them, so it always means the markup and
	// the Config disagree.
	ErrStructuralPrecondition = errors.New("required element missing from document")

	// ErrMalformedSectionMarker is returned when an element carries the
	// section marker class but none of its classes name an identifier.
	// The section is not dispatched.
	ErrMalformedSectionMarker = errors.New("section has no identifier modifier")

	// ErrComponentNotFound is returned by Create when no Component was
	// registered under the requested key.
	ErrComponentNotFound = errors.New("component not found")

	// ErrAlreadyDispatched is returned when InitSections is called on a
	// Dispatcher that has already run.
	ErrAlreadyDispatched = errors.New("sections already dispatched")

	// ErrInvalidIdentifier is returned when registering a Handler under
	// an identifier that could never be extracted from a section marker.
	ErrInvalidIdentifier = errors.New("invalid section identifier")

	// ErrDuplicateHandler is returned when registering a second Handler
	// for an identifier.
	ErrDuplicateHandler = errors.New("handler already registered")

	// ErrInvalidSelector is returned by Config.Validate when a selector
	// can't be compiled.
	ErrInvalidSelector = errors.New("invalid selector")
)
