// Package pagewire bootstraps a server-rendered HTML document after it has
// been parsed into a tree.
//
// pagewire is organized around Sections and Components. A Section is a
// direct child of the document's main element that carries the section
// marker class along with a modifier naming what kind of page it is, like
// site-section--user. A Component is a fragment of markup authored inside the
// footer's component container, which gets pulled out of the document and
// can then be cloned as many times as it's needed.
//
// To bootstrap a document, register a Handler for every section identifier
// that needs behavior, build a Dispatcher from those Handlers, and call
// InitSections once with the parsed document. The Dispatcher resolves the
// header, main, and footer roots, runs the chrome initializer, fills its
// Components registry from the footer, and then hands every Section to the
// Handler registered for its identifier, in document order. Sections with no
// Handler are skipped; not every kind of page needs behavior.
//
// Handlers receive the registry on the Section they're given, so they can
// call Create to get fresh copies of any Component. Each call returns a new
// detached node, and it's up to the caller to insert it somewhere.
//
// Logging uses the *slog.Logger stored in the context by LoggingContext, and
// tracing uses OpenTelemetry.
package pagewire
