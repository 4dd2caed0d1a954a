package pagewire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

// State is where a Dispatcher is in its single pass over a document.
type State int

const (
	// StateUninitialized is a Dispatcher that hasn't started.
	StateUninitialized State = iota
	// StateChromeReady means the chrome initializer has run.
	StateChromeReady
	// StateRegistryReady means the Components registry is filled.
	StateRegistryReady
	// StateDispatching means Handlers are being called.
	StateDispatching
	// StateDone means every Section has been looked at.
	StateDone
	// StateFailed means the document was missing something it needed
	// and the pass was abandoned.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChromeReady:
		return "chrome_ready"
	case StateRegistryReady:
		return "registry_ready"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ChromeFunc sets up the parts of the page shared by every Section, given the
// header element and whether the visitor is logged in. It runs before the
// Components registry is filled.
type ChromeFunc func(ctx context.Context, header *html.Node, isLoggedIn bool) error

// Outcome is what happened to a single Section during dispatch.
type Outcome string

const (
	// OutcomeDispatched means the Section's Handler was called.
	OutcomeDispatched Outcome = "dispatched"

	// OutcomeUnhandled means no Handler was registered for the
	// Section's Identifier, so it was skipped.
	OutcomeUnhandled Outcome = "unhandled"

	// OutcomeMalformed means no Identifier could be extracted from the
	// Section's classes.
	OutcomeMalformed Outcome = "malformed"
)

// SectionResult records the Outcome for one Section.
type SectionResult struct {
	Index   int
	ID      Identifier
	Class   string
	Outcome Outcome
}

// Report describes a completed pass, one SectionResult per Section in
// document order.
type Report struct {
	Sections []SectionResult
}

// Count returns how many Sections had the passed Outcome.
func (r Report) Count(outcome Outcome) int {
	var n int
	for _, res := range r.Sections {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfig replaces DefaultConfig. It's validated by NewDispatcher.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) {
		d.config = cfg
	}
}

// WithChrome sets the function that initializes the page header. Without
// it, that step does nothing.
func WithChrome(chrome ChromeFunc) Option {
	return func(d *Dispatcher) {
		d.chrome = chrome
	}
}

// WithTracer sets the tracer spans are created with. Without it, the tracer
// comes from the global TracerProvider.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = tracer
	}
}

// Dispatcher bootstraps a single document: it runs the chrome initializer,
// fills a Components registry, and calls the Handler for every Section.
//
// A Dispatcher makes exactly one pass. It is not safe for concurrent use,
// though the Components it hands to Handlers is.
type Dispatcher struct {
	config     Config
	selectors  selectors
	handlers   *Handlers
	chrome     ChromeFunc
	tracer     trace.Tracer
	components *Components
	state      State
	report     Report
}

// NewDispatcher returns a Dispatcher that routes Sections to handlers. An
// error is returned if the Config set with WithConfig doesn't validate.
func NewDispatcher(handlers *Handlers, opts ...Option) (*Dispatcher, error) {
	if handlers == nil {
		handlers = NewHandlers()
	}
	d := &Dispatcher{
		config:   DefaultConfig(),
		handlers: handlers,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = defaultTracer()
	}
	sels, err := d.config.compile()
	if err != nil {
		return nil, err
	}
	d.selectors = sels
	d.components = newComponents(sels.container)
	return d, nil
}

// Components returns the registry the Dispatcher fills from the document's
// footer. It's empty until InitSections gets past the chrome step.
func (d *Dispatcher) Components() *Components {
	return d.components
}

// State returns how far the Dispatcher has gotten.
func (d *Dispatcher) State() State {
	return d.state
}

// Report returns what happened to each Section. It's empty until
// InitSections has run.
func (d *Dispatcher) Report() Report {
	return d.report
}

// InitSections bootstraps doc, which should be the root of a parsed
// document. It resolves the header, main, and footer elements, runs the
// chrome initializer with the header and isLoggedIn, fills the Components
// registry from the footer, and then calls the registered Handler for every
// Section that's a direct child of main, one at a time, in document order.
//
// A missing header, main, footer, or component container stops the pass
// with an error wrapping ErrStructuralPrecondition. An error from the chrome
// initializer also stops the pass, before the registry is filled; it's
// returned wrapped as is, without ErrStructuralPrecondition. Either way the
// Dispatcher ends up in StateFailed. Sections without a Handler are skipped. Sections
// whose Identifier can't be extracted are logged and skipped, and once every
// Section has been looked at, InitSections returns an error wrapping
// ErrMalformedSectionMarker for each of them.
//
// InitSections can only be called once per Dispatcher; later calls return
// ErrAlreadyDispatched.
func (d *Dispatcher) InitSections(ctx context.Context, doc *html.Node, isLoggedIn bool) (err error) {
	if d.state != StateUninitialized {
		return ErrAlreadyDispatched
	}
	ctx, span := d.tracer.Start(ctx, SpanInitSections,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Bool(AttrLoggedIn, isLoggedIn)),
	)
	defer func() {
		endSpan(span, err)
	}()

	if doc == nil {
		d.state = StateFailed
		return fmt.Errorf("no document: %w", ErrStructuralPrecondition)
	}
	document := goquery.NewDocumentFromNode(doc)
	header, err := d.resolve(document, "header", d.selectors.header)
	if err != nil {
		return err
	}
	mainRoot, err := d.resolve(document, "main", d.selectors.main)
	if err != nil {
		return err
	}
	footer, err := d.resolve(document, "footer", d.selectors.footer)
	if err != nil {
		return err
	}

	if d.chrome != nil {
		if err := d.chrome(ctx, header.Get(0), isLoggedIn); err != nil {
			d.state = StateFailed
			return fmt.Errorf("error initializing chrome: %w", err)
		}
	}
	d.state = StateChromeReady

	if err := d.components.Init(ctx, footer.Get(0)); err != nil {
		d.state = StateFailed
		return err
	}
	span.SetAttributes(attribute.Int(AttrTemplateCount, len(d.components.Keys())))
	d.state = StateRegistryReady

	// collect the sections before any handler runs; handlers are free to
	// rearrange the document
	sections := mainRoot.ChildrenMatcher(d.selectors.section)
	span.SetAttributes(attribute.Int(AttrSectionCount, sections.Length()))
	d.state = StateDispatching

	var errs []error
	for i := range sections.Nodes {
		if err := d.dispatch(ctx, i, sections.Eq(i)); err != nil {
			errs = append(errs, err)
		}
	}
	d.state = StateDone
	return errors.Join(errs...)
}

func (d *Dispatcher) resolve(document *goquery.Document, name string, sel goquery.Matcher) (*goquery.Selection, error) {
	found := document.FindMatcher(sel).First()
	if found.Length() < 1 {
		d.state = StateFailed
		return nil, fmt.Errorf("%s element: %w", name, ErrStructuralPrecondition)
	}
	return found, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, index int, section *goquery.Selection) error {
	class := section.AttrOr("class", "")
	result := SectionResult{Index: index, Class: class}
	defer func() {
		d.report.Sections = append(d.report.Sections, result)
	}()

	id, ok := parseIdentifier(d.selectors.sectionClass, class)
	if !ok {
		result.Outcome = OutcomeMalformed
		err := fmt.Errorf("section %d with class %q: %w", index, class, ErrMalformedSectionMarker)
		logger(ctx).ErrorContext(ctx, "section marker doesn't name an identifier",
			slog.Int("index", index), slog.String("class", class))
		trace.SpanFromContext(ctx).RecordError(err)
		return err
	}
	result.ID = id

	handler, ok := d.handlers.Lookup(id)
	if !ok {
		result.Outcome = OutcomeUnhandled
		logger(ctx).DebugContext(ctx, "no handler for section",
			slog.Int("index", index), slog.String("section", string(id)))
		return nil
	}

	ctx, span := d.tracer.Start(ctx, SpanSection,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrSectionID, string(id)),
			attribute.Int(AttrSectionIndex, index),
		),
	)
	defer endSpan(span, nil)

	handler.HandleSection(ctx, Section{
		ID:         id,
		Index:      index,
		Node:       section.Get(0),
		Components: d.components,
	})
	result.Outcome = OutcomeDispatched
	return nil
}
