package pagewire

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "impractical.co/pagewire"

// Span names.
const (
	SpanInitSections = "pagewire.InitSections"
	SpanSection      = "pagewire.section"
)

// Span attribute keys.
const (
	AttrLoggedIn      = "pagewire.logged_in"
	AttrSectionID     = "pagewire.section.id"
	AttrSectionIndex  = "pagewire.section.index"
	AttrSectionCount  = "pagewire.section.count"
	AttrTemplateCount = "pagewire.component.count"
)

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// endSpan records the outcome of the work the span covered and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
