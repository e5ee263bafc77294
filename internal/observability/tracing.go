package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is resolved from the global provider, which is a no-op unless the
// embedding program installs one.
var Tracer = otel.Tracer("github.com/funvibe/classc")

// Stage is an open span plus its duration observation.
type Stage struct {
	name  string
	start time.Time
	span  trace.Span
}

// StartStage opens a span named "classc.<name>" and starts timing the stage.
func StartStage(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Stage) {
	ctx, span := Tracer.Start(ctx, "classc."+name, trace.WithAttributes(attrs...))
	return ctx, &Stage{name: name, start: time.Now(), span: span}
}

// End records the stage duration and closes the span. A non-nil err marks
// the span as failed.
func (s *Stage) End(err error) {
	StageDuration.WithLabelValues(s.name).Observe(time.Since(s.start).Seconds())
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

// Span exposes the underlying span for extra attributes.
func (s *Stage) Span() trace.Span { return s.span }
