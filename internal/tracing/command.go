package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrCommand = "modekit.command"
	AttrArgs    = "modekit.args"
	AttrQuery   = "modekit.query"
	AttrType    = "modekit.type"
	AttrResults = "modekit.results"
)

// SpanPrefixCommand prefixes the span name of each CLI command.
const SpanPrefixCommand = "command."

// RunCommand runs fn inside a span named after the command and records its
// outcome. A nil tracer runs fn untraced.
func RunCommand(ctx context.Context, tracer trace.Tracer, name string, args []string, fn func(ctx context.Context) error) error {
	if tracer == nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, SpanPrefixCommand+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrCommand, name),
			attribute.StringSlice(AttrArgs, args),
		),
	)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Annotate adds attributes to the span in ctx, if any.
func Annotate(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}
