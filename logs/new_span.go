package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span for what, nested in the span of ctx if any
type NewSpan func(ctx context.Context, what string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, what string) (context.Context, Span) {
		var args []any
		args = append(args, "what", what)
		if parent, ok := ctx.Value(SpanKey).(Span); ok {
			args = append(args, "parent", parent)
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
