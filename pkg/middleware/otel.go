package middleware

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rating/pkg/floating"
	"github.com/vango-dev/rating/pkg/tooltip"
)

// Default tracer name.
const defaultTracerName = "rating"

// OTelConfig configures placement tracing.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "rating").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(req tooltip.Request) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(req tooltip.Request) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures placement tracing.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(req tooltip.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(req tooltip.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// TracePositioner wraps next so each placement runs inside a span. The span
// starts when the request is issued and ends when the result is delivered,
// so it covers the asynchronous part too. The span context is passed to next.
//
//	pos := middleware.TracePositioner(tooltip.NewEngine(doc))
//	tip := tooltip.New(doc, tooltip.WithPositioner(pos))
func TracePositioner(next tooltip.Positioner, opts ...OTelOption) tooltip.Positioner {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	config.tracer = config.TracerProvider.Tracer(config.TracerName)

	return tooltip.PositionerFunc(func(ctx context.Context, req tooltip.Request, done func(floating.Result, error)) {
		if config.Filter != nil && !config.Filter(req) {
			next.Position(ctx, req, done)
			return
		}

		attrs := []attribute.KeyValue{
			attribute.Int64("rating.token", int64(req.Token)),
			attribute.Float64("rating.offset", req.Offset),
			attribute.String("rating.allowed_placements", joinPlacements(req.AllowedPlacements)),
		}
		if req.Target != nil && req.Target.ID() != "" {
			attrs = append(attrs, attribute.String("rating.target", req.Target.ID()))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(req)...)
		}

		spanCtx, span := config.tracer.Start(ctx, "rating.tooltip.position",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)

		next.Position(spanCtx, req, func(res floating.Result, err error) {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetAttributes(
					attribute.String("rating.placement", string(res.Placement)),
					attribute.Float64("rating.x", res.X),
					attribute.Float64("rating.y", res.Y),
					attribute.Int("rating.resets", res.Resets),
				)
				span.SetStatus(codes.Ok, "")
			}
			span.End()
			done(res, err)
		})
	})
}

func joinPlacements(ps []floating.Placement) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}
