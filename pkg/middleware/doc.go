// Package middleware provides observability for tooltips and live sessions.
//
// # Prometheus Metrics
//
// Prometheus returns a *Metrics that doubles as a tooltip.Observer:
//
//	m := middleware.Prometheus()
//	tip := tooltip.New(doc,
//	    tooltip.WithObserver(m),
//	    tooltip.WithPositioner(m.TimePositioner(tooltip.NewEngine(doc))),
//	)
//
// Then expose the registry:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// TracePositioner wraps a Positioner so every placement is a span, from the
// request to the delivered result:
//
//	pos := middleware.TracePositioner(tooltip.NewEngine(doc),
//	    middleware.WithTracerName("my-app"),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given.
package middleware
