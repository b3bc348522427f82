package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rating/internal/config"
	"github.com/vango-dev/rating/pkg/middleware"
	"github.com/vango-dev/rating/pkg/star"
)

// SessionConfig holds configuration for individual live sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

// ServerConfig holds configuration for the live demo server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: "localhost:3000".
	Address string

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin.
	// Default: allows same-host origins only.
	CheckOrigin func(r *http.Request) bool

	// Session is the configuration for individual sessions.
	Session *SessionConfig

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration

	// Stars is the number of stars on the demo page.
	// Default: 5.
	Stars int

	// StarSize is the size category of the demo stars.
	StarSize star.Size

	// Colors paint rasterized stars and the page's CSS variables.
	Colors star.Colors

	// Offset is the tooltip gap in pixels.
	Offset float64

	// MetricsPath is where Prometheus metrics are served. Empty disables
	// the endpoint.
	MetricsPath string

	// Metrics records tooltip and session metrics. Default: the global
	// middleware.Prometheus() instance.
	Metrics *middleware.Metrics

	// Gatherer backs the metrics endpoint.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// TracerProvider traces tooltip placements. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           config.DefaultHost + ":" + strconv.Itoa(config.DefaultPort),
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		Session:           DefaultSessionConfig(),
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		Stars:             5,
		StarSize:          star.Small,
		Colors: star.Colors{
			Filled:      config.DefaultFilledColor,
			Placeholder: config.DefaultPlaceholderColor,
		},
		Offset:      config.DefaultOffset,
		MetricsPath: config.DefaultMetricsPath,
		Gatherer:    prometheus.DefaultGatherer,
	}
}

// FromConfig builds a ServerConfig from a loaded project config. An unknown
// star size is logged and falls back to the small size.
func FromConfig(cfg *config.Config) *ServerConfig {
	sc := DefaultServerConfig()
	sc.Address = cfg.Address()
	sc.Offset = cfg.TooltipOffset()

	size, err := star.ParseSize(cfg.Star.Size)
	if err != nil {
		slog.Default().With("component", "server").Warn("invalid star size", "error", err)
	}
	sc.StarSize = size

	if cfg.Star.Filled != "" {
		sc.Colors.Filled = cfg.Star.Filled
	}
	if cfg.Star.Placeholder != "" {
		sc.Colors.Placeholder = cfg.Star.Placeholder
	}

	sc.MetricsPath = ""
	if cfg.MetricsEnabled() {
		sc.MetricsPath = cfg.Server.MetricsPath
	}
	return sc
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.Session == nil {
		out.Session = defaults.Session
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	if out.Stars <= 0 {
		out.Stars = defaults.Stars
	}
	if out.StarSize == "" {
		out.StarSize = defaults.StarSize
	}
	if out.Colors.Filled == "" {
		out.Colors.Filled = defaults.Colors.Filled
	}
	if out.Colors.Placeholder == "" {
		out.Colors.Placeholder = defaults.Colors.Placeholder
	}
	if out.Gatherer == nil {
		out.Gatherer = defaults.Gatherer
	}
	return &out
}
