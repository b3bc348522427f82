package server

import (
	"context"
	"errors"
	"image/png"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientdist "github.com/vango-dev/rating/client/dist"
	"github.com/vango-dev/rating/pkg/middleware"
	"github.com/vango-dev/rating/pkg/star"
)

// Server serves the demo page, star assets and live sessions.
type Server struct {
	config   *ServerConfig
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *middleware.Metrics

	mu       sync.Mutex
	sessions map[string]*Session

	// baseCtx parents every session; cancelled on Shutdown.
	baseCtx    context.Context
	cancelBase context.CancelFunc

	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig) *Server {
	config = config.withDefaults()

	metrics := config.Metrics
	if metrics == nil {
		metrics = middleware.Prometheus()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics:    metrics,
		sessions:   make(map[string]*Session),
		baseCtx:    ctx,
		cancelBase: cancel,
		logger:     slog.Default().With("component", "server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.Recoverer)
	r.Get("/", s.handlePage)
	r.Get(ClientPath, s.handleClient)
	r.Get(LivePath, s.HandleWebSocket)
	r.Get("/star/{size}.svg", s.handleStarSVG)
	r.Get("/star/{size}.png", s.handleStarPNG)
	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := renderPage(s.config)
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientdist.RatingJS)
}

// starSize parses the {size} route parameter. Unlike rendering, routes
// reject unknown sizes.
func starSize(w http.ResponseWriter, r *http.Request) (star.Size, bool) {
	size, err := star.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return size, true
}

func (s *Server) handleStarSVG(w http.ResponseWriter, r *http.Request) {
	size, ok := starSize(w, r)
	if !ok {
		return
	}
	svg, err := star.Markup(size)
	if err != nil {
		s.logger.Error("star render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

func (s *Server) handleStarPNG(w http.ResponseWriter, r *http.Request) {
	size, ok := starSize(w, r)
	if !ok {
		return
	}
	scale := 1
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "scale must be an integer", http.StatusBadRequest)
			return
		}
		scale = n
	}

	img, err := star.Rasterize(size, s.config.Colors, scale)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.logger.Error("png encode failed", "error", err)
	}
}

// HandleWebSocket upgrades the request and serves a live session until
// the connection ends.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		s.metrics.RecordWebSocketError("upgrade")
		return
	}

	session, err := newSession(s.baseCtx, conn, s.config, s.metrics, s.logger)
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.metrics.RecordSessionCreate()
	s.logger.Info("session started", "session_id", session.ID, "remote", r.RemoteAddr)

	session.Serve()

	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()
	s.metrics.RecordSessionDestroy()
}

// Session returns a live session by id, or nil.
func (s *Server) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig { return s.config }

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	s.cancelBase()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
