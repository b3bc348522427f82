package server

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/rating/internal/config"
	"github.com/vango-dev/rating/pkg/floating"
	"github.com/vango-dev/rating/pkg/middleware"
	"github.com/vango-dev/rating/pkg/protocol"
	"github.com/vango-dev/rating/pkg/star"
)

var (
	testMetricsOnce sync.Once
	testMetrics     *middleware.Metrics
	testRegistry    *prometheus.Registry
)

// testConfig returns defaults wired to a registry shared by the package's
// tests, since the metrics are a process-wide singleton.
func testConfig() *ServerConfig {
	testMetricsOnce.Do(func() {
		testRegistry = prometheus.NewRegistry()
		testMetrics = middleware.Prometheus(middleware.WithRegistry(testRegistry))
	})
	cfg := DefaultServerConfig()
	cfg.Metrics = testMetrics
	cfg.Gatherer = testRegistry
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(testConfig())
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		`id="star-1"`,
		`id="star-5"`,
		`<rating-tooltip`,
		`id="tip-3"`,
		`style="display: none;"`,
		"3 of 5",
		`src="/client.js"`,
		"--star-yellow: #f5b400",
		"<h1>Rating</h1>",
		`<p class="hint">`,
		`<span aria-hidden="true" class="icon">`,
		`id="grad-1"`,
		`fill="url(#grad-5)"`,
		"Metrics are served at /metrics.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `id="grad"`) {
		t.Error("page reuses the standalone gradient id")
	}
}

func TestPageMarkup(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ServerConfig)
		want    []string
		notWant []string
	}{
		{
			name:    "one gradient per star",
			modify:  func(c *ServerConfig) { c.Stars = 3 },
			want:    []string{`id="grad-1"`, `id="grad-2"`, `id="grad-3"`, `fill="url(#grad-2)"`},
			notWant: []string{`id="grad-4"`, `id="grad"`},
		},
		{
			name:    "metrics hint omitted when disabled",
			modify:  func(c *ServerConfig) { c.MetricsPath = "" },
			notWant: []string{`class="metrics"`},
		},
		{
			name:   "placeholder color reaches page styling",
			modify: func(c *ServerConfig) { c.Colors.Placeholder = "#123456" },
			want:   []string{"--star-placeholder: #123456", `stop-color="var(--star-placeholder)"`},
		},
		{
			name:   "star and tooltip are siblings",
			modify: func(c *ServerConfig) { c.Stars = 1 },
			want:   []string{`</button><rating-tooltip id="tip-1"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.modify(cfg)
			html, err := renderPage(cfg)
			if err != nil {
				t.Fatalf("renderPage: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("page missing %q", want)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(html, bad) {
					t.Errorf("page contains %q", bad)
				}
			}
		})
	}
}

func TestClientScript(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+ClientPath)
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/javascript") {
		t.Fatalf("status = %d, type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, LivePath) {
		t.Error("client does not connect to the live endpoint")
	}
}

func TestStarSVG(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/star/s.svg", http.StatusOK, `width="16"`},
		{"/star/m.svg", http.StatusOK, `width="20"`},
		{"/star/l.svg", http.StatusOK, `width="24"`},
		{"/star/xl.svg", http.StatusNotFound, "E201"},
	}
	for _, tt := range tests {
		resp, body := get(t, ts.URL+tt.path)
		if resp.StatusCode != tt.status {
			t.Errorf("%s status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		if !strings.Contains(body, tt.want) {
			t.Errorf("%s body missing %q", tt.path, tt.want)
		}
	}
}

func TestStarPNG(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/star/l.png?scale=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("content type = %q", resp.Header.Get("Content-Type"))
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 48x48", b)
	}

	for _, q := range []string{"scale=0", "scale=99", "scale=big"} {
		resp, _ := get(t, ts.URL+"/star/s.png?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "rating_live_active_sessions") {
		t.Error("metrics missing rating_live_active_sessions")
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsPath = ""
	s := New(cfg)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	offset := 8.0
	cfg.Tooltip.Offset = &offset
	cfg.Star.Size = "xl"
	cfg.Server.Port = 8080
	cfg.Server.MetricsPath = "-"

	sc := FromConfig(cfg)
	if sc.Address != "localhost:8080" {
		t.Errorf("Address = %q", sc.Address)
	}
	if sc.Offset != 8 {
		t.Errorf("Offset = %v", sc.Offset)
	}
	if sc.StarSize != star.Small {
		t.Errorf("StarSize = %q, want fallback %q", sc.StarSize, star.Small)
	}
	if sc.MetricsPath != "" {
		t.Errorf("MetricsPath = %q, want disabled", sc.MetricsPath)
	}
	if sc.Colors.Filled != config.DefaultFilledColor {
		t.Errorf("Filled = %q", sc.Colors.Filled)
	}
}

// liveClient wraps a test WebSocket connection.
type liveClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, ts *httptest.Server) *liveClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &liveClient{t: t, conn: conn}
}

func (c *liveClient) send(v any) {
	c.t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		c.t.Fatal(err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

// until reads messages until match returns true.
func (c *liveClient) until(match func(*protocol.ServerMessage) bool) *protocol.ServerMessage {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("read: %v", err)
		}
		var msg protocol.ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.t.Fatalf("bad server message %s: %v", data, err)
		}
		if match(&msg) {
			return &msg
		}
	}
}

func patchFor(id string, style func(string) bool) func(*protocol.ServerMessage) bool {
	return func(m *protocol.ServerMessage) bool {
		if m.Type != protocol.TypePatch {
			return false
		}
		for _, p := range m.Patches {
			if p.ID == id && style(p.Style) {
				return true
			}
		}
		return false
	}
}

func ofType(typ protocol.MessageType) func(*protocol.ServerMessage) bool {
	return func(m *protocol.ServerMessage) bool { return m.Type == typ }
}

func TestLiveSession(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts)

	hello := c.until(ofType(protocol.TypeHello))
	if hello.Session == "" {
		t.Fatal("hello without session id")
	}
	if s.Session(hello.Session) == nil {
		t.Fatal("session not registered")
	}

	c.send(protocol.ClientMessage{
		Type:     protocol.TypeLayout,
		Viewport: &protocol.Size{Width: 800, Height: 600},
		Scroll:   &floating.Coords{},
		Rects: map[string]floating.Rect{
			"star-1": {X: 380, Y: 300, Width: 40, Height: 20},
			"tip-1":  {Width: 60, Height: 24},
		},
	})
	c.send(protocol.ClientMessage{Type: protocol.TypeEvent, Target: "star-1", Event: "focus"})

	c.until(patchFor("tip-1", func(s string) bool { return s == "left: 370px; top: 272px;" }))

	c.send(protocol.ClientMessage{Type: protocol.TypeEvent, Target: "star-1", Event: "blur"})
	c.until(patchFor("tip-1", func(s string) bool { return strings.Contains(s, "display: none;") }))

	c.send(protocol.ClientMessage{Type: protocol.TypeEvent, Target: "nope", Event: "focus"})
	if msg := c.until(ofType(protocol.TypeError)); msg.Code != "E402" {
		t.Errorf("unknown target code = %q, want E402", msg.Code)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)); err != nil {
		t.Fatal(err)
	}
	if msg := c.until(ofType(protocol.TypeError)); msg.Code != "E401" {
		t.Errorf("malformed code = %q, want E401", msg.Code)
	}

	c.send(protocol.ClientMessage{Type: protocol.TypePing})
	c.until(ofType(protocol.TypePong))
}

func TestLiveSessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)

	ha := a.until(ofType(protocol.TypeHello))
	hb := b.until(ofType(protocol.TypeHello))
	if ha.Session == hb.Session {
		t.Fatal("sessions share an id")
	}

	layout := protocol.ClientMessage{
		Type:     protocol.TypeLayout,
		Viewport: &protocol.Size{Width: 800, Height: 600},
		Rects: map[string]floating.Rect{
			"star-2": {X: 100, Y: 100, Width: 20, Height: 20},
			"tip-2":  {Width: 40, Height: 20},
		},
	}
	a.send(layout)
	a.send(protocol.ClientMessage{Type: protocol.TypeEvent, Target: "star-2", Event: "pointerenter"})
	a.until(patchFor("tip-2", func(s string) bool { return strings.HasPrefix(s, "left:") }))

	// b only sees its own ping answered.
	b.send(protocol.ClientMessage{Type: protocol.TypePing})
	if msg := b.until(func(*protocol.ServerMessage) bool { return true }); msg.Type != protocol.TypePong {
		t.Errorf("b received %q, want pong", msg.Type)
	}
}

func TestSessionRemovedOnDisconnect(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts)
	hello := c.until(ofType(protocol.TypeHello))

	c.conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for s.Session(hello.Session) != nil {
		if time.Now().After(deadline) {
			t.Fatal("session still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeShutdown(t *testing.T) {
	s := New(testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+LivePath, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	c := &liveClient{t: t, conn: conn}
	c.until(ofType(protocol.TypeHello))

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	deadline := time.Now().Add(3 * time.Second)
	for s.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("SessionCount = %d after shutdown", s.SessionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
