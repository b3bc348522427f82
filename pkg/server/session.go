package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/dom"
	"github.com/vango-dev/rating/pkg/middleware"
	"github.com/vango-dev/rating/pkg/protocol"
	"github.com/vango-dev/rating/pkg/tooltip"
)

// Session is one browser tab connected over /live. It owns a dom.Document
// mirroring the demo page; client events are dispatched into it and inline
// style changes are sent back as patches.
type Session struct {
	// ID is a time-ordered UUID.
	ID string

	conn    *websocket.Conn
	config  *SessionConfig
	doc     *dom.Document
	tips    []*tooltip.Tooltip
	metrics *middleware.Metrics
	logger  *slog.Logger

	// mu serializes writes to conn.
	mu     sync.Mutex
	closed atomic.Bool
	done   chan struct{}
	cancel context.CancelFunc

	// flushQueued is only touched on the document loop.
	flushQueued bool

	messageCount atomic.Uint64
	patchCount   atomic.Uint64
}

func newSession(ctx context.Context, conn *websocket.Conn, cfg *ServerConfig, metrics *middleware.Metrics, logger *slog.Logger) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		ID:      id.String(),
		conn:    conn,
		config:  cfg.Session,
		doc:     dom.NewDocument(0, 0),
		metrics: metrics,
		logger:  logger.With("session_id", id.String()),
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	var positioner tooltip.Positioner = tooltip.NewEngine(s.doc)
	if metrics != nil {
		positioner = metrics.TimePositioner(positioner)
	}
	positioner = middleware.TracePositioner(positioner, middleware.WithTracerProvider(cfg.TracerProvider))

	opts := []tooltip.Option{
		tooltip.WithPositioner(positioner),
		tooltip.WithLogger(s.logger),
		tooltip.WithContext(ctx),
	}
	if metrics != nil {
		opts = append(opts, tooltip.WithObserver(metrics))
	}
	s.tips = mirror(s.doc, cfg, opts...)

	// The page is served with every tooltip hidden already.
	s.doc.TakeStyleChanges()
	s.doc.OnStyleChange(func(*dom.Element) {
		if !s.flushQueued {
			s.flushQueued = true
			s.doc.Post(s.flush)
		}
	})

	go func() {
		_ = s.doc.Run(ctx)
	}()
	return s, nil
}

// Serve greets the client and reads messages until the connection fails
// or the session is closed.
func (s *Session) Serve() {
	defer s.Close()

	if err := s.send(protocol.Hello(s.ID)); err != nil {
		return
	}
	s.ReadLoop()
}

// ReadLoop decodes client messages and hands them to the document loop.
func (s *Session) ReadLoop() {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.metrics.RecordWebSocketError("read")
			}
			return
		}
		s.messageCount.Add(1)

		msg, err := protocol.Decode(data)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			s.metrics.RecordMessage("invalid", err)
			s.send(protocol.ErrorMessage(err))
			continue
		}
		s.metrics.RecordMessage(string(msg.Type), nil)
		s.handle(msg)
	}
}

func (s *Session) handle(msg *protocol.ClientMessage) {
	switch msg.Type {
	case protocol.TypePing:
		s.send(protocol.Pong())
	case protocol.TypeLayout:
		s.doc.Post(func() { s.applyLayout(msg) })
	case protocol.TypeEvent:
		s.doc.Post(func() { s.dispatch(msg) })
	}
}

// applyLayout runs on the document loop. Rects for unknown ids are
// skipped; the client measures every element with an id.
func (s *Session) applyLayout(msg *protocol.ClientMessage) {
	if msg.Viewport != nil {
		s.doc.SetViewport(msg.Viewport.Width, msg.Viewport.Height)
	}
	if msg.Scroll != nil {
		s.doc.SetScroll(msg.Scroll.X, msg.Scroll.Y)
	}
	for id, r := range msg.Rects {
		if el := s.doc.GetElementByID(id); el != nil {
			el.SetRect(r)
		}
	}
}

// dispatch runs on the document loop.
func (s *Session) dispatch(msg *protocol.ClientMessage) {
	el := s.doc.GetElementByID(msg.Target)
	if el == nil {
		err := rerrors.New("E402").WithElement(msg.Target)
		s.logger.Warn("event for unknown element", "error", err)
		s.send(protocol.ErrorMessage(err))
		return
	}
	ev := dom.NewEvent(msg.Event)
	ev.Key = msg.Key
	el.Dispatch(ev)
}

// flush runs on the document loop and sends the inline styles changed
// since the last flush.
func (s *Session) flush() {
	s.flushQueued = false

	changed := s.doc.TakeStyleChanges()
	patches := make([]protocol.Patch, 0, len(changed))
	for _, el := range changed {
		if el.ID() == "" {
			continue
		}
		patches = append(patches, protocol.Patch{ID: el.ID(), Style: el.Style().CSSText()})
	}
	if len(patches) == 0 {
		return
	}
	if err := s.send(protocol.Patches(patches)); err != nil {
		return
	}
	s.patchCount.Add(uint64(len(patches)))
	s.metrics.RecordPatches(len(patches))
}

func (s *Session) send(msg *protocol.ServerMessage) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.metrics.RecordWebSocketError("write")
		return err
	}
	return nil
}

// Tooltips returns the session's tooltips in star order.
func (s *Session) Tooltips() []*tooltip.Tooltip { return s.tips }

// Document returns the session's mirror document. Touch it only from
// functions passed to its Post.
func (s *Session) Document() *dom.Document { return s.doc }

// Close stops the document loop and closes the connection. Safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed.Swap(true) {
		s.mu.Unlock()
		return
	}
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.conn.Close()
	s.mu.Unlock()

	s.cancel()
	close(s.done)

	s.logger.Info("session closed",
		"messages", s.messageCount.Load(),
		"patches", s.patchCount.Load())
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
