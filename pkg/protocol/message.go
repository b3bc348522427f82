package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/floating"
)

// MaxMessageSize bounds a single client frame in bytes.
const MaxMessageSize = 64 << 10

// MaxRects bounds the number of rects in one layout message.
const MaxRects = 1024

// MessageType identifies a message.
type MessageType string

const (
	// Client to server.
	TypeLayout MessageType = "layout"
	TypeEvent  MessageType = "event"
	TypePing   MessageType = "ping"

	// Server to client.
	TypeHello MessageType = "hello"
	TypePatch MessageType = "patch"
	TypeError MessageType = "error"
	TypePong  MessageType = "pong"
)

// Size is a viewport size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClientMessage is a message from the browser. Which fields are set
// depends on Type.
type ClientMessage struct {
	Type MessageType `json:"type"`

	// Layout.
	Viewport *Size                    `json:"viewport,omitempty"`
	Scroll   *floating.Coords         `json:"scroll,omitempty"`
	Rects    map[string]floating.Rect `json:"rects,omitempty"`

	// Event.
	Target string `json:"target,omitempty"`
	Event  string `json:"event,omitempty"`
	Key    string `json:"key,omitempty"`
}

// Patch sets an element's whole inline style.
type Patch struct {
	ID    string `json:"id"`
	Style string `json:"style"`
}

// ServerMessage is a message to the browser.
type ServerMessage struct {
	Type    MessageType `json:"type"`
	Session string      `json:"session,omitempty"`
	Patches []Patch     `json:"patches,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Decode parses and validates a client frame. Errors carry code E401.
func Decode(data []byte) (*ClientMessage, error) {
	if len(data) > MaxMessageSize {
		return nil, malformed(fmt.Sprintf("message of %d bytes exceeds %d", len(data), MaxMessageSize))
	}
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, rerrors.New("E401").Wrap(err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Validate checks the fields required by the message type.
func (m *ClientMessage) Validate() error {
	switch m.Type {
	case TypeLayout:
		if m.Viewport != nil && (m.Viewport.Width < 0 || m.Viewport.Height < 0) {
			return malformed("negative viewport size")
		}
		if len(m.Rects) > MaxRects {
			return malformed(fmt.Sprintf("%d rects exceed %d", len(m.Rects), MaxRects))
		}
	case TypeEvent:
		if m.Target == "" || m.Event == "" {
			return malformed("event needs target and event")
		}
	case TypePing:
	case "":
		return malformed("missing type")
	default:
		return malformed(fmt.Sprintf("unknown type %q", m.Type))
	}
	return nil
}

// Encode serializes a server message.
func Encode(msg *ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// Hello greets a new session.
func Hello(sessionID string) *ServerMessage {
	return &ServerMessage{Type: TypeHello, Session: sessionID}
}

// Patches wraps style patches.
func Patches(p []Patch) *ServerMessage {
	return &ServerMessage{Type: TypePatch, Patches: p}
}

// Pong answers a ping.
func Pong() *ServerMessage {
	return &ServerMessage{Type: TypePong}
}

// ErrorMessage reports err to the browser. Coded errors keep their code.
func ErrorMessage(err error) *ServerMessage {
	msg := &ServerMessage{Type: TypeError, Code: rerrors.CodeOf(err), Message: err.Error()}
	var re *rerrors.RatingError
	if errors.As(err, &re) {
		msg.Message = re.Message
	}
	return msg
}

func malformed(detail string) error {
	return rerrors.New("E401").WithDetail(detail)
}
