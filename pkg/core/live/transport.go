package live

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/collegegate/collegegate/pkg/core"
)

const (
	liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	defaultConnectTimeout = 15 * time.Second
)

// Transport is the bidirectional message link a session runs over. Send is
// safe for concurrent use; Receive is driven by a single reader.
type Transport interface {
	Send(msg *ClientMessage) error

	// Receive blocks for the next inbound frame. It returns io.EOF after
	// a clean peer close.
	Receive() (*ServerMessage, error)

	Close() error
}

// Dialer opens a transport and completes the setup exchange.
type Dialer interface {
	Dial(ctx context.Context, cfg SessionConfig) (Transport, error)
}

// WebsocketDialer dials the realtime service over a websocket and performs
// the setup handshake.
type WebsocketDialer struct {
	// APIKey authenticates the connection. Required.
	APIKey string

	// Endpoint overrides the production service URL. Used in tests.
	Endpoint string
}

// Dial connects, sends the setup frame, and waits for acknowledgement.
func (d *WebsocketDialer) Dial(ctx context.Context, cfg SessionConfig) (Transport, error) {
	key := strings.TrimSpace(d.APIKey)
	if key == "" {
		return nil, core.NewAuthenticationError("missing API key for live connection")
	}

	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = liveEndpoint
	}
	wsURL := endpoint + "?key=" + url.QueryEscape(key)

	dialer := websocket.DefaultDialer
	if dialer == nil {
		dialer = &websocket.Dialer{}
	}

	dialCtx := ctx
	var cancel context.CancelFunc
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		dialCtx, cancel = context.WithTimeout(ctx, defaultConnectTimeout)
		defer cancel()
	}

	conn, resp, err := dialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		if resp != nil && (resp.StatusCode == 401 || resp.StatusCode == 403) {
			return nil, core.NewAuthenticationError(fmt.Sprintf("live connection rejected (status %d)", resp.StatusCode))
		}
		return nil, core.NewTransportError("dial live service", err)
	}

	if err := conn.WriteJSON(NewSetupMessage(cfg)); err != nil {
		_ = conn.Close()
		return nil, core.NewTransportError("send setup", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(defaultConnectTimeout))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		_ = conn.Close()
		return nil, core.NewTransportError("read setup acknowledgement", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	ack, err := DecodeServerMessage(payload)
	if err != nil {
		_ = conn.Close()
		return nil, core.NewTransportError("decode setup acknowledgement", err)
	}
	if ack.SetupComplete == nil {
		_ = conn.Close()
		return nil, core.NewTransportError("setup not acknowledged", nil)
	}

	return &wsTransport{conn: conn}, nil
}

type wsTransport struct {
	conn *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
}

func (t *wsTransport) Send(msg *ClientMessage) error {
	if t.closed.Load() {
		return core.NewNotConnectedError("transport is closed")
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := t.conn.WriteJSON(msg); err != nil {
		return core.NewTransportError("write frame", err)
	}
	return nil
}

func (t *wsTransport) Receive() (*ServerMessage, error) {
	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || t.closed.Load() {
				return nil, io.EOF
			}
			return nil, core.NewTransportError("read frame", err)
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		msg, err := DecodeServerMessage(data)
		if err != nil {
			// Skip frames that do not parse rather than killing the session.
			continue
		}
		return msg, nil
	}
}

func (t *wsTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.writeMu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(2*time.Second))
		t.writeMu.Unlock()
		_ = t.conn.Close()
	})
	return nil
}
