package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap/zapcore"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway connection lifecycle component between websocket clients and the
// router. Each accepted connection gets an opaque client id, subscribe frames
// are forwarded to the router and queued messages are drained and pushed on a
// fixed interval. On disconnect every subscription owned by the client is
// removed.
type Gateway struct {
	opt       option
	registrar interfaces.SubscriptionRegistrar

	mu       sync.Mutex
	sessions map[string]*clientSession

	ctx           context.Context
	ctxCancelFunc func()
	wg            sync.WaitGroup
}

type clientSession struct {
	clientID string
	conn     *websocket.Conn
	writeMu  sync.Mutex
}

// New create websocket gateway backed by the given registrar
func New(registrar interfaces.SubscriptionRegistrar, opts ...OptionFunc) *Gateway {
	g := &Gateway{
		opt:       getDefaultOption(),
		registrar: registrar,
		sessions:  make(map[string]*clientSession),
	}
	for _, opt := range opts {
		opt(&g.opt)
	}
	g.ctx, g.ctxCancelFunc = context.WithCancel(context.Background())
	return g
}

// HandleUpgrade http handler upgrading the connection and starting the read
// and drain loops for the new client
func (g *Gateway) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	select {
	case <-g.ctx.Done():
		http.Error(w, "gateway is shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(g.opt.maxMessageSize)

	session := &clientSession{clientID: uuid.NewString(), conn: conn}

	// registration and the shutdown close loop exclude each other, a session
	// can never slip in after Shutdown started closing connections
	g.mu.Lock()
	select {
	case <-g.ctx.Done():
		g.mu.Unlock()
		conn.Close()
		return
	default:
	}
	g.sessions[session.clientID] = session
	g.wg.Add(2)
	g.mu.Unlock()

	if g.opt.debugMode {
		logger.LogYellow(fmt.Sprintf("[GATEWAY] client connected: %s", session.clientID))
	}
	session.write(ServerFrame{Type: FrameConnected, ClientID: session.clientID, Timestamp: time.Now().UnixMilli()})

	go g.readLoop(session)
	go g.drainLoop(session)
}

// ActiveClients current connected client count
func (g *Gateway) ActiveClients() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// Shutdown close every connection and wait for running loops, client
// subscriptions are removed on the way out
func (g *Gateway) Shutdown(ctx context.Context) {
	defer logger.LogGreen("gateway stopped")

	g.ctxCancelFunc()

	g.mu.Lock()
	for _, session := range g.sessions {
		session.conn.Close()
	}
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (g *Gateway) readLoop(session *clientSession) {
	defer func() {
		g.disconnect(session)
		g.wg.Done()
	}()

	for {
		_, payload, err := session.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame ClientFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			session.write(ServerFrame{Type: FrameError, Message: "malformed frame"})
			continue
		}
		g.handleFrame(session, frame)
	}
}

func (g *Gateway) handleFrame(session *clientSession, frame ClientFrame) {
	switch frame.Type {
	case FrameSubscribe:
		if !frame.Topic.Valid() {
			session.write(ServerFrame{Type: FrameError, Message: fmt.Sprintf("unknown topic: %s", frame.Topic)})
			return
		}
		subscriptionID := g.registrar.Subscribe(session.clientID, frame.Topic, frame.Filter)
		session.write(ServerFrame{Type: FrameSubscribed, SubscriptionID: subscriptionID, Topic: frame.Topic})

	case FrameUnsubscribe:
		if !g.registrar.Unsubscribe(frame.SubscriptionID) {
			session.write(ServerFrame{Type: FrameError, Message: "unknown subscription: " + frame.SubscriptionID})
			return
		}
		session.write(ServerFrame{Type: FrameUnsubscribed, SubscriptionID: frame.SubscriptionID})

	case FrameToggle:
		active := frame.Active == nil || *frame.Active
		if !g.registrar.ToggleSubscription(frame.SubscriptionID, active) {
			session.write(ServerFrame{Type: FrameError, Message: "unknown subscription: " + frame.SubscriptionID})
			return
		}
		session.write(ServerFrame{Type: FrameToggled, SubscriptionID: frame.SubscriptionID})

	case FrameHeartbeat:
		session.write(ServerFrame{Type: FrameHeartbeat, Timestamp: time.Now().UnixMilli()})

	default:
		session.write(ServerFrame{Type: FrameError, Message: "unknown frame type: " + frame.Type})
	}
}

func (g *Gateway) drainLoop(session *clientSession) {
	defer g.wg.Done()

	ticker := time.NewTicker(g.opt.drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			messages := g.registrar.Drain(session.clientID)
			if len(messages) == 0 {
				continue
			}
			if err := session.write(ServerFrame{Type: FrameMessages, Messages: messages, Timestamp: time.Now().UnixMilli()}); err != nil {
				return
			}
		}
	}
}

// disconnect remove the session and every subscription the client owns
func (g *Gateway) disconnect(session *clientSession) {
	g.mu.Lock()
	_, stillTracked := g.sessions[session.clientID]
	delete(g.sessions, session.clientID)
	g.mu.Unlock()
	if !stillTracked {
		return
	}

	session.conn.Close()
	removed := g.registrar.UnsubscribeClient(session.clientID)
	logger.LogWithField(zapcore.InfoLevel, map[string]interface{}{
		"message":              "client disconnected",
		"clientId":             session.clientID,
		"removedSubscriptions": removed,
	})
}

func (s *clientSession) write(frame ServerFrame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(frame)
}
