package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golangid/relay/gateway"
	"github.com/golangid/relay/relayshared"
	"github.com/golangid/relay/router"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func dialGateway(t *testing.T, g *gateway.Gateway) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(g.HandleUpgrade))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) gateway.ServerFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame gateway.ServerFrame
	assert.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestGatewaySubscribeAndReceive(t *testing.T) {
	r := router.New()
	g := gateway.New(r, gateway.SetDrainInterval(10*time.Millisecond), gateway.SetDebugMode(false))
	conn, closeFunc := dialGateway(t, g)
	defer closeFunc()

	connected := readFrame(t, conn)
	assert.Equal(t, gateway.FrameConnected, connected.Type)
	assert.NotEmpty(t, connected.ClientID)

	assert.NoError(t, conn.WriteJSON(gateway.ClientFrame{
		Type:   gateway.FrameSubscribe,
		Topic:  relayshared.TopicPriceUpdates,
		Filter: relayshared.Filter{Symbols: []string{"BTC/USDT"}},
	}))
	subscribed := readFrame(t, conn)
	assert.Equal(t, gateway.FrameSubscribed, subscribed.Type)
	assert.NotEmpty(t, subscribed.SubscriptionID)

	delivered := r.Publish(relayshared.TopicPriceUpdates,
		map[string]interface{}{"symbol": "BTC/USDT", "price": 50000},
		relayshared.Filter{Symbols: []string{"BTC/USDT"}})
	assert.Equal(t, 1, delivered)

	messages := readFrame(t, conn)
	assert.Equal(t, gateway.FrameMessages, messages.Type)
	assert.Len(t, messages.Messages, 1)
	data := messages.Messages[0].Data.(map[string]interface{})
	assert.Equal(t, float64(50000), data["price"])
}

func TestGatewayFrameHandling(t *testing.T) {
	r := router.New()
	g := gateway.New(r, gateway.SetDebugMode(false))
	conn, closeFunc := dialGateway(t, g)
	defer closeFunc()
	readFrame(t, conn) // connected

	t.Run("Testcase #1: unknown topic rejected", func(t *testing.T) {
		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameSubscribe, Topic: "order_book"})
		frame := readFrame(t, conn)
		assert.Equal(t, gateway.FrameError, frame.Type)
	})

	t.Run("Testcase #2: unsubscribe unknown id rejected", func(t *testing.T) {
		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameUnsubscribe, SubscriptionID: "nope"})
		frame := readFrame(t, conn)
		assert.Equal(t, gateway.FrameError, frame.Type)
	})

	t.Run("Testcase #3: subscribe then toggle and unsubscribe", func(t *testing.T) {
		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameSubscribe, Topic: relayshared.TopicSystemStatus})
		subscribed := readFrame(t, conn)
		assert.Equal(t, gateway.FrameSubscribed, subscribed.Type)

		active := false
		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameToggle, SubscriptionID: subscribed.SubscriptionID, Active: &active})
		assert.Equal(t, gateway.FrameToggled, readFrame(t, conn).Type)

		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameUnsubscribe, SubscriptionID: subscribed.SubscriptionID})
		assert.Equal(t, gateway.FrameUnsubscribed, readFrame(t, conn).Type)
	})

	t.Run("Testcase #4: heartbeat echo", func(t *testing.T) {
		conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameHeartbeat})
		frame := readFrame(t, conn)
		assert.Equal(t, gateway.FrameHeartbeat, frame.Type)
		assert.NotZero(t, frame.Timestamp)
	})

	t.Run("Testcase #5: malformed frame reported", func(t *testing.T) {
		conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
		frame := readFrame(t, conn)
		assert.Equal(t, gateway.FrameError, frame.Type)
	})
}

func TestGatewayDisconnectCleansSubscriptions(t *testing.T) {
	r := router.New()
	g := gateway.New(r, gateway.SetDebugMode(false))
	conn, closeFunc := dialGateway(t, g)
	defer closeFunc()

	connected := readFrame(t, conn)
	conn.WriteJSON(gateway.ClientFrame{Type: gateway.FrameSubscribe, Topic: relayshared.TopicPriceUpdates})
	readFrame(t, conn)
	assert.Len(t, r.ListClientSubscriptions(connected.ClientID), 1)

	conn.Close()
	assert.Eventually(t, func() bool {
		return g.ActiveClients() == 0 && len(r.ListClientSubscriptions(connected.ClientID)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGatewayShutdown(t *testing.T) {
	r := router.New()
	g := gateway.New(r, gateway.SetDebugMode(false))
	conn, closeFunc := dialGateway(t, g)
	defer closeFunc()
	readFrame(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g.Shutdown(ctx)
	assert.Equal(t, 0, g.ActiveClients())
}

func TestGatewayRejectsUpgradeAfterShutdown(t *testing.T) {
	r := router.New()
	g := gateway.New(r, gateway.SetDebugMode(false))
	srv := httptest.NewServer(http.HandlerFunc(g.HandleUpgrade))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g.Shutdown(ctx)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	assert.Nil(t, conn)
	if resp != nil {
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	}
	assert.Equal(t, 0, g.ActiveClients())
}
