package gateway

import (
	"github.com/golangid/relay/relayshared"
)

// frame types understood by the gateway, mirrored by the browser client
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FrameToggle      = "toggle"
	FrameHeartbeat   = "heartbeat"

	FrameConnected    = "connected"
	FrameSubscribed   = "subscribed"
	FrameUnsubscribed = "unsubscribed"
	FrameToggled      = "toggled"
	FrameMessages     = "messages"
	FrameError        = "error"
)

// ClientFrame inbound websocket frame
type ClientFrame struct {
	Type           string             `json:"type"`
	Topic          relayshared.Topic  `json:"topic,omitempty"`
	Filter         relayshared.Filter `json:"filter,omitempty"`
	SubscriptionID string             `json:"subscriptionId,omitempty"`
	Active         *bool              `json:"active,omitempty"`
}

// ServerFrame outbound websocket frame
type ServerFrame struct {
	Type           string                `json:"type"`
	ClientID       string                `json:"clientId,omitempty"`
	SubscriptionID string                `json:"subscriptionId,omitempty"`
	Topic          relayshared.Topic     `json:"topic,omitempty"`
	Messages       []relayshared.Message `json:"messages,omitempty"`
	Message        string                `json:"message,omitempty"`
	Timestamp      int64                 `json:"timestamp,omitempty"`
}
