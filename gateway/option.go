package gateway

import (
	"time"
)

type (
	option struct {
		drainInterval  time.Duration
		maxMessageSize int64
		debugMode      bool
	}

	// OptionFunc type
	OptionFunc func(*option)
)

func getDefaultOption() option {
	return option{
		drainInterval:  100 * time.Millisecond,
		maxMessageSize: 64 * 1024,
		debugMode:      true,
	}
}

// SetDrainInterval option func, how often queued messages are pushed per client
func SetDrainInterval(interval time.Duration) OptionFunc {
	return func(o *option) {
		if interval > 0 {
			o.drainInterval = interval
		}
	}
}

// SetMaxMessageSize option func, inbound frame size limit in bytes
func SetMaxMessageSize(size int64) OptionFunc {
	return func(o *option) {
		if size > 0 {
			o.maxMessageSize = size
		}
	}
}

// SetDebugMode option func
func SetDebugMode(debugMode bool) OptionFunc {
	return func(o *option) {
		o.debugMode = debugMode
	}
}
