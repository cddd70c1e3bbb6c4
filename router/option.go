package router

import (
	"time"

	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/relayshared"
	"github.com/golangid/relay/relayutils"
)

type (
	option struct {
		queueCapacity     int
		rateLimitWindow   time.Duration
		rateLimitCapacity int
		janitorInterval   time.Duration
		inactiveThreshold time.Duration
		locker            interfaces.Locker
		listeners         []relayshared.SubscriptionListener
		debugMode         bool
	}

	// OptionFunc type
	OptionFunc func(*option)
)

func getDefaultOption() option {
	return option{
		queueCapacity:     50,
		rateLimitWindow:   time.Minute,
		rateLimitCapacity: 100,
		janitorInterval:   5 * time.Minute,
		inactiveThreshold: 30 * time.Minute,
		locker:            &relayutils.NoopLocker{},
		debugMode:         true,
	}
}

// SetQueueCapacity option func, per subscription queue bound
func SetQueueCapacity(capacity int) OptionFunc {
	return func(o *option) {
		if capacity > 0 {
			o.queueCapacity = capacity
		}
	}
}

// SetRateLimit option func, fixed window length and admissions per window per client
func SetRateLimit(window time.Duration, capacity int) OptionFunc {
	return func(o *option) {
		if window > 0 {
			o.rateLimitWindow = window
		}
		if capacity > 0 {
			o.rateLimitCapacity = capacity
		}
	}
}

// SetJanitorInterval option func
func SetJanitorInterval(interval time.Duration) OptionFunc {
	return func(o *option) {
		if interval > 0 {
			o.janitorInterval = interval
		}
	}
}

// SetInactiveThreshold option func, subscriptions idle longer than this are reclaimed
func SetInactiveThreshold(threshold time.Duration) OptionFunc {
	return func(o *option) {
		if threshold > 0 {
			o.inactiveThreshold = threshold
		}
	}
}

// SetLocker option func, guard the janitor sweep when multiple instances share a redis
func SetLocker(locker interfaces.Locker) OptionFunc {
	return func(o *option) {
		o.locker = locker
	}
}

// AddSubscriptionListener option func, register lifecycle notification callback
func AddSubscriptionListener(listener relayshared.SubscriptionListener) OptionFunc {
	return func(o *option) {
		o.listeners = append(o.listeners, listener)
	}
}

// SetDebugMode option func
func SetDebugMode(debugMode bool) OptionFunc {
	return func(o *option) {
		o.debugMode = debugMode
	}
}
