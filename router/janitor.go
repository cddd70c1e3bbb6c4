package router

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golangid/relay/logger"
	"github.com/golangid/relay/relayhelper"
	"go.uber.org/zap/zapcore"
)

const janitorLockKey = "relay:janitor-sweep"

// Janitor periodic background sweep, reclaims subscriptions idle beyond the
// inactive threshold through the router unsubscribe path and deletes expired
// rate limit windows. One janitor per router.
type Janitor struct {
	router   *Router
	ticker   *time.Ticker
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewJanitor create janitor for router, interval, threshold and locker come
// from the router options
func NewJanitor(r *Router) *Janitor {
	return &Janitor{
		router:   r,
		ticker:   time.NewTicker(r.opt.janitorInterval),
		shutdown: make(chan struct{}),
	}
}

// Serve run the sweep loop until Shutdown, the stop signal is honored before
// the next scheduled tick
func (j *Janitor) Serve() {
	logger.LogYellow(fmt.Sprintf("[JANITOR] sweeping every %s (inactive threshold: %s)",
		j.router.opt.janitorInterval, j.router.opt.inactiveThreshold))

	j.wg.Add(1)
	defer j.wg.Done()

	for {
		select {
		case <-j.shutdown:
			return
		case <-j.ticker.C:
			j.Sweep()
		}
	}
}

// Shutdown stop the sweep loop and wait until a running sweep finishes
func (j *Janitor) Shutdown(ctx context.Context) {
	defer logger.LogGreen("janitor stopped")

	j.stopOnce.Do(func() {
		j.ticker.Stop()
		close(j.shutdown)
	})

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Sweep run one reclamation pass. A failure reclaiming one entry is logged and
// never aborts the rest of the sweep.
func (j *Janitor) Sweep() {
	// lock for multiple instance (if running on multiple pods sharing a redis)
	if j.router.opt.locker.IsLocked(janitorLockKey) {
		logger.LogYellow("janitor > sweep is locked by another instance")
		return
	}
	defer j.router.opt.locker.Unlock(janitorLockKey)

	reclaimed := 0
	for _, id := range j.router.registry.inactiveSince(j.router.opt.inactiveThreshold) {
		subscriptionID := id
		relayhelper.TryCatch{
			Try: func() {
				if j.router.Unsubscribe(subscriptionID) {
					reclaimed++
				}
			},
			Catch: func(err error) {
				logger.LogWithField(zapcore.ErrorLevel, map[string]interface{}{
					"message":        "janitor: reclaim subscription failed",
					"subscriptionId": subscriptionID,
					"error":          err.Error(),
				})
			},
		}.Do()
	}

	expired := j.router.limiter.cleanupExpired()

	if reclaimed > 0 || expired > 0 {
		logger.LogWithField(zapcore.InfoLevel, map[string]interface{}{
			"message":            "janitor sweep done",
			"reclaimed":          reclaimed,
			"expiredRateWindows": expired,
		})
	}
}
