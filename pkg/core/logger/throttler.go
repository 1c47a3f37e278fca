package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultThrottleInterval spaces repeated WARN entries for one key.
const defaultThrottleInterval = 5 * time.Minute

// LogThrottler demotes repeated WARN logs to DEBUG. Each key gets its own
// limiter, so independent error sources never starve each other, and each
// throttler instance keeps its own key space.
type LogThrottler struct {
	log      *zap.Logger
	interval time.Duration
	perKey   sync.Map // key -> *rate.Limiter
}

// NewLogThrottler wraps log with per-key throttling. An interval of zero
// selects the default of five minutes.
func NewLogThrottler(log *zap.Logger, interval time.Duration) *LogThrottler {
	if interval <= 0 {
		interval = defaultThrottleInterval
	}
	return &LogThrottler{
		log:      log,
		interval: interval,
	}
}

// Warn logs at WARN while the key has budget, at DEBUG otherwise. Noisy
// repeat offenders stay visible without flooding the log.
func (t *LogThrottler) Warn(key string, msg string, fields ...zap.Field) {
	if t.allow(key) {
		t.log.Warn(msg, fields...)
		return
	}
	t.log.Debug(msg, fields...)
}

func (t *LogThrottler) allow(key string) bool {
	limiter, ok := t.perKey.Load(key)
	if !ok {
		// One WARN per interval, no burst.
		limiter, _ = t.perKey.LoadOrStore(key, rate.NewLimiter(rate.Every(t.interval), 1))
	}
	return limiter.(*rate.Limiter).Allow()
}
