package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netmonitor/internal/domain"
	"github.com/hamed0406/netmonitor/internal/metrics"
	"github.com/hamed0406/netmonitor/internal/notify"
)

const DefaultNotifyInterval = 120 * time.Second

type GateConfig struct {
	// Interval is the minimum time between two alerts.
	Interval time.Duration
	// Destination is passed through to the notifier (e.g. a chat id).
	Destination string
}

// Gate rate-limits unreachable-host alerts. It does not track which hosts
// changed: inside the interval every alert is dropped, after it the current
// unreachable set is sent again.
type Gate struct {
	notifier notify.Notifier
	cfg      GateConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu       sync.Mutex
	lastSent time.Time // zero until the first dispatch
}

func NewGate(n notify.Notifier, cfg GateConfig, logger *zap.Logger, m *metrics.Metrics) *Gate {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultNotifyInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		notifier: n,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Evaluate sends one alert listing unreachable if the interval since the
// last dispatch has elapsed. It reports whether the alert was delivered.
// The interval restarts on every dispatch, delivered or not.
func (g *Gate) Evaluate(ctx context.Context, unreachable []domain.Host) bool {
	if len(unreachable) == 0 {
		return false
	}

	g.mu.Lock()
	now := g.now()
	if !g.lastSent.IsZero() && now.Sub(g.lastSent) < g.cfg.Interval {
		since := now.Sub(g.lastSent)
		g.mu.Unlock()
		g.metrics.ObserveAlert(metrics.AlertSuppressed)
		g.logger.Debug("notify_suppressed",
			zap.Int("unreachable", len(unreachable)),
			zap.Duration("since_last", since),
		)
		return false
	}
	g.lastSent = now
	g.mu.Unlock()

	text := Message(unreachable)
	if err := g.notifier.Send(ctx, g.cfg.Destination, text); err != nil {
		g.metrics.ObserveAlert(metrics.AlertFailed)
		g.logger.Warn("notify_failed", zap.String("text", text), zap.Error(err))
		return false
	}
	g.metrics.ObserveAlert(metrics.AlertSent)
	g.logger.Info("notify_sent", zap.String("text", text))
	return true
}

// LastSent returns the time of the last dispatch, zero if none.
func (g *Gate) LastSent() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSent
}

// Message formats the alert text for the given hosts.
func Message(hosts []domain.Host) string {
	ips := make([]string, 0, len(hosts))
	for _, h := range hosts {
		ips = append(ips, h.IP)
	}
	return "Unreachable host(s): " + strings.Join(ips, ",")
}
