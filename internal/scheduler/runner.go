package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/netmonitor/internal/domain"
	"github.com/hamed0406/netmonitor/internal/metrics"
	"github.com/hamed0406/netmonitor/internal/repo"
)

const DefaultCyclePause = 10 * time.Second

// Classifier runs one classification pass for a host.
type Classifier interface {
	Classify(ctx context.Context, h domain.Host) domain.HostStatus
}

// Alerter is told about the unreachable hosts after every cycle.
type Alerter interface {
	Evaluate(ctx context.Context, unreachable []domain.Host) bool
}

// Runner probes every host concurrently once per cycle and publishes the
// results only after the whole cycle has finished.
type Runner struct {
	Logger      *zap.Logger
	Hosts       []domain.Host
	Store       repo.StatusStore
	Classifier  Classifier
	Alerter     Alerter
	Metrics     *metrics.Metrics
	Pause       time.Duration
	Concurrency int // 0 means one goroutine per host
}

func NewRunner(
	logger *zap.Logger,
	hosts []domain.Host,
	store repo.StatusStore,
	classifier Classifier,
	alerter Alerter,
	m *metrics.Metrics,
	pause time.Duration,
	concurrency int,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pause < 0 {
		pause = 0
	}
	if concurrency < 0 {
		concurrency = 0
	}
	return &Runner{
		Logger:      logger,
		Hosts:       hosts,
		Store:       store,
		Classifier:  classifier,
		Alerter:     alerter,
		Metrics:     m,
		Pause:       pause,
		Concurrency: concurrency,
	}
}

// Run loops until ctx is cancelled: a cycle, then Pause, then the next one.
func (r *Runner) Run(ctx context.Context) {
	r.Logger.Info("runner_started",
		zap.Int("hosts", len(r.Hosts)),
		zap.Duration("pause", r.Pause),
	)
	for {
		r.RunCycle(ctx)

		t := time.NewTimer(r.Pause)
		select {
		case <-ctx.Done():
			t.Stop()
			r.Logger.Info("runner_stopped")
			return
		case <-t.C:
		}
	}
}

// RunCycle classifies all hosts, waits for the slowest, stores the results
// and hands the unreachable set to the alerter. Nothing is written when ctx
// is cancelled mid-cycle.
func (r *Runner) RunCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	start := time.Now()
	results := make([]*domain.HostStatus, len(r.Hosts))

	g, gctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, h := range r.Hosts {
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					r.Logger.Error("runner_classify_panic",
						zap.String("cycle_id", cycleID),
						zap.String("ip", h.IP),
						zap.Any("panic", p),
					)
				}
			}()
			st := r.Classifier.Classify(gctx, h)
			results[i] = &st
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		r.Logger.Info("runner_cycle_aborted", zap.String("cycle_id", cycleID))
		return
	}

	for i, h := range r.Hosts {
		st := results[i]
		if st == nil {
			continue
		}
		if err := r.Store.Set(h.IP, *st); err != nil {
			r.Logger.Warn("runner_store_error",
				zap.String("cycle_id", cycleID),
				zap.String("ip", h.IP),
				zap.Error(err),
			)
			continue
		}
		r.Metrics.ObserveStatus(h, *st)

		fields := []zap.Field{
			zap.String("cycle_id", cycleID),
			zap.String("ip", h.IP),
			zap.String("abbrev", h.Abbrev),
			zap.Stringer("availability", st.Availability),
		}
		if st.AvgLatencyMS != nil {
			fields = append(fields, zap.Float64("avg_latency_ms", *st.AvgLatencyMS))
		}
		r.Logger.Debug("runner_host_classified", fields...)
	}

	elapsed := time.Since(start)
	r.Metrics.ObserveCycle(elapsed)

	down := r.Store.Unreachable()
	if r.Alerter != nil {
		r.Alerter.Evaluate(ctx, down)
	}

	r.Logger.Info("runner_cycle_done",
		zap.String("cycle_id", cycleID),
		zap.Int("hosts", len(r.Hosts)),
		zap.Int("unreachable", len(down)),
		zap.Duration("elapsed", elapsed),
	)
}
