package probe

import (
	"context"
	"time"

	"github.com/hamed0406/netmonitor/internal/domain"
)

const (
	DefaultRounds     = 3
	DefaultAttempts   = 4
	DefaultRoundPause = 5 * time.Second
)

// Classifier turns a pass of probe rounds into a debounced HostStatus.
// A host is only declared unreachable when at least Threshold rounds came
// back with no reply at all; any reply in any other round keeps it reachable.
type Classifier struct {
	Prober     Prober
	Rounds     int
	Attempts   int
	Threshold  int
	RoundPause time.Duration
	Now        func() time.Time

	// Observe, when set, is called with every sample taken.
	Observe func(h domain.Host, s domain.Sample)

	pause func(ctx context.Context, d time.Duration) bool
}

// NewClassifier returns a classifier with the default 3x4 round layout,
// a 5s pause after each round and a threshold equal to the round count.
func NewClassifier(p Prober) *Classifier {
	return &Classifier{
		Prober:     p,
		Rounds:     DefaultRounds,
		Attempts:   DefaultAttempts,
		Threshold:  DefaultRounds,
		RoundPause: DefaultRoundPause,
		Now:        time.Now,
	}
}

// Classify runs one full pass against h. If ctx is cancelled the pass stops
// early and the status is derived from whatever was collected.
func (c *Classifier) Classify(ctx context.Context, h domain.Host) domain.HostStatus {
	rounds, attempts, threshold := c.Rounds, c.Attempts, c.Threshold
	if rounds < 1 {
		rounds = DefaultRounds
	}
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	if threshold < 1 {
		threshold = rounds
	}
	pause := c.pause
	if pause == nil {
		pause = sleepContext
	}

	unavailable := 0
	samples := make([]domain.Sample, 0, rounds*attempts)

	for i := 0; i < rounds; i++ {
		round := make(domain.Round, 0, attempts)
		for j := 0; j < attempts; j++ {
			if ctx.Err() != nil {
				break
			}
			s := c.Prober.Probe(ctx, h.IP)
			if c.Observe != nil {
				c.Observe(h, s)
			}
			round = append(round, s)
		}
		// cancelled before this round took a sample
		if len(round) == 0 {
			break
		}
		if RoundUnavailable(round) {
			unavailable++
		}
		samples = append(samples, round...)
		if !pause(ctx, c.RoundPause) {
			break
		}
	}

	return Verdict(unavailable, threshold, samples, c.now())
}

// Verdict applies the hysteresis rule to a finished pass.
func Verdict(unavailable, threshold int, samples []domain.Sample, at time.Time) domain.HostStatus {
	if unavailable >= threshold {
		return domain.HostStatus{Availability: domain.Unreachable, LastUpdated: at}
	}
	return domain.HostStatus{
		Availability: domain.Reachable,
		AvgLatencyMS: AverageLatency(samples),
		LastUpdated:  at,
	}
}

// RoundUnavailable reports whether every attempt in the round got no reply.
func RoundUnavailable(r domain.Round) bool {
	for _, s := range r {
		if s.OK {
			return false
		}
	}
	return true
}

// AverageLatency is the mean RTT of the successful samples, rounded to two
// decimals, or nil when none succeeded.
func AverageLatency(samples []domain.Sample) *float64 {
	var sum float64
	n := 0
	for _, s := range samples {
		if !s.OK {
			continue
		}
		sum += s.RTTms
		n++
	}
	if n == 0 {
		return nil
	}
	avg := Round2(sum / float64(n))
	return &avg
}

func (c *Classifier) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

// sleepContext waits for d and reports false if ctx ended first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
