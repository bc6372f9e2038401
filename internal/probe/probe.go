package probe

import (
	"context"
	"math"
	"time"

	"github.com/hamed0406/netmonitor/internal/domain"
)

// Prober performs a single ICMP echo attempt against addr.
//
// Implementations never return an error: timeouts, resolution failures and
// socket permission problems all come back as a Sample with OK=false.
type Prober interface {
	Probe(ctx context.Context, addr string) domain.Sample
}

// ProberFunc adapts a plain function to Prober.
type ProberFunc func(ctx context.Context, addr string) domain.Sample

func (f ProberFunc) Probe(ctx context.Context, addr string) domain.Sample { return f(ctx, addr) }

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// millis converts a round-trip time to milliseconds with two decimals.
func millis(d time.Duration) float64 {
	return Round2(float64(d) / float64(time.Millisecond))
}
