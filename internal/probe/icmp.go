package probe

import (
	"context"
	"runtime"
	"strings"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"

	"github.com/hamed0406/netmonitor/internal/domain"
)

// ICMPProber sends one echo request per Probe call using pro-bing.
type ICMPProber struct {
	Logger     *zap.Logger
	Timeout    time.Duration
	Privileged bool
}

// NewICMPProber returns a prober with the given per-attempt timeout.
// Raw sockets are only requested on windows unless overridden by the caller.
func NewICMPProber(logger *zap.Logger, timeout time.Duration) *ICMPProber {
	if timeout <= 0 {
		timeout = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ICMPProber{
		Logger:     logger,
		Timeout:    timeout,
		Privileged: runtime.GOOS == "windows",
	}
}

func (p *ICMPProber) Probe(ctx context.Context, addr string) domain.Sample {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return domain.Sample{}
	}

	pinger, err := probing.NewPinger(addr)
	if err != nil {
		p.Logger.Debug("probe_resolve_failed", zap.String("addr", addr), zap.Error(err))
		return domain.Sample{}
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	cctx, cancel := context.WithTimeout(ctx, p.Timeout+250*time.Millisecond)
	defer cancel()

	if err := pinger.RunWithContext(cctx); err != nil {
		p.Logger.Debug("probe_failed", zap.String("addr", addr), zap.Error(err))
		return domain.Sample{}
	}

	stats := pinger.Statistics()
	if stats == nil || stats.PacketsRecv == 0 || len(stats.Rtts) == 0 {
		return domain.Sample{}
	}
	return domain.Sample{RTTms: millis(stats.Rtts[0]), OK: true}
}
