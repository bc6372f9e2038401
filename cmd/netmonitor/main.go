package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hamed0406/netmonitor/internal/config"
	"github.com/hamed0406/netmonitor/internal/domain"
	"github.com/hamed0406/netmonitor/internal/httpapi"
	"github.com/hamed0406/netmonitor/internal/logging"
	"github.com/hamed0406/netmonitor/internal/metrics"
	"github.com/hamed0406/netmonitor/internal/notify"
	"github.com/hamed0406/netmonitor/internal/probe"
	"github.com/hamed0406/netmonitor/internal/repo/memory"
	"github.com/hamed0406/netmonitor/internal/scheduler"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	hosts, err := config.LoadHosts(cfg.HostsFile)
	if err != nil {
		logger.Fatal("config_error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := memory.New(hosts)
	m := metrics.New()

	prober := probe.NewICMPProber(logger, cfg.ProbeTimeout)
	prober.Privileged = prober.Privileged || cfg.ICMPPrivileged

	cls := probe.NewClassifier(prober)
	cls.Rounds = cfg.Rounds
	cls.Attempts = cfg.Attempts
	cls.Threshold = cfg.Threshold
	cls.RoundPause = cfg.RoundPause
	cls.Observe = func(_ domain.Host, s domain.Sample) { m.ObserveSample(s) }

	gate := scheduler.NewGate(buildNotifier(cfg, logger), scheduler.GateConfig{
		Interval: cfg.NotifyInterval,
	}, logger, m)

	runner := scheduler.NewRunner(logger, hosts, store, cls, gate, m, cfg.CyclePause, cfg.MaxConcurrent)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		runner.Run(ctx)
	}()

	api := httpapi.NewServer(logger, store, m)
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Router(httpapi.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			PublicRPM:      cfg.PublicRPM,
			PublicBurst:    cfg.PublicBurst,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.Int("hosts", len(hosts)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_listen_failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown_started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}
	<-runDone
	logger.Info("shutdown_complete")
}

// buildNotifier wires every configured sink. Without credentials alerts
// only go to the log.
func buildNotifier(cfg config.Config, logger *zap.Logger) notify.Notifier {
	var sinks notify.Multi
	if tg := notify.NewTelegram(cfg.TelegramBotToken); tg != nil {
		if cfg.TelegramChatID == "" {
			logger.Warn("telegram_chat_id_missing")
		} else {
			sinks = append(sinks, notify.Pinned{Notifier: tg, Destination: cfg.TelegramChatID})
		}
	}
	if sl := notify.NewSlack(cfg.SlackWebhook); sl != nil {
		sinks = append(sinks, notify.Pinned{Notifier: sl, Destination: cfg.SlackChannel})
	}
	if len(sinks) == 0 {
		logger.Info("notify_log_only")
		return notify.NewLog(logger)
	}
	return sinks
}
