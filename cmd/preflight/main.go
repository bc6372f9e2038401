// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hamed0406/netmonitor/internal/config"
	"github.com/hamed0406/netmonitor/internal/logging"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	if err := godotenv.Load(); err == nil {
		ok(".env loaded")
	}
	cfg := config.FromEnv()

	hosts, err := config.LoadHosts(cfg.HostsFile)
	if err != nil {
		fail("host file: " + err.Error())
	}
	ok(fmt.Sprintf("HOSTS_FILE=%s (%d hosts)", cfg.HostsFile, len(hosts)))

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		fail(err.Error())
	}
	ok("LOG_LEVEL=" + cfg.LogLevel)

	if cfg.Threshold > cfg.Rounds {
		warn(fmt.Sprintf("UNAVAILABILITY_THRESHOLD=%d exceeds PROBE_ROUNDS=%d; no host can ever be unreachable.", cfg.Threshold, cfg.Rounds))
	}

	tg := strings.TrimSpace(cfg.TelegramBotToken) != ""
	switch {
	case tg && cfg.TelegramChatID == "":
		fail("TELEGRAM_BOT_TOKEN set but TELEGRAM_CHAT_ID is empty.")
	case tg:
		ok("Telegram alerts enabled")
	}
	if cfg.SlackWebhook != "" {
		if !strings.HasPrefix(cfg.SlackWebhook, "https://") {
			warn("SLACK_WEBHOOK is not an https URL.")
		}
		ok("Slack alerts enabled")
	}
	if !tg && cfg.SlackWebhook == "" {
		warn("no notifier credentials; alerts will only be logged.")
	}

	if len(cfg.AllowedOrigins) == 0 {
		warn("ALLOWED_ORIGINS empty; any origin may read the status API.")
	} else {
		ok("ALLOWED_ORIGINS=" + strings.Join(cfg.AllowedOrigins, ","))
	}

	ok("API_ADDR=" + cfg.Addr)
	ok("preflight passed")
}
