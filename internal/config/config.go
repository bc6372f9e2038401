package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr      string // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir    string // logs directory
	LogLevel  string // debug, info, warn, error
	HostsFile string // yaml/json/toml host list

	// Probing
	ProbeTimeout   time.Duration // per echo request
	Rounds         int
	Attempts       int
	RoundPause     time.Duration
	CyclePause     time.Duration
	Threshold      int // unavailable rounds needed for Unreachable
	MaxConcurrent  int // 0 = one goroutine per host
	ICMPPrivileged bool

	// Alerting
	NotifyInterval   time.Duration
	TelegramBotToken string
	TelegramChatID   string
	SlackWebhook     string
	SlackChannel     string

	// Status API
	AllowedOrigins []string
	PublicRPM      int
	PublicBurst    int
}

func FromEnv() Config {
	// Bind address (Windows-friendly default)
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	// Logs
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	hostsFile := os.Getenv("HOSTS_FILE")
	if hostsFile == "" {
		hostsFile = "hosts.yaml"
	}

	rounds := intEnv("PROBE_ROUNDS", 3, 1)
	privileged := false
	if v := os.Getenv("ICMP_PRIVILEGED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			privileged = b
		}
	}

	return Config{
		Addr:      addr,
		LogDir:    logDir,
		LogLevel:  logLevel,
		HostsFile: hostsFile,

		ProbeTimeout:   msEnv("PROBE_TIMEOUT_MS", time.Second, 1),
		Rounds:         rounds,
		Attempts:       intEnv("PROBE_ATTEMPTS", 4, 1),
		RoundPause:     msEnv("ROUND_PAUSE_MS", 5*time.Second, 0),
		CyclePause:     msEnv("CYCLE_PAUSE_MS", 10*time.Second, 0),
		Threshold:      intEnv("UNAVAILABILITY_THRESHOLD", rounds, 1),
		MaxConcurrent:  intEnv("MAX_CONCURRENT_PROBES", 0, 0),
		ICMPPrivileged: privileged,

		NotifyInterval:   msEnv("NOTIFY_INTERVAL_MS", 120*time.Second, 1),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SlackWebhook:     os.Getenv("SLACK_WEBHOOK"),
		SlackChannel:     os.Getenv("SLACK_CHANNEL"),

		AllowedOrigins: splitCSV(os.Getenv("ALLOWED_ORIGINS")),
		PublicRPM:      intEnv("PUBLIC_RPM", 120, 1),
		PublicBurst:    intEnv("PUBLIC_BURST", 20, 1),
	}
}

// intEnv returns def when key is unset, unparsable or below min.
func intEnv(key string, def, min int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= min {
			return n
		}
	}
	return def
}

func msEnv(key string, def time.Duration, min int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= min {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
