package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/hamed0406/netmonitor/internal/domain"
)

func main() {
	_ = godotenv.Load()

	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	api = strings.TrimRight(api, "/")

	// REFRESH_INTERVAL in seconds; 0 prints once
	var every time.Duration
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			every = time.Duration(n) * time.Second
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := &http.Client{Timeout: 10 * time.Second}
	for {
		rows, err := fetch(ctx, client, api)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error contacting API:", err)
			if every == 0 {
				os.Exit(1)
			}
		} else {
			if every > 0 {
				fmt.Print("\033[H\033[2J")
			}
			render(os.Stdout, rows)
		}
		if every == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(every):
		}
	}
}

func fetch(ctx context.Context, c *http.Client, api string) ([]domain.StatusRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api+"/api/status", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status: %s", resp.Status)
	}
	var rows []domain.StatusRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return rows, nil
}

func render(w io.Writer, rows []domain.StatusRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ABBREV\tDESCRIPTION\tIP\tAVG LATENCY (ms)")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Abbrev, r.Description, r.IP, latencyCell(r))
	}
	_ = tw.Flush()
}

func latencyCell(r domain.StatusRow) string {
	switch r.Availability {
	case domain.Unreachable:
		return "Unreachable"
	case domain.Reachable:
		if r.AvgLatencyMS != nil {
			return strconv.FormatFloat(*r.AvgLatencyMS, 'f', 2, 64)
		}
	}
	return "-"
}
