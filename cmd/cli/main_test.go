package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hamed0406/netmonitor/internal/domain"
)

func TestLatencyCell(t *testing.T) {
	v := 10.5
	cases := []struct {
		row  domain.StatusRow
		want string
	}{
		{domain.StatusRow{Availability: domain.Reachable, AvgLatencyMS: &v}, "10.50"},
		{domain.StatusRow{Availability: domain.Unreachable}, "Unreachable"},
		{domain.StatusRow{Availability: domain.Unknown}, "-"},
		{domain.StatusRow{Availability: domain.Reachable}, "-"},
	}
	for _, c := range cases {
		if got := latencyCell(c.row); got != c.want {
			t.Fatalf("latencyCell(%+v) = %q want %q", c.row, got, c.want)
		}
	}
}

func TestFetchAndRender(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"abbrev":"A","description":"Router","ip":"10.0.0.1","availability":"reachable","avg_latency_ms":10,"last_updated":"2026-01-01T00:00:00Z"},
			{"abbrev":"B","description":"Switch","ip":"10.0.0.2","availability":"unreachable","avg_latency_ms":null,"last_updated":"2026-01-01T00:00:00Z"}
		]`))
	}))
	defer ts.Close()

	rows, err := fetch(context.Background(), ts.Client(), ts.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var buf bytes.Buffer
	render(&buf, rows)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "Router") || !strings.Contains(lines[1], "10.00") {
		t.Fatalf("row A wrong: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Unreachable") {
		t.Fatalf("row B wrong: %q", lines[2])
	}
}

func TestFetch_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	if _, err := fetch(context.Background(), ts.Client(), ts.URL); err == nil {
		t.Fatalf("expected error on 429")
	}
}
