package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hamed0406/netmonitor/internal/domain"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadHosts_YAMLKeepsOrder(t *testing.T) {
	p := writeFile(t, "hosts.yaml", `
hosts:
  - ip: 10.0.0.2
    abbrev: B
    description: Switch
  - ip: 10.0.0.1
    abbrev: A
    description: Router
  - ip: nas.lan
    abbrev: N
`)
	hosts, err := LoadHosts(p)
	if err != nil {
		t.Fatalf("LoadHosts: %v", err)
	}
	want := []domain.Host{
		{IP: "10.0.0.2", Abbrev: "B", Description: "Switch"},
		{IP: "10.0.0.1", Abbrev: "A", Description: "Router"},
		{IP: "nas.lan", Abbrev: "N"},
	}
	if len(hosts) != len(want) {
		t.Fatalf("want %d hosts, got %d", len(want), len(hosts))
	}
	for i := range want {
		if hosts[i] != want[i] {
			t.Fatalf("host %d: want %+v got %+v", i, want[i], hosts[i])
		}
	}
}

func TestLoadHosts_JSON(t *testing.T) {
	p := writeFile(t, "hosts.json", `{"hosts":[{"ip":"192.168.1.1","abbrev":"GW","description":"Gateway"}]}`)
	hosts, err := LoadHosts(p)
	if err != nil {
		t.Fatalf("LoadHosts: %v", err)
	}
	if len(hosts) != 1 || hosts[0].Abbrev != "GW" {
		t.Fatalf("unexpected hosts %+v", hosts)
	}
}

func TestLoadHosts_MissingFile(t *testing.T) {
	_, err := LoadHosts(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read hosts file") {
		t.Fatalf("want read error, got %v", err)
	}
}

func TestLoadHosts_EmptyList(t *testing.T) {
	p := writeFile(t, "hosts.yaml", "hosts: []\n")
	if _, err := LoadHosts(p); !errors.Is(err, ErrNoHosts) {
		t.Fatalf("want ErrNoHosts, got %v", err)
	}
}

func TestValidateHosts(t *testing.T) {
	cases := []struct {
		name  string
		hosts []domain.Host
		want  error
	}{
		{"empty", nil, ErrNoHosts},
		{"ok ipv4", []domain.Host{{IP: "10.0.0.1", Abbrev: "A"}}, nil},
		{"ok ipv6", []domain.Host{{IP: "fe80::1", Abbrev: "A"}}, nil},
		{"ok hostname", []domain.Host{{IP: "core-sw1.example.com", Abbrev: "SW"}}, nil},
		{"blank ip", []domain.Host{{IP: "", Abbrev: "A"}}, ErrBadAddress},
		{"bad chars", []domain.Host{{IP: "10.0.0.1:80", Abbrev: "A"}}, ErrBadAddress},
		{"leading hyphen", []domain.Host{{IP: "-bad.lan", Abbrev: "A"}}, ErrBadAddress},
		{"empty label", []domain.Host{{IP: "a..b", Abbrev: "A"}}, ErrBadAddress},
		{"duplicate", []domain.Host{{IP: "10.0.0.1", Abbrev: "A"}, {IP: "10.0.0.1", Abbrev: "B"}}, ErrDuplicateHost},
		{"no abbrev", []domain.Host{{IP: "10.0.0.1", Abbrev: "  "}}, ErrMissingAbbrev},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateHosts(c.hosts)
			if c.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("want %v, got %v", c.want, err)
			}
		})
	}
}
