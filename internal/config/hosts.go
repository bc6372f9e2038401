package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"

	"github.com/hamed0406/netmonitor/internal/domain"
)

var (
	ErrNoHosts       = errors.New("no hosts configured")
	ErrBadAddress    = errors.New("malformed host address")
	ErrDuplicateHost = errors.New("duplicate host")
	ErrMissingAbbrev = errors.New("missing abbrev")
)

// LoadHosts reads the ordered host list from path. The format follows the
// file extension (yaml, json, toml). File order is preserved.
func LoadHosts(path string) ([]domain.Host, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read hosts file %s: %w", path, err)
	}

	var hosts []domain.Host
	if err := v.UnmarshalKey("hosts", &hosts); err != nil {
		return nil, fmt.Errorf("decode hosts in %s: %w", path, err)
	}
	if err := ValidateHosts(hosts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hosts, nil
}

// ValidateHosts checks a host list before it reaches the runner.
func ValidateHosts(hosts []domain.Host) error {
	if len(hosts) == 0 {
		return ErrNoHosts
	}
	seen := make(map[string]struct{}, len(hosts))
	for i, h := range hosts {
		if !validAddress(h.IP) {
			return fmt.Errorf("host %d %q: %w", i, h.IP, ErrBadAddress)
		}
		if _, dup := seen[h.IP]; dup {
			return fmt.Errorf("host %d %q: %w", i, h.IP, ErrDuplicateHost)
		}
		seen[h.IP] = struct{}{}
		if strings.TrimSpace(h.Abbrev) == "" {
			return fmt.Errorf("host %d %q: %w", i, h.IP, ErrMissingAbbrev)
		}
	}
	return nil
}

// validAddress accepts an IP literal or an RFC 1123 hostname.
func validAddress(s string) bool {
	if s == "" {
		return false
	}
	if net.ParseIP(s) != nil {
		return true
	}
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(strings.TrimSuffix(s, "."), ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			default:
				return false
			}
		}
	}
	return true
}
