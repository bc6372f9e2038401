package repo

import (
	"errors"

	"github.com/hamed0406/netmonitor/internal/domain"
)

// ErrUnknownHost is returned when writing a status for a host that is not
// part of the configured set.
var ErrUnknownHost = errors.New("unknown host")

// StatusReader is what the dashboard and other consumers see.
type StatusReader interface {
	// Get returns the status for host; ok is false for hosts outside the
	// configured set. A configured host that has not been classified yet
	// comes back as domain.UnknownStatus().
	Get(host string) (st domain.HostStatus, ok bool)
	// Snapshot lists every configured host in configured order.
	Snapshot() []domain.StatusRow
	// Unreachable lists hosts whose latest status is Unreachable.
	Unreachable() []domain.Host
}

// StatusStore is written only by the runner.
type StatusStore interface {
	StatusReader
	Set(host string, st domain.HostStatus) error
}
