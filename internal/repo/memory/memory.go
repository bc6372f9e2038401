package memory

import (
	"fmt"
	"sync"

	"github.com/hamed0406/netmonitor/internal/domain"
	"github.com/hamed0406/netmonitor/internal/repo"
)

// Store holds the latest status of a fixed host set. The key set is decided
// at construction and never changes.
type Store struct {
	mu     sync.RWMutex
	hosts  []domain.Host
	status map[string]domain.HostStatus
}

var _ repo.StatusStore = (*Store)(nil)

func New(hosts []domain.Host) *Store {
	s := &Store{
		hosts:  make([]domain.Host, len(hosts)),
		status: make(map[string]domain.HostStatus, len(hosts)),
	}
	copy(s.hosts, hosts)
	for _, h := range hosts {
		s.status[h.IP] = domain.UnknownStatus()
	}
	return s
}

func (m *Store) Set(host string, st domain.HostStatus) error {
	if st.Availability != domain.Reachable {
		st.AvgLatencyMS = nil
	}
	st = st.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.status[host]; !ok {
		return fmt.Errorf("set %q: %w", host, repo.ErrUnknownHost)
	}
	m.status[host] = st
	return nil
}

func (m *Store) Get(host string) (domain.HostStatus, bool) {
	m.mu.RLock()
	st, ok := m.status[host]
	m.mu.RUnlock()
	if !ok {
		return domain.UnknownStatus(), false
	}
	return st.Clone(), true
}

func (m *Store) Snapshot() []domain.StatusRow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.StatusRow, 0, len(m.hosts))
	for _, h := range m.hosts {
		st := m.status[h.IP].Clone()
		out = append(out, domain.StatusRow{
			Abbrev:       h.Abbrev,
			Description:  h.Description,
			IP:           h.IP,
			Availability: st.Availability,
			AvgLatencyMS: st.AvgLatencyMS,
			LastUpdated:  st.LastUpdated,
		})
	}
	return out
}

func (m *Store) Unreachable() []domain.Host {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Host
	for _, h := range m.hosts {
		if m.status[h.IP].Availability == domain.Unreachable {
			out = append(out, h)
		}
	}
	return out
}
