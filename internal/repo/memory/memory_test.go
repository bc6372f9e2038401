package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hamed0406/netmonitor/internal/domain"
	"github.com/hamed0406/netmonitor/internal/repo"
)

var hosts = []domain.Host{
	{IP: "10.0.0.1", Abbrev: "A", Description: "Router"},
	{IP: "10.0.0.2", Abbrev: "B", Description: "Switch"},
}

func latency(v float64) *float64 { return &v }

func TestStore_UnknownBeforeFirstSet(t *testing.T) {
	s := New(hosts)

	st, ok := s.Get("10.0.0.1")
	if !ok {
		t.Fatalf("configured host should be known")
	}
	if st.Availability != domain.Unknown || st.AvgLatencyMS != nil {
		t.Fatalf("want unknown placeholder, got %+v", st)
	}

	if _, ok := s.Get("10.9.9.9"); ok {
		t.Fatalf("unconfigured host should not be found")
	}
}

func TestStore_SetAndSnapshotKeepOrder(t *testing.T) {
	s := New(hosts)
	now := time.Now().UTC()

	if err := s.Set("10.0.0.2", domain.HostStatus{Availability: domain.Unreachable, LastUpdated: now}); err != nil {
		t.Fatalf("Set B: %v", err)
	}
	if err := s.Set("10.0.0.1", domain.HostStatus{Availability: domain.Reachable, AvgLatencyMS: latency(10), LastUpdated: now}); err != nil {
		t.Fatalf("Set A: %v", err)
	}

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("want 2 rows, got %d", len(snap))
	}
	if snap[0].Abbrev != "A" || snap[1].Abbrev != "B" {
		t.Fatalf("snapshot not in configured order: %+v", snap)
	}
	if snap[0].Availability != domain.Reachable || snap[0].AvgLatencyMS == nil || *snap[0].AvgLatencyMS != 10 {
		t.Fatalf("unexpected row A: %+v", snap[0])
	}
	if snap[1].Availability != domain.Unreachable || snap[1].AvgLatencyMS != nil {
		t.Fatalf("unexpected row B: %+v", snap[1])
	}

	down := s.Unreachable()
	if len(down) != 1 || down[0].IP != "10.0.0.2" {
		t.Fatalf("unexpected unreachable list: %+v", down)
	}
}

func TestStore_RejectsUnknownHost(t *testing.T) {
	s := New(hosts)
	err := s.Set("192.168.1.1", domain.HostStatus{Availability: domain.Reachable})
	if !errors.Is(err, repo.ErrUnknownHost) {
		t.Fatalf("want ErrUnknownHost, got %v", err)
	}
	if len(s.Snapshot()) != len(hosts) {
		t.Fatalf("key set changed after rejected Set")
	}
}

func TestStore_DropsLatencyOnUnreachable(t *testing.T) {
	s := New(hosts)
	_ = s.Set("10.0.0.1", domain.HostStatus{Availability: domain.Unreachable, AvgLatencyMS: latency(3)})
	st, _ := s.Get("10.0.0.1")
	if st.AvgLatencyMS != nil {
		t.Fatalf("unreachable status kept latency %v", *st.AvgLatencyMS)
	}
}

func TestStore_ReadsDoNotAliasWrites(t *testing.T) {
	s := New(hosts)
	v := latency(10)
	_ = s.Set("10.0.0.1", domain.HostStatus{Availability: domain.Reachable, AvgLatencyMS: v})
	*v = 500

	st, _ := s.Get("10.0.0.1")
	if *st.AvgLatencyMS != 10 {
		t.Fatalf("store shares memory with caller: %v", *st.AvgLatencyMS)
	}
	*st.AvgLatencyMS = 700
	again, _ := s.Get("10.0.0.1")
	if *again.AvgLatencyMS != 10 {
		t.Fatalf("store shares memory with reader: %v", *again.AvgLatencyMS)
	}
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	s := New(hosts)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				_ = s.Set("10.0.0.1", domain.HostStatus{Availability: domain.Reachable, AvgLatencyMS: latency(float64(i))})
			} else {
				_ = s.Set("10.0.0.1", domain.HostStatus{Availability: domain.Unreachable})
			}
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for _, row := range s.Snapshot() {
					if row.AvgLatencyMS != nil && row.Availability != domain.Reachable {
						t.Errorf("torn read: %+v", row)
						return
					}
				}
				if len(s.Snapshot()) != len(hosts) {
					t.Errorf("snapshot lost a host")
					return
				}
			}
		}()
	}
	wg.Wait()
}
