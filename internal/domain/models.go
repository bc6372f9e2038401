package domain

import "time"

// Host is one monitored network endpoint. IP is the identifier used as the
// store key; it may be an IPv4/IPv6 literal or a resolvable name.
type Host struct {
	IP          string `json:"ip" mapstructure:"ip"`
	Abbrev      string `json:"abbrev" mapstructure:"abbrev"`
	Description string `json:"description" mapstructure:"description"`
}

// Sample is a single ICMP echo attempt. OK=false means no reply.
type Sample struct {
	RTTms float64
	OK    bool
}

// Round is the batch of attempts that counts as one unit of hysteresis.
type Round []Sample

// HostStatus is the classified state of a host after a full pass.
// AvgLatencyMS is only ever set when Availability is Reachable.
type HostStatus struct {
	Availability Availability `json:"availability"`
	AvgLatencyMS *float64     `json:"avg_latency_ms"`
	LastUpdated  time.Time    `json:"last_updated"`
}

// UnknownStatus is what readers see for a host before its first pass.
func UnknownStatus() HostStatus {
	return HostStatus{Availability: Unknown}
}

// Clone returns a copy that shares no memory with s.
func (s HostStatus) Clone() HostStatus {
	if s.AvgLatencyMS != nil {
		v := *s.AvgLatencyMS
		s.AvgLatencyMS = &v
	}
	return s
}

// StatusRow is one entry of a status snapshot, in configured host order.
type StatusRow struct {
	Abbrev       string       `json:"abbrev"`
	Description  string       `json:"description"`
	IP           string       `json:"ip"`
	Availability Availability `json:"availability"`
	AvgLatencyMS *float64     `json:"avg_latency_ms"`
	LastUpdated  time.Time    `json:"last_updated"`
}
