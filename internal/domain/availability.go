package domain

import (
	"encoding/json"
	"fmt"
)

// Availability is the tri-state reachability verdict of a host.
type Availability int

const (
	Unknown Availability = iota
	Reachable
	Unreachable
)

func (a Availability) String() string {
	switch a {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Availability) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "reachable":
		*a = Reachable
	case "unreachable":
		*a = Unreachable
	case "unknown", "":
		*a = Unknown
	default:
		return fmt.Errorf("unknown availability %q", s)
	}
	return nil
}
