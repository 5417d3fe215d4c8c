package service

import (
	"fmt"
	"time"

	"github.com/DEATHAIsol/instantfi/pkg/types/market"
)

type State int

const (
	// StateIdle means no refresh has succeeded yet; quotes are zero.
	StateIdle State = iota
	StateLive
	// StateDegraded means the last refresh failed and the assets are the
	// last good ones.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLive:
		return "live"
	case StateDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a committed view of the asset collection. It is never mutated
// after publication; callers must treat Assets as read-only.
type Snapshot struct {
	Assets        []market.Asset   `json:"assets"`
	State         State            `json:"state"`
	ErrorKind     market.ErrorKind `json:"error_kind"`
	LastError     string           `json:"last_error,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
	LastSuccessAt time.Time        `json:"last_success_at"`
}

func (s *Snapshot) Stale() bool {
	return s.State == StateDegraded
}

func (s *Snapshot) FindByLocalID(localID string) (market.Asset, bool) {
	for _, a := range s.Assets {
		if a.LocalID == localID {
			return a, true
		}
	}
	return market.Asset{}, false
}
