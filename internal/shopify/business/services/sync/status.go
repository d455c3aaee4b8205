package sync

import "fmt"

// LinkStatus is the sync state of one (product, account) link.
type LinkStatus string

const (
	StatusUnsynced LinkStatus = "unsynced"
	StatusPending  LinkStatus = "pending"
	StatusSynced   LinkStatus = "synced"
	StatusFailed   LinkStatus = "failed"
)

func ParseStatus(raw string) (LinkStatus, error) {
	switch LinkStatus(raw) {
	case StatusUnsynced, StatusPending, StatusSynced, StatusFailed:
		return LinkStatus(raw), nil
	}
	return "", fmt.Errorf("unknown link status %q", raw)
}

// transitions is the allowed state machine. Every action moves a link
// through pending before settling on a terminal state.
var transitions = map[LinkStatus][]LinkStatus{
	StatusUnsynced: {StatusPending, StatusSynced},
	StatusPending:  {StatusSynced, StatusFailed, StatusUnsynced, StatusPending},
	StatusSynced:   {StatusPending, StatusFailed, StatusUnsynced},
	StatusFailed:   {StatusPending, StatusSynced, StatusUnsynced},
}

// CanTransition reports whether moving from to next is a legal step.
func CanTransition(from, to LinkStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
