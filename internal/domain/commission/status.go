package commission

import "fmt"

// statusTransitions lists the legal moves of CommissionRecord.Status.
// adjusted -> adjusted covers repeated corrections; paid and cancelled are terminal.
var statusTransitions = map[RecordStatus][]RecordStatus{
	RecordStatusPending:  {RecordStatusAdjusted, RecordStatusPaid, RecordStatusCancelled},
	RecordStatusAdjusted: {RecordStatusAdjusted, RecordStatusPaid, RecordStatusCancelled},
}

// CanTransition reports whether a record may move from one status to another.
func CanTransition(from, to RecordStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidStateTransition for an illegal move.
func CheckTransition(from, to RecordStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, from, to)
	}
	return nil
}

// IsTerminal reports whether no further status change is possible.
func (s RecordStatus) IsTerminal() bool {
	return s == RecordStatusPaid || s == RecordStatusCancelled
}
