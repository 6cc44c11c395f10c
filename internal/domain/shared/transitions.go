package shared

// TransitionTable lists the statuses reachable from each status.
// Statuses with no entry are terminal.
type TransitionTable[S ~string] map[S][]S

// Allows reports whether moving from one status to another is permitted
func (t TransitionTable[S]) Allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status
func (t TransitionTable[S]) IsTerminal(status S) bool {
	return len(t[status]) == 0
}

// Check returns an InvalidTransitionError when the move is not permitted
func (t TransitionTable[S]) Check(entity, id string, from, to S) error {
	if t.Allows(from, to) {
		return nil
	}
	return &InvalidTransitionError{Entity: entity, ID: id, From: string(from), To: string(to)}
}
