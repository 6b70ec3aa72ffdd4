package reducer

import "boardcore/domain"

// HistoryLimit bounds the undo stack depth.
const HistoryLimit = 50

// State wraps the present snapshot in past/future lists. Past is
// chronological (most recent last); future holds undone snapshots with the
// nearest first.
type State struct {
	Past    []domain.Snapshot
	Present domain.Snapshot
	Future  []domain.Snapshot
}

// NewState returns a history containing only the given snapshot.
func NewState(s domain.Snapshot) State {
	return State{Present: s}
}

// CanUndo reports whether a past snapshot exists.
func (st State) CanUndo() bool { return len(st.Past) > 0 }

// CanRedo reports whether a future snapshot exists.
func (st State) CanRedo() bool { return len(st.Future) > 0 }

// push records the previous present on the undo stack, bounded to
// HistoryLimit, and clears the redo stack: a new branch invalidates redo.
func (st State) push(next domain.Snapshot) State {
	past := make([]domain.Snapshot, 0, len(st.Past)+1)
	past = append(past, st.Past...)
	past = append(past, st.Present)
	if len(past) > HistoryLimit {
		past = past[len(past)-HistoryLimit:]
	}
	return State{Past: past, Present: next}
}

// undo pops the most recent past snapshot into present and pushes the current
// present onto the front of future. Ephemeral fields (filter, logs,
// notifications) are carried forward: they are excluded from undo history.
func (st State) undo() State {
	if len(st.Past) == 0 {
		return st
	}
	prev := st.Past[len(st.Past)-1]
	prev = carryEphemeral(prev, st.Present)
	past := append([]domain.Snapshot(nil), st.Past[:len(st.Past)-1]...)
	future := make([]domain.Snapshot, 0, len(st.Future)+1)
	future = append(future, st.Present)
	future = append(future, st.Future...)
	return State{Past: past, Present: prev, Future: future}
}

// redo pops the nearest future snapshot into present and appends the current
// present to past.
func (st State) redo() State {
	if len(st.Future) == 0 {
		return st
	}
	next := st.Future[0]
	next = carryEphemeral(next, st.Present)
	future := append([]domain.Snapshot(nil), st.Future[1:]...)
	past := make([]domain.Snapshot, 0, len(st.Past)+1)
	past = append(past, st.Past...)
	past = append(past, st.Present)
	return State{Past: past, Present: next, Future: future}
}

// carryEphemeral keeps the non-undoable portions of the current snapshot when
// time-travelling: the filter, automation log and notifications never rewind.
func carryEphemeral(restored, current domain.Snapshot) domain.Snapshot {
	restored.Filter = current.Filter
	restored.AutomationLog = current.AutomationLog
	restored.Notifications = current.Notifications
	return restored
}
