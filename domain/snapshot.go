package domain

import "sort"

// Caps on the derived log collections held inside a snapshot.
const (
	AutomationLogCap = 200
	NotificationCap  = 50
)

// Snapshot is one complete, immutable state of the board. It is the unit of
// undo/redo and persistence; reducer transitions replace it wholesale.
type Snapshot struct {
	Tasks         []Task         `json:"tasks"`
	Columns       []Column       `json:"columns"`
	Tags          []Tag          `json:"tags"`
	Notes         []Note         `json:"notes,omitempty"`
	Filter        Filter         `json:"filter"`
	Automations   []Automation   `json:"automations,omitempty"`
	AutomationLog []Execution    `json:"automationLogs,omitempty"`
	Notifications []Notification `json:"-"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		c.Tasks[i] = t.Clone()
	}
	c.Columns = make([]Column, len(s.Columns))
	for i, col := range s.Columns {
		col.WIPLimit = cloneInt(col.WIPLimit)
		c.Columns[i] = col
	}
	c.Tags = append([]Tag(nil), s.Tags...)
	c.Notes = append([]Note(nil), s.Notes...)
	c.Filter = s.Filter.Clone()
	c.Automations = make([]Automation, len(s.Automations))
	for i, a := range s.Automations {
		c.Automations[i] = a.Clone()
	}
	c.AutomationLog = append([]Execution(nil), s.AutomationLog...)
	c.Notifications = append([]Notification(nil), s.Notifications...)
	return c
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// TaskByID returns the task with the given id, or false when absent.
func (s Snapshot) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// ColumnByID returns the column with the given id, or false when absent.
func (s Snapshot) ColumnByID(id string) (Column, bool) {
	for _, c := range s.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// TasksInColumn returns the non-archived tasks of a column sorted by their
// order index.
func (s Snapshot) TasksInColumn(columnID string) []Task {
	var out []Task
	for _, t := range s.Tasks {
		if t.ColumnID == columnID && !t.Archived {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// VisibleColumns returns the non-hidden columns sorted by order.
func (s Snapshot) VisibleColumns() []Column {
	var out []Column
	for _, c := range s.Columns {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// SortedColumns returns every column, hidden included, sorted by order.
func (s Snapshot) SortedColumns() []Column {
	out := append([]Column(nil), s.Columns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// WIPExceeded reports whether the column's non-archived task count is at or
// over its WIP limit. Columns without a limit never report exceeded.
func (s Snapshot) WIPExceeded(columnID string) bool {
	col, ok := s.ColumnByID(columnID)
	if !ok || col.WIPLimit == nil {
		return false
	}
	n := 0
	for _, t := range s.Tasks {
		if t.ColumnID == columnID && !t.Archived {
			n++
		}
	}
	return n >= *col.WIPLimit
}
