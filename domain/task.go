package domain

import "time"

// Priority of a task. Ordering is critical > high > medium > low.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort weight of a priority, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Status of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusWaiting    Status = "waiting"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// Subtask is a single checklist entry owned by a task.
type Subtask struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	AssignedTo string     `json:"assignedTo,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DependencyType describes how a dependency constrains its dependent task.
// Only finish-to-start is currently produced.
type DependencyType string

const DependencyFinishToStart DependencyType = "finish-to-start"

// TaskDependency is a directed edge: the owning task cannot be considered
// unblocked until the task identified by DependsOnTaskID is completed.
type TaskDependency struct {
	ID              string         `json:"id"`
	Type            DependencyType `json:"type"`
	DependsOnTaskID string         `json:"dependsOnTaskId"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Task represents a single board item.
type Task struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	ColumnID      string           `json:"columnId"`
	Priority      Priority         `json:"priority"`
	Status        Status           `json:"status"`
	Tags          []Tag            `json:"tags,omitempty"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Assignee      string           `json:"assignee,omitempty"`
	Subtasks      []Subtask        `json:"subtasks,omitempty"`
	EstimatedTime *float64         `json:"estimatedTime,omitempty"`
	ActualTime    *float64         `json:"actualTime,omitempty"`
	RelatedMarket string           `json:"relatedMarket,omitempty"`
	Attachments   []string         `json:"attachments,omitempty"`
	Dependencies  []TaskDependency `json:"taskDependencies,omitempty"`
	Order         int              `json:"order"`
	Archived      bool             `json:"isArchived"`
}

// Progress returns the completion fraction of the task in [0,1].
// A completed status short-circuits to 1 regardless of subtasks.
func (t Task) Progress() float64 {
	if t.Status == StatusCompleted {
		return 1
	}
	if len(t.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return float64(done) / float64(len(t.Subtasks))
}

// Completed reports whether the task counts as done, independent of its
// column: either the status says so, or every subtask is checked off.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted || t.Progress() == 1
}

// ExcludedFromProgress reports whether the task is left out of aggregate
// progress calculations.
func (t Task) ExcludedFromProgress() bool {
	return t.Archived
}

// CanArchive reports whether archiving the task is permitted. Only completed
// tasks qualify; enforcement is advisory (the reducer does not reject).
func (t Task) CanArchive() bool {
	return t.Completed()
}

// SyncStatus reconciles the task's status with its subtask state: all
// subtasks completed promotes the status to completed, while a completed
// status with an unfinished subtask demotes it to in_progress. Tasks without
// subtasks are returned unchanged.
func (t Task) SyncStatus() Task {
	if len(t.Subtasks) == 0 {
		return t
	}
	all := true
	for _, s := range t.Subtasks {
		if !s.Completed {
			all = false
			break
		}
	}
	if all && t.Status != StatusCompleted {
		t.Status = StatusCompleted
	} else if !all && t.Status == StatusCompleted {
		t.Status = StatusInProgress
	}
	return t
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]Tag(nil), t.Tags...)
	c.Subtasks = cloneSubtasks(t.Subtasks)
	c.Attachments = append([]string(nil), t.Attachments...)
	c.Dependencies = append([]TaskDependency(nil), t.Dependencies...)
	c.DueDate = cloneTime(t.DueDate)
	c.StartDate = cloneTime(t.StartDate)
	c.EstimatedTime = cloneFloat(t.EstimatedTime)
	c.ActualTime = cloneFloat(t.ActualTime)
	return c
}

func cloneSubtasks(subs []Subtask) []Subtask {
	if subs == nil {
		return nil
	}
	out := make([]Subtask, len(subs))
	for i, s := range subs {
		s.DueDate = cloneTime(s.DueDate)
		out[i] = s
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// AggregateProgress returns the mean progress over the given tasks as a
// rounded percentage. Archived tasks are excluded; an empty scope yields 0.
func AggregateProgress(tasks []Task) int {
	sum := 0.0
	n := 0
	for _, t := range tasks {
		if t.ExcludedFromProgress() {
			continue
		}
		sum += t.Progress()
		n++
	}
	if n == 0 {
		return 0
	}
	return int(sum/float64(n)*100 + 0.5)
}
