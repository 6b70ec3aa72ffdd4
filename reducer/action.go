package reducer

import (
	"time"

	"boardcore/domain"
)

// Action is one typed board mutation. The reducer is a total switch over the
// concrete action types; anything else is an identity transition.
type Action interface {
	isAction()
}

// CreateTask synthesizes a full task from a partial draft. Missing fields are
// defaulted: placeholder title, not_started status, medium priority, order
// appended to the end of the target column.
type CreateTask struct {
	Draft domain.Task
}

// TaskPatch carries the optional fields of a task update. Nil pointers leave
// the field untouched; the Clear flags reset nullable dates and times.
type TaskPatch struct {
	Title          *string
	Description    *string
	ColumnID       *string
	Priority       *domain.Priority
	Status         *domain.Status
	Tags           *[]domain.Tag
	DueDate        *time.Time
	ClearDueDate   bool
	StartDate      *time.Time
	ClearStartDate bool
	Assignee       *string
	Subtasks       *[]domain.Subtask
	EstimatedTime  *float64
	ActualTime     *float64
	RelatedMarket  *string
	Attachments    *[]string
}

// UpdateTask merges a patch into the matched task and re-runs the
// status/subtask sync rule. Unknown ids are tolerated (identity transition).
type UpdateTask struct {
	ID    string
	Patch TaskPatch
}

// DeleteTask removes a task by id. Dependency records on other tasks that
// point at the deleted task are left in place; blocking lookups skip them.
type DeleteTask struct {
	ID string
}

// MoveTask places a task into a column at a target index and renumbers both
// affected columns densely.
type MoveTask struct {
	ID       string
	ColumnID string
	Index    int
}

// ArchiveTask flips the archived flag on; column and status are untouched.
type ArchiveTask struct {
	ID string
}

// UnarchiveTask flips the archived flag off.
type UnarchiveTask struct {
	ID string
}

// DuplicateTask clones a task with a fresh id, " (copy)" title suffix, fresh
// subtask ids and an order appended to the end of the same column.
type DuplicateTask struct {
	ID string
}

// AddSubtask appends a subtask to the owning task.
type AddSubtask struct {
	TaskID     string
	Title      string
	AssignedTo string
	DueDate    *time.Time
}

// SubtaskPatch carries the optional fields of a subtask update.
type SubtaskPatch struct {
	Title      *string
	Completed  *bool
	AssignedTo *string
	DueDate    *time.Time
}

// UpdateSubtask merges a patch into one subtask.
type UpdateSubtask struct {
	TaskID    string
	SubtaskID string
	Patch     SubtaskPatch
}

// ToggleSubtask flips a subtask's completed flag.
type ToggleSubtask struct {
	TaskID    string
	SubtaskID string
}

// DeleteSubtask removes one subtask.
type DeleteSubtask struct {
	TaskID    string
	SubtaskID string
}

// AddChecklistItem is a deprecated synonym for AddSubtask kept for
// backward-compatible callers.
type AddChecklistItem struct {
	TaskID string
	Title  string
}

// ToggleChecklistItem is a deprecated synonym for ToggleSubtask.
type ToggleChecklistItem struct {
	TaskID string
	ItemID string
}

// DeleteChecklistItem is a deprecated synonym for DeleteSubtask.
type DeleteChecklistItem struct {
	TaskID string
	ItemID string
}

// CreateColumn appends a column at the end of the board.
type CreateColumn struct {
	Draft domain.Column
}

// ColumnPatch carries the optional fields of a column update.
type ColumnPatch struct {
	Title         *string
	Subtitle      *string
	Color         *string
	Icon          *string
	WIPLimit      *int
	ClearWIPLimit bool
	Hidden        *bool
}

// UpdateColumn shallow-merges a patch into the matched column.
type UpdateColumn struct {
	ID    string
	Patch ColumnPatch
}

// DeleteColumn removes a column. System columns are protected (identity
// transition). Orphaned tasks move to the first remaining column, or are
// dropped when none remains.
type DeleteColumn struct {
	ID string
}

// MoveColumn reinserts a column at the target position and renumbers all
// column orders densely.
type MoveColumn struct {
	ID    string
	Index int
}

// CreateTag appends a tag to the shared palette.
type CreateTag struct {
	Name  string
	Color string
}

// TagPatch carries the optional fields of a tag update.
type TagPatch struct {
	Name  *string
	Color *string
}

// UpdateTag merges a patch into the tag record and fans the same fields out
// to every task's embedded copy, atomically within the transition.
type UpdateTag struct {
	ID    string
	Patch TagPatch
}

// DeleteTag removes the tag and strips it from every task.
type DeleteTag struct {
	ID string
}

// CreateNote appends a note.
type CreateNote struct {
	Title   string
	Content string
}

// NotePatch carries the optional fields of a note update.
type NotePatch struct {
	Title   *string
	Content *string
}

// UpdateNote merges a patch into the note and always refreshes updatedAt.
type UpdateNote struct {
	ID    string
	Patch NotePatch
}

// DeleteNote removes a note by id.
type DeleteNote struct {
	ID string
}

// SetFilter replaces the view filter wholesale. Never enters undo history.
type SetFilter struct {
	Filter domain.Filter
}

// AddDependency appends a finish-to-start dependency record. Rejected on
// self-reference, cycle or duplicate.
type AddDependency struct {
	TaskID          string
	DependsOnTaskID string
}

// RemoveDependency filters a dependency record out by its record id.
type RemoveDependency struct {
	TaskID       string
	DependencyID string
}

// CreateAutomation appends an automation rule.
type CreateAutomation struct {
	Draft domain.Automation
}

// AutomationPatch carries the optional fields of an automation update.
type AutomationPatch struct {
	Name       *string
	Enabled    *bool
	Trigger    *domain.TriggerKind
	Conditions *[]domain.Condition
	Actions    *[]domain.AutomationAction
}

// UpdateAutomation merges a patch and refreshes updatedAt.
type UpdateAutomation struct {
	ID    string
	Patch AutomationPatch
}

// DeleteAutomation removes a rule by id.
type DeleteAutomation struct {
	ID string
}

// ToggleAutomation flips the enabled flag and refreshes updatedAt.
type ToggleAutomation struct {
	ID string
}

// AppendAutomationLog prepends execution entries to the capped log. Never
// enters undo history.
type AppendAutomationLog struct {
	Entries []domain.Execution
}

// AddNotification prepends a notification to the capped list. Never enters
// undo history.
type AddNotification struct {
	Message string
	TaskID  string
}

// DismissNotification removes one notification by id.
type DismissNotification struct {
	ID string
}

// ClearNotifications empties the notification list.
type ClearNotifications struct{}

// Undo pops the most recent past snapshot into present.
type Undo struct{}

// Redo pops the nearest future snapshot into present.
type Redo struct{}

// Init replaces the entire history with a freshly loaded or seeded snapshot.
type Init struct {
	Snapshot domain.Snapshot
}

func (CreateTask) isAction()          {}
func (UpdateTask) isAction()          {}
func (DeleteTask) isAction()          {}
func (MoveTask) isAction()            {}
func (ArchiveTask) isAction()         {}
func (UnarchiveTask) isAction()       {}
func (DuplicateTask) isAction()       {}
func (AddSubtask) isAction()          {}
func (UpdateSubtask) isAction()       {}
func (ToggleSubtask) isAction()       {}
func (DeleteSubtask) isAction()       {}
func (AddChecklistItem) isAction()    {}
func (ToggleChecklistItem) isAction() {}
func (DeleteChecklistItem) isAction() {}
func (CreateColumn) isAction()        {}
func (UpdateColumn) isAction()        {}
func (DeleteColumn) isAction()        {}
func (MoveColumn) isAction()          {}
func (CreateTag) isAction()           {}
func (UpdateTag) isAction()           {}
func (DeleteTag) isAction()           {}
func (CreateNote) isAction()          {}
func (UpdateNote) isAction()          {}
func (DeleteNote) isAction()          {}
func (SetFilter) isAction()           {}
func (AddDependency) isAction()       {}
func (RemoveDependency) isAction()    {}
func (CreateAutomation) isAction()    {}
func (UpdateAutomation) isAction()    {}
func (DeleteAutomation) isAction()    {}
func (ToggleAutomation) isAction()    {}
func (AppendAutomationLog) isAction() {}
func (AddNotification) isAction()     {}
func (DismissNotification) isAction() {}
func (ClearNotifications) isAction()  {}
func (Undo) isAction()                {}
func (Redo) isAction()                {}
func (Init) isAction()                {}

// SkipsHistory reports whether an action mutates present without touching the
// past/future stacks: view filtering and the ephemeral log collections.
func SkipsHistory(a Action) bool {
	switch a.(type) {
	case SetFilter, AppendAutomationLog, AddNotification, DismissNotification, ClearNotifications:
		return true
	}
	return false
}
