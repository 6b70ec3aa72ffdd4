package domain

import "time"

// TriggerKind names the task-state change an automation reacts to.
type TriggerKind string

const (
	TriggerTaskCreated     TriggerKind = "task_created"
	TriggerTaskUpdated     TriggerKind = "task_updated"
	TriggerTaskMoved       TriggerKind = "task_moved"
	TriggerSubtaskToggled  TriggerKind = "subtask_toggled"
	TriggerDueDateChanged  TriggerKind = "due_date_changed"
	TriggerPriorityChanged TriggerKind = "priority_changed"
	TriggerTagsChanged     TriggerKind = "tags_changed"
	TriggerProgressChanged TriggerKind = "progress_changed"
)

// ConditionKind names an automation condition. Conditions are AND-combined
// in declaration order.
type ConditionKind string

const (
	ConditionPriorityIs       ConditionKind = "priority_is"
	ConditionColumnIs         ConditionKind = "column_is"
	ConditionHasTag           ConditionKind = "has_tag"
	ConditionMissingTag       ConditionKind = "missing_tag"
	ConditionDueWithinDays    ConditionKind = "due_within_days"
	ConditionProgressIs       ConditionKind = "progress_is"
	ConditionAllSubtasksDone  ConditionKind = "all_subtasks_done"
	ConditionAnySubtaskDone   ConditionKind = "any_subtask_done"
)

// Condition is one AND-combined predicate on the triggering task. Value
// carries the priority name, column id or tag id depending on Kind.
type Condition struct {
	Kind    ConditionKind `json:"kind"`
	Value   string        `json:"value,omitempty"`
	Days    int           `json:"days,omitempty"`
	Percent int           `json:"percent,omitempty"`
}

// AutomationActionKind names an automation action.
type AutomationActionKind string

const (
	AutoMoveToColumn AutomationActionKind = "move_to_column"
	AutoSetPriority  AutomationActionKind = "set_priority"
	AutoAddTag       AutomationActionKind = "add_tag"
	AutoRemoveTag    AutomationActionKind = "remove_tag"
	AutoArchive      AutomationActionKind = "archive"
	AutoUnarchive    AutomationActionKind = "unarchive"
	AutoSetDueInDays AutomationActionKind = "set_due_in_days"
	AutoNotify       AutomationActionKind = "notify"
)

// AutomationAction is one effect applied when a rule fires. Value carries the
// column id, priority name, tag id or notification message depending on Kind.
type AutomationAction struct {
	Kind  AutomationActionKind `json:"kind"`
	Value string               `json:"value,omitempty"`
	Days  int                  `json:"days,omitempty"`
}

// Automation is a user-defined rule: when Trigger fires and every Condition
// holds, Actions are applied in order.
type Automation struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Enabled    bool               `json:"enabled"`
	Trigger    TriggerKind        `json:"trigger"`
	Conditions []Condition        `json:"conditions,omitempty"`
	Actions    []AutomationAction `json:"actions,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// Clone returns a deep copy of the automation.
func (a Automation) Clone() Automation {
	c := a
	c.Conditions = append([]Condition(nil), a.Conditions...)
	c.Actions = append([]AutomationAction(nil), a.Actions...)
	return c
}

// ExecutionOutcome classifies the result of evaluating one automation.
type ExecutionOutcome string

const (
	OutcomeApplied           ExecutionOutcome = "applied"
	OutcomeSkippedDisabled   ExecutionOutcome = "skipped_disabled"
	OutcomeSkippedConditions ExecutionOutcome = "skipped_conditions"
	OutcomeSkippedNoop       ExecutionOutcome = "skipped_noop"
	OutcomeSkippedScope      ExecutionOutcome = "skipped_scope"
	OutcomeError             ExecutionOutcome = "error"
)

// Execution is one automation-log entry: exactly one outcome per evaluated
// rule per triggering event.
type Execution struct {
	ID             string           `json:"id"`
	AutomationID   string           `json:"automationId"`
	AutomationName string           `json:"automationName"`
	TaskID         string           `json:"taskId,omitempty"`
	Outcome        ExecutionOutcome `json:"outcome"`
	Message        string           `json:"message,omitempty"`
	Time           time.Time        `json:"time"`
}
