// Package automation evaluates user-defined rules against board events and
// turns the matching rules into follow-up board actions.
package automation

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"boardcore/domain"
	"boardcore/reducer"
)

// Event is one task-state change that may fire automations.
type Event struct {
	Trigger domain.TriggerKind
	TaskID  string
}

// Engine evaluates automations. Every evaluated rule produces exactly one
// execution-log entry; failures are captured per rule and never stop the
// remaining rules.
type Engine struct {
	IDs    domain.IDGen
	Clock  func() time.Time
	Logger *log.Logger
}

// now defaults to the monotonic clock so same-instant log entries still sort
// in evaluation order.
func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return domain.MonotonicNow()
}

// Evaluate runs every automation in the snapshot against the event and
// returns the follow-up actions to dispatch plus one execution entry per
// rule. The snapshot is read-only; effects happen when the caller dispatches
// the returned actions.
func (e *Engine) Evaluate(s domain.Snapshot, ev Event) ([]reducer.Action, []domain.Execution) {
	var actions []reducer.Action
	executions := make([]domain.Execution, 0, len(s.Automations))

	for _, rule := range s.Automations {
		entry := domain.Execution{
			ID:             e.IDs.Next(),
			AutomationID:   rule.ID,
			AutomationName: rule.Name,
			TaskID:         ev.TaskID,
			Time:           e.now(),
		}

		ruleActions, outcome, msg := e.evaluateRule(s, rule, ev)
		entry.Outcome = outcome
		entry.Message = msg
		executions = append(executions, entry)
		actions = append(actions, ruleActions...)

		if e.Logger != nil {
			fields := log.Fields{
				"automation": rule.ID,
				"trigger":    string(ev.Trigger),
				"task":       ev.TaskID,
				"outcome":    string(outcome),
			}
			if outcome == domain.OutcomeError {
				e.Logger.WithFields(fields).WithField("error", msg).Warn("automation.evaluate.failed")
			} else {
				e.Logger.WithFields(fields).Debug("automation.evaluate")
			}
		}
	}
	return actions, executions
}

func (e *Engine) evaluateRule(s domain.Snapshot, rule domain.Automation, ev Event) ([]reducer.Action, domain.ExecutionOutcome, string) {
	if rule.Trigger != ev.Trigger {
		return nil, domain.OutcomeSkippedScope, ""
	}
	if !rule.Enabled {
		return nil, domain.OutcomeSkippedDisabled, ""
	}
	task, ok := s.TaskByID(ev.TaskID)
	if !ok {
		return nil, domain.OutcomeError, fmt.Sprintf("task %s not found", ev.TaskID)
	}
	for _, cond := range rule.Conditions {
		holds, err := e.conditionHolds(task, cond)
		if err != nil {
			return nil, domain.OutcomeError, err.Error()
		}
		if !holds {
			return nil, domain.OutcomeSkippedConditions, ""
		}
	}

	var actions []reducer.Action
	for _, act := range rule.Actions {
		a, err := e.buildAction(s, task, act)
		if err != nil {
			return nil, domain.OutcomeError, err.Error()
		}
		if a != nil {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return nil, domain.OutcomeSkippedNoop, ""
	}
	return actions, domain.OutcomeApplied, ""
}

func (e *Engine) conditionHolds(task domain.Task, cond domain.Condition) (bool, error) {
	switch cond.Kind {
	case domain.ConditionPriorityIs:
		return task.Priority == domain.Priority(cond.Value), nil
	case domain.ConditionColumnIs:
		return task.ColumnID == cond.Value, nil
	case domain.ConditionHasTag:
		return hasTag(task, cond.Value), nil
	case domain.ConditionMissingTag:
		return !hasTag(task, cond.Value), nil
	case domain.ConditionDueWithinDays:
		if task.DueDate == nil {
			return false, nil
		}
		return !task.DueDate.After(e.now().AddDate(0, 0, cond.Days)), nil
	case domain.ConditionProgressIs:
		return int(task.Progress()*100+0.5) == cond.Percent, nil
	case domain.ConditionAllSubtasksDone:
		if len(task.Subtasks) == 0 {
			return false, nil
		}
		for _, sub := range task.Subtasks {
			if !sub.Completed {
				return false, nil
			}
		}
		return true, nil
	case domain.ConditionAnySubtaskDone:
		for _, sub := range task.Subtasks {
			if sub.Completed {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown condition kind %q", cond.Kind)
}

// buildAction maps one rule effect onto a board action. A nil action with a
// nil error means the effect would not change anything.
func (e *Engine) buildAction(s domain.Snapshot, task domain.Task, act domain.AutomationAction) (reducer.Action, error) {
	switch act.Kind {
	case domain.AutoMoveToColumn:
		if _, ok := s.ColumnByID(act.Value); !ok {
			return nil, fmt.Errorf("move_to_column: unknown column %q", act.Value)
		}
		if task.ColumnID == act.Value {
			return nil, nil
		}
		return reducer.MoveTask{ID: task.ID, ColumnID: act.Value, Index: len(s.TasksInColumn(act.Value))}, nil

	case domain.AutoSetPriority:
		p := domain.Priority(act.Value)
		switch p {
		case domain.PriorityCritical, domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		default:
			return nil, fmt.Errorf("set_priority: unknown priority %q", act.Value)
		}
		if task.Priority == p {
			return nil, nil
		}
		return reducer.UpdateTask{ID: task.ID, Patch: reducer.TaskPatch{Priority: &p}}, nil

	case domain.AutoAddTag:
		tag, ok := tagByID(s, act.Value)
		if !ok {
			return nil, fmt.Errorf("add_tag: unknown tag %q", act.Value)
		}
		if hasTag(task, tag.ID) {
			return nil, nil
		}
		tags := append(append([]domain.Tag(nil), task.Tags...), tag)
		return reducer.UpdateTask{ID: task.ID, Patch: reducer.TaskPatch{Tags: &tags}}, nil

	case domain.AutoRemoveTag:
		if !hasTag(task, act.Value) {
			return nil, nil
		}
		tags := make([]domain.Tag, 0, len(task.Tags))
		for _, t := range task.Tags {
			if t.ID != act.Value {
				tags = append(tags, t)
			}
		}
		return reducer.UpdateTask{ID: task.ID, Patch: reducer.TaskPatch{Tags: &tags}}, nil

	case domain.AutoArchive:
		if task.Archived {
			return nil, nil
		}
		return reducer.ArchiveTask{ID: task.ID}, nil

	case domain.AutoUnarchive:
		if !task.Archived {
			return nil, nil
		}
		return reducer.UnarchiveTask{ID: task.ID}, nil

	case domain.AutoSetDueInDays:
		due := e.now().AddDate(0, 0, act.Days)
		if task.DueDate != nil && task.DueDate.Equal(due) {
			return nil, nil
		}
		return reducer.UpdateTask{ID: task.ID, Patch: reducer.TaskPatch{DueDate: &due}}, nil

	case domain.AutoNotify:
		return reducer.AddNotification{Message: act.Value, TaskID: task.ID}, nil
	}
	return nil, fmt.Errorf("unknown action kind %q", act.Kind)
}

func hasTag(task domain.Task, tagID string) bool {
	for _, t := range task.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

func tagByID(s domain.Snapshot, id string) (domain.Tag, bool) {
	for _, t := range s.Tags {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tag{}, false
}
