package session

import (
	"time"

	"boardcore/automation"
	"boardcore/domain"
	"boardcore/reducer"
)

// automationEvents derives the trigger events a dispatched action produced,
// by diffing the task before and after the transition. Field-level triggers
// (due date, priority, tags, progress) fire in addition to the generic
// updated trigger.
func automationEvents(a reducer.Action, prev, next domain.Snapshot) []automation.Event {
	switch act := a.(type) {
	case reducer.CreateTask:
		if id := createdTaskID(prev, next); id != "" {
			return []automation.Event{{Trigger: domain.TriggerTaskCreated, TaskID: id}}
		}
	case reducer.DuplicateTask:
		if id := createdTaskID(prev, next); id != "" {
			return []automation.Event{{Trigger: domain.TriggerTaskCreated, TaskID: id}}
		}
	case reducer.UpdateTask:
		return updateEvents(act.ID, prev, next)
	case reducer.MoveTask:
		return []automation.Event{{Trigger: domain.TriggerTaskMoved, TaskID: act.ID}}
	case reducer.ToggleSubtask:
		return toggleEvents(act.TaskID, prev, next)
	case reducer.ToggleChecklistItem:
		return toggleEvents(act.TaskID, prev, next)
	case reducer.UpdateSubtask:
		if act.Patch.Completed != nil {
			return toggleEvents(act.TaskID, prev, next)
		}
		return progressEvents(act.TaskID, prev, next)
	case reducer.AddSubtask:
		return progressEvents(act.TaskID, prev, next)
	case reducer.DeleteSubtask:
		return progressEvents(act.TaskID, prev, next)
	}
	return nil
}

// createdTaskID finds the task present after the transition but not before.
func createdTaskID(prev, next domain.Snapshot) string {
	known := make(map[string]bool, len(prev.Tasks))
	for _, t := range prev.Tasks {
		known[t.ID] = true
	}
	for _, t := range next.Tasks {
		if !known[t.ID] {
			return t.ID
		}
	}
	return ""
}

func updateEvents(taskID string, prev, next domain.Snapshot) []automation.Event {
	events := []automation.Event{{Trigger: domain.TriggerTaskUpdated, TaskID: taskID}}
	before, okBefore := prev.TaskByID(taskID)
	after, okAfter := next.TaskByID(taskID)
	if !okBefore || !okAfter {
		return events
	}
	if !sameTimePtr(before.DueDate, after.DueDate) {
		events = append(events, automation.Event{Trigger: domain.TriggerDueDateChanged, TaskID: taskID})
	}
	if before.Priority != after.Priority {
		events = append(events, automation.Event{Trigger: domain.TriggerPriorityChanged, TaskID: taskID})
	}
	if !sameTags(before.Tags, after.Tags) {
		events = append(events, automation.Event{Trigger: domain.TriggerTagsChanged, TaskID: taskID})
	}
	if before.Progress() != after.Progress() {
		events = append(events, automation.Event{Trigger: domain.TriggerProgressChanged, TaskID: taskID})
	}
	return events
}

func toggleEvents(taskID string, prev, next domain.Snapshot) []automation.Event {
	events := []automation.Event{{Trigger: domain.TriggerSubtaskToggled, TaskID: taskID}}
	return append(events, progressEvents(taskID, prev, next)...)
}

func progressEvents(taskID string, prev, next domain.Snapshot) []automation.Event {
	before, okBefore := prev.TaskByID(taskID)
	after, okAfter := next.TaskByID(taskID)
	if !okBefore || !okAfter || before.Progress() == after.Progress() {
		return nil
	}
	return []automation.Event{{Trigger: domain.TriggerProgressChanged, TaskID: taskID}}
}

func sameTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameTags(a, b []domain.Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
