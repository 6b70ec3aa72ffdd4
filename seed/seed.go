// Package seed builds the starter board used when no persisted document
// exists for a workspace.
package seed

import (
	"time"

	"boardcore/domain"
)

// Column ids of the template board. The backlog and done lanes are system
// columns and cannot be deleted.
const (
	ColumnBacklog    = "backlog"
	ColumnTodo       = "todo"
	ColumnInProgress = "in-progress"
	ColumnReview     = "review"
	ColumnDone       = "done"
)

// Snapshot returns the default board: template columns, a starter tag
// palette, a few sample tasks and disabled example automations. Identifiers
// for tasks and their children come from gen, so the result is deterministic
// under a deterministic generator.
func Snapshot(gen domain.IDGen, now time.Time) domain.Snapshot {
	doing := 3
	columns := []domain.Column{
		{ID: ColumnBacklog, Title: "Backlog", Subtitle: "Ideas and unscheduled work", Order: 0, System: true},
		{ID: ColumnTodo, Title: "To Do", Subtitle: "Ready to start", Order: 1},
		{ID: ColumnInProgress, Title: "In Progress", WIPLimit: &doing, Order: 2},
		{ID: ColumnReview, Title: "Review", Order: 3},
		{ID: ColumnDone, Title: "Done", Order: 4, System: true},
	}

	tags := []domain.Tag{
		{ID: "tag-feature", Name: "Feature", Color: "#4f8ef7"},
		{ID: "tag-bug", Name: "Bug", Color: "#e5484d"},
		{ID: "tag-research", Name: "Research", Color: "#8e4ef7"},
		{ID: "tag-chore", Name: "Chore", Color: "#8d8d8d"},
	}

	tasks := sampleTasks(gen, now, tags)
	automations := sampleAutomations(gen, now)

	return domain.Snapshot{
		Tasks:       tasks,
		Columns:     columns,
		Tags:        tags,
		Automations: automations,
	}
}

func sampleTasks(gen domain.IDGen, now time.Time, tags []domain.Tag) []domain.Task {
	welcome := domain.Task{
		ID:          gen.Next(),
		Title:       "Welcome to your board",
		Description: "Drag cards between columns, open one to edit details.",
		ColumnID:    ColumnTodo,
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusNotStarted,
		Tags:        []domain.Tag{tags[0]},
		CreatedAt:   now,
		Order:       0,
		Subtasks: []domain.Subtask{
			{ID: gen.Next(), Title: "Move this card to In Progress", CreatedAt: now},
			{ID: gen.Next(), Title: "Add a subtask of your own", CreatedAt: now},
		},
	}

	explore := domain.Task{
		ID:          gen.Next(),
		Title:       "Try filters and tags",
		Description: "Filter by priority or tag to narrow the board.",
		ColumnID:    ColumnBacklog,
		Priority:    domain.PriorityLow,
		Status:      domain.StatusNotStarted,
		Tags:        []domain.Tag{tags[2]},
		CreatedAt:   now,
		Order:       0,
	}

	sample := domain.Task{
		ID:        gen.Next(),
		Title:     "Example task in flight",
		ColumnID:  ColumnInProgress,
		Priority:  domain.PriorityHigh,
		Status:    domain.StatusInProgress,
		Tags:      []domain.Tag{tags[1]},
		CreatedAt: now,
		Order:     0,
		Subtasks: []domain.Subtask{
			{ID: gen.Next(), Title: "Reproduce the issue", Completed: true, CreatedAt: now},
			{ID: gen.Next(), Title: "Write a failing test", CreatedAt: now},
			{ID: gen.Next(), Title: "Fix and verify", CreatedAt: now},
		},
	}

	return []domain.Task{welcome, explore, sample}
}

// sampleAutomations are shipped disabled so the starter board never mutates
// itself until the user opts in.
func sampleAutomations(gen domain.IDGen, now time.Time) []domain.Automation {
	return []domain.Automation{
		{
			ID:      gen.Next(),
			Name:    "Archive finished work",
			Enabled: false,
			Trigger: domain.TriggerTaskMoved,
			Conditions: []domain.Condition{
				{Kind: domain.ConditionColumnIs, Value: ColumnDone},
			},
			Actions: []domain.AutomationAction{
				{Kind: domain.AutoArchive},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:      gen.Next(),
			Name:    "Flag urgent due dates",
			Enabled: false,
			Trigger: domain.TriggerDueDateChanged,
			Conditions: []domain.Condition{
				{Kind: domain.ConditionDueWithinDays, Days: 2},
			},
			Actions: []domain.AutomationAction{
				{Kind: domain.AutoSetPriority, Value: string(domain.PriorityCritical)},
				{Kind: domain.AutoNotify, Value: "A task is due within 2 days"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
