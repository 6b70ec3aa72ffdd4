package domain

import (
	"testing"
	"time"
)

func TestProgressNoSubtasks(t *testing.T) {
	task := Task{ID: "t1", Status: StatusNotStarted}
	if p := task.Progress(); p != 0 {
		t.Fatalf("expected 0 progress, got %v", p)
	}
	if task.Completed() {
		t.Fatal("task without subtasks must not count as completed")
	}
}

func TestProgressHalfThenComplete(t *testing.T) {
	now := time.Now()
	task := Task{
		ID:     "t1",
		Status: StatusInProgress,
		Subtasks: []Subtask{
			{ID: "s1", Title: "first", Completed: true, CreatedAt: now},
			{ID: "s2", Title: "second", CreatedAt: now},
		},
	}
	if p := task.Progress(); p != 0.5 {
		t.Fatalf("expected 0.5 progress, got %v", p)
	}
	// Half done must not auto-complete.
	task = task.SyncStatus()
	if task.Status != StatusInProgress {
		t.Fatalf("status changed unexpectedly: %s", task.Status)
	}

	task.Subtasks[1].Completed = true
	task = task.SyncStatus()
	if task.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", task.Status)
	}
	if p := task.Progress(); p != 1 {
		t.Fatalf("expected full progress, got %v", p)
	}
}

func TestSyncStatusDemotesOnIncompleteSubtask(t *testing.T) {
	now := time.Now()
	task := Task{
		ID:     "t1",
		Status: StatusCompleted,
		Subtasks: []Subtask{
			{ID: "s1", Completed: true, CreatedAt: now},
			{ID: "s2", Completed: false, CreatedAt: now},
		},
	}
	task = task.SyncStatus()
	if task.Status != StatusInProgress {
		t.Fatalf("expected in_progress, got %s", task.Status)
	}
}

func TestCompletedStatusShortCircuitsProgress(t *testing.T) {
	task := Task{ID: "t1", Status: StatusCompleted, Subtasks: []Subtask{{ID: "s1"}}}
	if p := task.Progress(); p != 1 {
		t.Fatalf("expected 1, got %v", p)
	}
	if !task.CanArchive() {
		t.Fatal("completed task should be archivable")
	}
}

func TestAggregateProgress(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: StatusCompleted},
		{ID: "b", Status: StatusNotStarted},
		{ID: "c", Status: StatusCompleted, Archived: true}, // excluded
	}
	if got := AggregateProgress(tasks); got != 50 {
		t.Fatalf("expected 50%%, got %d", got)
	}
	if got := AggregateProgress(nil); got != 0 {
		t.Fatalf("empty scope should be 0, got %d", got)
	}
	if got := AggregateProgress([]Task{{ID: "c", Archived: true}}); got != 0 {
		t.Fatalf("all-excluded scope should be 0, got %d", got)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	order := []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("%s should rank above %s", order[i-1], order[i])
		}
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	due := time.Now()
	task := Task{
		ID:       "t1",
		Tags:     []Tag{{ID: "g1", Name: "urgent"}},
		Subtasks: []Subtask{{ID: "s1", Title: "a"}},
		DueDate:  &due,
	}
	clone := task.Clone()
	clone.Tags[0].Name = "changed"
	clone.Subtasks[0].Completed = true
	*clone.DueDate = due.Add(time.Hour)

	if task.Tags[0].Name != "urgent" || task.Subtasks[0].Completed || !task.DueDate.Equal(due) {
		t.Fatal("clone shares memory with original")
	}
}
