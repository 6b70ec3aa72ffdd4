package domain

import (
	"testing"
	"time"
)

func TestFilterArchivedHiddenByDefault(t *testing.T) {
	task := Task{ID: "t1", Title: "old", Archived: true}
	if (Filter{}).Matches(task) {
		t.Fatal("archived task should be hidden by default")
	}
	if !(Filter{ShowArchived: true}).Matches(task) {
		t.Fatal("showArchived should reveal archived task")
	}
}

func TestFilterPriorityAndTag(t *testing.T) {
	task := Task{ID: "t1", Priority: PriorityHigh, Tags: []Tag{{ID: "g1"}}}
	f := Filter{Priorities: []Priority{PriorityHigh, PriorityCritical}, TagIDs: []string{"g1"}}
	if !f.Matches(task) {
		t.Fatal("expected match on priority+tag")
	}
	f.TagIDs = []string{"g2"}
	if f.Matches(task) {
		t.Fatal("missing tag should exclude task")
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	task := Task{ID: "t1", Title: "Ship Release", Description: "cut the branch"}
	if !(Filter{Search: "ship"}).Matches(task) {
		t.Fatal("title search failed")
	}
	if !(Filter{Search: "BRANCH"}).Matches(task) {
		t.Fatal("description search failed")
	}
	if (Filter{Search: "unrelated"}).Matches(task) {
		t.Fatal("non-matching search should exclude")
	}
}

func TestFilterDueRange(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	from := due.AddDate(0, 0, -1)
	to := due.AddDate(0, 0, 1)
	task := Task{ID: "t1", DueDate: &due}

	if !(Filter{DueFrom: &from, DueTo: &to}).Matches(task) {
		t.Fatal("due date inside range should match")
	}
	late := due.AddDate(0, 1, 0)
	if (Filter{DueFrom: &late}).Matches(task) {
		t.Fatal("due date before range should not match")
	}
	if (Filter{DueFrom: &from}).Matches(Task{ID: "t2"}) {
		t.Fatal("task without due date should not match a date range")
	}
}
