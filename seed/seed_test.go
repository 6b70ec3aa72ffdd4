package seed

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

type seqGen struct{ n int }

func (g *seqGen) Next() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func TestSnapshotDeterministic(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	a := Snapshot(&seqGen{}, now)
	b := Snapshot(&seqGen{}, now)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("seed snapshot is not deterministic")
	}
}

func TestSnapshotShape(t *testing.T) {
	s := Snapshot(&seqGen{}, time.Now())

	if len(s.Columns) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(s.Columns))
	}
	for i, c := range s.Columns {
		if c.Order != i {
			t.Fatalf("column order not dense: %s has order %d", c.ID, c.Order)
		}
	}
	for _, id := range []string{ColumnBacklog, ColumnDone} {
		c, ok := s.ColumnByID(id)
		if !ok || !c.System {
			t.Fatalf("%s must be a system column", id)
		}
	}

	if len(s.Tags) == 0 || len(s.Tasks) == 0 {
		t.Fatal("starter board needs tags and sample tasks")
	}
	for _, task := range s.Tasks {
		if _, ok := s.ColumnByID(task.ColumnID); !ok {
			t.Fatalf("task %q references unknown column %q", task.Title, task.ColumnID)
		}
		if task.ID == "" {
			t.Fatalf("task %q has no id", task.Title)
		}
	}

	for _, a := range s.Automations {
		if a.Enabled {
			t.Fatalf("sample automation %q must ship disabled", a.Name)
		}
	}
}

func TestSnapshotTaskOrdersDensePerColumn(t *testing.T) {
	s := Snapshot(&seqGen{}, time.Now())
	for _, c := range s.Columns {
		for i, task := range s.TasksInColumn(c.ID) {
			if task.Order != i {
				t.Fatalf("column %s: task %q has order %d, want %d", c.ID, task.Title, task.Order, i)
			}
		}
	}
}

func TestSnapshotUniqueIDs(t *testing.T) {
	s := Snapshot(&seqGen{}, time.Now())
	seen := map[string]bool{}
	add := func(id string) {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	for _, task := range s.Tasks {
		add(task.ID)
		for _, sub := range task.Subtasks {
			add(sub.ID)
		}
	}
	for _, a := range s.Automations {
		add(a.ID)
	}
}
