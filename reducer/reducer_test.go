package reducer

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"

	"boardcore/domain"
)

type seqGen struct{ n int }

func (g *seqGen) Next() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func testReducer() *Reducer {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return &Reducer{
		IDs: &seqGen{},
		Clock: func() time.Time {
			n++
			return t0.Add(time.Duration(n) * time.Second)
		},
	}
}

func board() domain.Snapshot {
	return domain.Snapshot{
		Columns: []domain.Column{
			{ID: "backlog", Title: "Backlog", Order: 0},
			{ID: "doing", Title: "Doing", Order: 1},
			{ID: "review", Title: "Review", Order: 2},
		},
	}
}

func ordersIn(s domain.Snapshot, columnID string) []int {
	var out []int
	for _, t := range s.Tasks {
		if t.ColumnID == columnID {
			out = append(out, t.Order)
		}
	}
	sort.Ints(out)
	return out
}

func assertDense(t *testing.T, s domain.Snapshot, columnID string) {
	t.Helper()
	orders := ordersIn(s, columnID)
	for i, o := range orders {
		if o != i {
			t.Fatalf("column %s orders not dense: %v", columnID, orders)
		}
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{ColumnID: "backlog"}})

	if len(st.Present.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(st.Present.Tasks))
	}
	task := st.Present.Tasks[0]
	if task.Title != DefaultTaskTitle {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	if task.Status != domain.StatusNotStarted || task.Priority != domain.PriorityMedium {
		t.Fatalf("unexpected defaults: %s/%s", task.Status, task.Priority)
	}
	if task.Order != 0 || task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("unexpected task: %#v", task)
	}

	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "second", ColumnID: "backlog"}})
	if st.Present.Tasks[1].Order != 1 {
		t.Fatalf("second task should append at order 1, got %d", st.Present.Tasks[1].Order)
	}
}

func TestOrderDensityAfterCreateMoveDelete(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < 4; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("b%d", i), ColumnID: "backlog"}})
	}
	for i := 0; i < 2; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("d%d", i), ColumnID: "doing"}})
	}

	moved := st.Present.Tasks[1].ID
	st = r.Reduce(st, MoveTask{ID: moved, ColumnID: "doing", Index: 1})
	assertDense(t, st.Present, "backlog")
	assertDense(t, st.Present, "doing")

	got, _ := st.Present.TaskByID(moved)
	if got.ColumnID != "doing" || got.Order != 1 {
		t.Fatalf("moved task misplaced: %#v", got)
	}

	st = r.Reduce(st, DeleteTask{ID: st.Present.Tasks[0].ID})
	assertDense(t, st.Present, "backlog")
	assertDense(t, st.Present, "doing")
}

func TestMoveWithinColumnReorders(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < 3; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("t%d", i), ColumnID: "backlog"}})
	}
	last := st.Present.Tasks[2].ID
	st = r.Reduce(st, MoveTask{ID: last, ColumnID: "backlog", Index: 0})

	got, _ := st.Present.TaskByID(last)
	if got.Order != 0 {
		t.Fatalf("expected order 0, got %d", got.Order)
	}
	assertDense(t, st.Present, "backlog")
}

func TestNullMovePushesNoHistory(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	depth := len(st.Past)

	st2 := r.Reduce(st, MoveTask{ID: st.Present.Tasks[0].ID, ColumnID: "backlog", Index: 0})
	if len(st2.Past) != depth {
		t.Fatal("null move pushed a history entry")
	}
	if !reflect.DeepEqual(st2.Present, st.Present) {
		t.Fatal("null move changed the snapshot")
	}
}

func TestUpdateTaskUnknownIDIsIdentity(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	title := "x"
	st2 := r.Reduce(st, UpdateTask{ID: "ghost", Patch: TaskPatch{Title: &title}})
	if len(st2.Past) != 0 || !reflect.DeepEqual(st2.Present, st.Present) {
		t.Fatal("update of missing task must be an identity transition")
	}
}

func TestUpdateTaskColumnChangeRenumbersBothColumns(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < 3; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("t%d", i), ColumnID: "backlog"}})
	}
	col := "doing"
	st = r.Reduce(st, UpdateTask{ID: st.Present.Tasks[0].ID, Patch: TaskPatch{ColumnID: &col}})
	assertDense(t, st.Present, "backlog")
	assertDense(t, st.Present, "doing")
}

func TestSubtaskToggleSyncsStatus(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "t", ColumnID: "backlog"}})
	taskID := st.Present.Tasks[0].ID
	st = r.Reduce(st, AddSubtask{TaskID: taskID, Title: "one"})
	st = r.Reduce(st, AddSubtask{TaskID: taskID, Title: "two"})

	task, _ := st.Present.TaskByID(taskID)
	st = r.Reduce(st, ToggleSubtask{TaskID: taskID, SubtaskID: task.Subtasks[0].ID})
	task, _ = st.Present.TaskByID(taskID)
	if task.Status == domain.StatusCompleted {
		t.Fatal("half-done task must not auto-complete")
	}
	if task.Progress() != 0.5 {
		t.Fatalf("expected 0.5 progress, got %v", task.Progress())
	}

	st = r.Reduce(st, ToggleSubtask{TaskID: taskID, SubtaskID: task.Subtasks[1].ID})
	task, _ = st.Present.TaskByID(taskID)
	if task.Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %s", task.Status)
	}

	// Un-toggling a subtask of a completed task demotes it.
	st = r.Reduce(st, ToggleSubtask{TaskID: taskID, SubtaskID: task.Subtasks[0].ID})
	task, _ = st.Present.TaskByID(taskID)
	if task.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", task.Status)
	}
}

func TestChecklistSynonymsRedirectToSubtasks(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "t", ColumnID: "backlog"}})
	taskID := st.Present.Tasks[0].ID

	st = r.Reduce(st, AddChecklistItem{TaskID: taskID, Title: "legacy"})
	task, _ := st.Present.TaskByID(taskID)
	if len(task.Subtasks) != 1 || task.Subtasks[0].Title != "legacy" {
		t.Fatalf("checklist add did not produce a subtask: %#v", task.Subtasks)
	}

	st = r.Reduce(st, ToggleChecklistItem{TaskID: taskID, ItemID: task.Subtasks[0].ID})
	task, _ = st.Present.TaskByID(taskID)
	if !task.Subtasks[0].Completed {
		t.Fatal("checklist toggle failed")
	}

	st = r.Reduce(st, DeleteChecklistItem{TaskID: taskID, ItemID: task.Subtasks[0].ID})
	task, _ = st.Present.TaskByID(taskID)
	if len(task.Subtasks) != 0 {
		t.Fatal("checklist delete failed")
	}
}

func TestDuplicateTask(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "orig", ColumnID: "backlog", Archived: false}})
	taskID := st.Present.Tasks[0].ID
	st = r.Reduce(st, AddSubtask{TaskID: taskID, Title: "sub"})
	st = r.Reduce(st, ArchiveTask{ID: taskID})

	st = r.Reduce(st, DuplicateTask{ID: taskID})
	if len(st.Present.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(st.Present.Tasks))
	}
	dup := st.Present.Tasks[1]
	orig := st.Present.Tasks[0]
	if dup.Title != "orig (copy)" {
		t.Fatalf("unexpected title: %q", dup.Title)
	}
	if dup.ID == orig.ID || dup.Subtasks[0].ID == orig.Subtasks[0].ID {
		t.Fatal("duplicate shares ids with original")
	}
	if dup.Archived {
		t.Fatal("duplicate must not be archived")
	}
	if dup.Order != 1 {
		t.Fatalf("duplicate should append to column end, got order %d", dup.Order)
	}
}

func TestArchiveDoesNotTouchColumnOrStatus(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "t", ColumnID: "doing", Status: domain.StatusInProgress}})
	id := st.Present.Tasks[0].ID

	st = r.Reduce(st, ArchiveTask{ID: id})
	task, _ := st.Present.TaskByID(id)
	if !task.Archived || task.ColumnID != "doing" || task.Status != domain.StatusInProgress {
		t.Fatalf("archive side effects: %#v", task)
	}

	depth := len(st.Past)
	st2 := r.Reduce(st, ArchiveTask{ID: id})
	if len(st2.Past) != depth {
		t.Fatal("double archive pushed history")
	}

	st = r.Reduce(st, UnarchiveTask{ID: id})
	task, _ = st.Present.TaskByID(id)
	if task.Archived {
		t.Fatal("unarchive failed")
	}
}

func TestDeleteColumnReassignsTasksToFirstRemaining(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < 3; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("t%d", i), ColumnID: "review"}})
	}
	st = r.Reduce(st, DeleteColumn{ID: "review"})

	if _, ok := st.Present.ColumnByID("review"); ok {
		t.Fatal("column not deleted")
	}
	for _, task := range st.Present.Tasks {
		if task.ColumnID != "backlog" {
			t.Fatalf("task %s not reassigned to backlog: %s", task.ID, task.ColumnID)
		}
	}
	assertDense(t, st.Present, "backlog")

	colOrders := []int{}
	for _, c := range st.Present.SortedColumns() {
		colOrders = append(colOrders, c.Order)
	}
	if !reflect.DeepEqual(colOrders, []int{0, 1}) {
		t.Fatalf("column orders not dense: %v", colOrders)
	}
}

func TestDeleteLastColumnDropsTasks(t *testing.T) {
	r := testReducer()
	st := NewState(domain.Snapshot{Columns: []domain.Column{{ID: "only", Title: "Only"}}})
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "t", ColumnID: "only"}})
	st = r.Reduce(st, DeleteColumn{ID: "only"})

	if len(st.Present.Columns) != 0 || len(st.Present.Tasks) != 0 {
		t.Fatalf("expected empty board, got %d columns %d tasks", len(st.Present.Columns), len(st.Present.Tasks))
	}
}

func TestDeleteSystemColumnRejected(t *testing.T) {
	r := testReducer()
	st := NewState(domain.Snapshot{Columns: []domain.Column{{ID: "sys", System: true}}})
	st2 := r.Reduce(st, DeleteColumn{ID: "sys"})
	if len(st2.Past) != 0 || len(st2.Present.Columns) != 1 {
		t.Fatal("system column deletion must be rejected")
	}
}

func TestMoveColumnRenumbersDensely(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, MoveColumn{ID: "review", Index: 0})

	cols := st.Present.SortedColumns()
	ids := []string{cols[0].ID, cols[1].ID, cols[2].ID}
	if !reflect.DeepEqual(ids, []string{"review", "backlog", "doing"}) {
		t.Fatalf("unexpected column order: %v", ids)
	}
	for i, c := range cols {
		if c.Order != i {
			t.Fatalf("column orders not dense: %#v", cols)
		}
	}
}

func TestTagUpdateFansOutToTasks(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTag{Name: "urgent", Color: "#f00"})
	tag := st.Present.Tags[0]
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog", Tags: []domain.Tag{tag}}})
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "b", ColumnID: "backlog", Tags: []domain.Tag{tag}}})

	name := "critical"
	color := "#900"
	st = r.Reduce(st, UpdateTag{ID: tag.ID, Patch: TagPatch{Name: &name, Color: &color}})

	if st.Present.Tags[0].Name != "critical" || st.Present.Tags[0].Color != "#900" {
		t.Fatalf("tag record not updated: %#v", st.Present.Tags[0])
	}
	for _, task := range st.Present.Tasks {
		if task.Tags[0].Name != "critical" || task.Tags[0].Color != "#900" {
			t.Fatalf("embedded tag not updated on task %s: %#v", task.ID, task.Tags[0])
		}
	}

	st = r.Reduce(st, DeleteTag{ID: tag.ID})
	if len(st.Present.Tags) != 0 {
		t.Fatal("tag not deleted")
	}
	for _, task := range st.Present.Tasks {
		if len(task.Tags) != 0 {
			t.Fatalf("tag not stripped from task %s", task.ID)
		}
	}
}

func TestAddDependencyRejectsSelfCycleAndDuplicate(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "b", ColumnID: "backlog"}})
	a := st.Present.Tasks[0].ID
	b := st.Present.Tasks[1].ID

	depth := len(st.Past)
	st2 := r.Reduce(st, AddDependency{TaskID: a, DependsOnTaskID: a})
	if len(st2.Past) != depth {
		t.Fatal("self-dependency pushed history")
	}
	if task, _ := st2.Present.TaskByID(a); len(task.Dependencies) != 0 {
		t.Fatal("self-dependency was added")
	}

	st = r.Reduce(st, AddDependency{TaskID: a, DependsOnTaskID: b})
	task, _ := st.Present.TaskByID(a)
	if len(task.Dependencies) != 1 || task.Dependencies[0].Type != domain.DependencyFinishToStart {
		t.Fatalf("dependency not added: %#v", task.Dependencies)
	}

	// Duplicate of the exact same edge.
	depth = len(st.Past)
	st2 = r.Reduce(st, AddDependency{TaskID: a, DependsOnTaskID: b})
	if len(st2.Past) != depth {
		t.Fatal("duplicate dependency pushed history")
	}

	// b → a would close the cycle.
	st2 = r.Reduce(st, AddDependency{TaskID: b, DependsOnTaskID: a})
	if task, _ := st2.Present.TaskByID(b); len(task.Dependencies) != 0 {
		t.Fatal("cycle-forming dependency was added")
	}
}

func TestBlockingScenario(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "A", ColumnID: "backlog"}})
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "B", ColumnID: "backlog"}})
	a := st.Present.Tasks[0].ID
	b := st.Present.Tasks[1].ID
	st = r.Reduce(st, AddDependency{TaskID: a, DependsOnTaskID: b})

	taskA, _ := st.Present.TaskByID(a)
	block := domain.IsBlocked(taskA, st.Present.Tasks)
	if !block.Blocked || len(block.BlockingTasks) != 1 || block.BlockingTasks[0].ID != b {
		t.Fatalf("expected A blocked by B: %#v", block)
	}

	status := domain.StatusCompleted
	st = r.Reduce(st, UpdateTask{ID: b, Patch: TaskPatch{Status: &status}})
	taskA, _ = st.Present.TaskByID(a)
	if domain.IsBlocked(taskA, st.Present.Tasks).Blocked {
		t.Fatal("completed prerequisite must unblock")
	}
}

func TestDeleteTaskLeavesDanglingDependencyRecords(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "A", ColumnID: "backlog"}})
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "B", ColumnID: "backlog"}})
	a := st.Present.Tasks[0].ID
	b := st.Present.Tasks[1].ID
	st = r.Reduce(st, AddDependency{TaskID: a, DependsOnTaskID: b})
	st = r.Reduce(st, DeleteTask{ID: b})

	// Deletion does not cascade; the record survives but never blocks.
	task, _ := st.Present.TaskByID(a)
	if len(task.Dependencies) != 1 {
		t.Fatalf("expected surviving dependency record, got %d", len(task.Dependencies))
	}
	if domain.IsBlocked(task, st.Present.Tasks).Blocked {
		t.Fatal("dangling dependency must not block")
	}
}

func TestNoteUpdateRefreshesTimestamp(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateNote{Title: "n", Content: "c"})
	created := st.Present.Notes[0].UpdatedAt

	st = r.Reduce(st, UpdateNote{ID: st.Present.Notes[0].ID, Patch: NotePatch{}})
	if !st.Present.Notes[0].UpdatedAt.After(created) {
		t.Fatal("updatedAt not refreshed on empty patch")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	before := st.Present

	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	after := st.Present

	undone := r.Reduce(st, Undo{})
	if !reflect.DeepEqual(undone.Present, before) {
		t.Fatal("undo did not restore the prior snapshot")
	}
	redone := r.Reduce(undone, Redo{})
	if !reflect.DeepEqual(redone.Present, after) {
		t.Fatal("redo did not restore the undone snapshot")
	}
}

func TestUndoRedoNoopsOnEmptyStacks(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	if st2 := r.Reduce(st, Undo{}); !reflect.DeepEqual(st2, st) {
		t.Fatal("undo with empty past must be a no-op")
	}
	if st2 := r.Reduce(st, Redo{}); !reflect.DeepEqual(st2, st) {
		t.Fatal("redo with empty future must be a no-op")
	}
}

func TestNewBranchClearsFuture(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	st = r.Reduce(st, Undo{})
	if !st.CanRedo() {
		t.Fatal("expected redo availability after undo")
	}
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "b", ColumnID: "backlog"}})
	if st.CanRedo() {
		t.Fatal("new undoable action must clear the redo stack")
	}
}

func TestHistoryBound(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < HistoryLimit+20; i++ {
		st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: fmt.Sprintf("t%d", i), ColumnID: "backlog"}})
		if len(st.Past) > HistoryLimit {
			t.Fatalf("past exceeded bound at step %d: %d", i, len(st.Past))
		}
	}
	if len(st.Past) != HistoryLimit {
		t.Fatalf("expected full history window, got %d", len(st.Past))
	}
}

func TestFilterAndLogsBypassHistory(t *testing.T) {
	r := testReducer()
	st := NewState(board())

	st = r.Reduce(st, SetFilter{Filter: domain.Filter{Search: "x"}})
	if len(st.Past) != 0 {
		t.Fatal("filter change pushed history")
	}
	if st.Present.Filter.Search != "x" {
		t.Fatal("filter not applied")
	}

	st = r.Reduce(st, AddNotification{Message: "hello"})
	st = r.Reduce(st, AppendAutomationLog{Entries: []domain.Execution{{ID: "e1", Outcome: domain.OutcomeApplied}}})
	if len(st.Past) != 0 {
		t.Fatal("log/notification actions pushed history")
	}
	if len(st.Present.Notifications) != 1 || len(st.Present.AutomationLog) != 1 {
		t.Fatal("log/notification actions not applied")
	}
}

func TestUndoPreservesEphemeralState(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	st = r.Reduce(st, SetFilter{Filter: domain.Filter{Search: "keep-me"}})

	st = r.Reduce(st, Undo{})
	if st.Present.Filter.Search != "keep-me" {
		t.Fatal("undo rewound the filter")
	}
	if len(st.Present.Tasks) != 0 {
		t.Fatal("undo did not rewind tasks")
	}
}

func TestNotificationCap(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < domain.NotificationCap+10; i++ {
		st = r.Reduce(st, AddNotification{Message: fmt.Sprintf("n%d", i)})
	}
	if len(st.Present.Notifications) != domain.NotificationCap {
		t.Fatalf("expected cap %d, got %d", domain.NotificationCap, len(st.Present.Notifications))
	}
	// Most recent first.
	if st.Present.Notifications[0].Message != fmt.Sprintf("n%d", domain.NotificationCap+9) {
		t.Fatalf("unexpected head: %s", st.Present.Notifications[0].Message)
	}
}

func TestAutomationLogCap(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	for i := 0; i < domain.AutomationLogCap+25; i++ {
		st = r.Reduce(st, AppendAutomationLog{Entries: []domain.Execution{{ID: fmt.Sprintf("e%d", i)}}})
	}
	if len(st.Present.AutomationLog) != domain.AutomationLogCap {
		t.Fatalf("expected cap %d, got %d", domain.AutomationLogCap, len(st.Present.AutomationLog))
	}
	if st.Present.AutomationLog[0].ID != fmt.Sprintf("e%d", domain.AutomationLogCap+24) {
		t.Fatalf("newest entry should be first, got %s", st.Present.AutomationLog[0].ID)
	}
}

func TestAutomationCRUDAndToggle(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateAutomation{Draft: domain.Automation{Name: "rule", Trigger: domain.TriggerTaskMoved}})
	auto := st.Present.Automations[0]
	if auto.ID == "" || auto.Enabled {
		t.Fatalf("unexpected automation: %#v", auto)
	}

	st = r.Reduce(st, ToggleAutomation{ID: auto.ID})
	if !st.Present.Automations[0].Enabled {
		t.Fatal("toggle failed")
	}
	if !st.Present.Automations[0].UpdatedAt.After(auto.UpdatedAt) {
		t.Fatal("toggle did not refresh updatedAt")
	}

	name := "renamed"
	st = r.Reduce(st, UpdateAutomation{ID: auto.ID, Patch: AutomationPatch{Name: &name}})
	if st.Present.Automations[0].Name != "renamed" {
		t.Fatal("update failed")
	}

	st = r.Reduce(st, DeleteAutomation{ID: auto.ID})
	if len(st.Present.Automations) != 0 {
		t.Fatal("delete failed")
	}
}

type unknownAction struct{}

func (unknownAction) isAction() {}

func TestUnknownActionIsIdentity(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	st2 := r.Reduce(st, unknownAction{})
	if !reflect.DeepEqual(st, st2) {
		t.Fatal("unknown action must be an identity transition")
	}
}

func TestInitReplacesHistory(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	st = r.Reduce(st, Init{Snapshot: domain.Snapshot{}})
	if st.CanUndo() || st.CanRedo() {
		t.Fatal("init must clear both stacks")
	}
	if len(st.Present.Tasks) != 0 {
		t.Fatal("init did not replace the snapshot")
	}
}

func TestReduceDoesNotMutateInputSnapshot(t *testing.T) {
	r := testReducer()
	st := NewState(board())
	st = r.Reduce(st, CreateTask{Draft: domain.Task{Title: "a", ColumnID: "backlog"}})
	frozen := st.Present.Clone()

	_ = r.Reduce(st, UpdateTask{ID: st.Present.Tasks[0].ID, Patch: TaskPatch{Title: strPtr("changed")}})
	_ = r.Reduce(st, MoveTask{ID: st.Present.Tasks[0].ID, ColumnID: "doing", Index: 0})
	_ = r.Reduce(st, DeleteTask{ID: st.Present.Tasks[0].ID})

	if !reflect.DeepEqual(st.Present, frozen) {
		t.Fatal("reducer mutated its input snapshot")
	}
}

func strPtr(s string) *string { return &s }
