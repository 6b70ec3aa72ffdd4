package reducer

import (
	"sort"
	"time"

	"boardcore/domain"
)

// DefaultTaskTitle is used when a task draft arrives without a title.
const DefaultTaskTitle = "Untitled task"

// Reducer holds the injected capabilities the transition function needs:
// id generation and the clock. The transition itself is pure; both inputs
// are supplied up front so tests can run deterministically.
type Reducer struct {
	IDs   domain.IDGen
	Clock func() time.Time
}

// New returns a reducer with the default uuid generator and wall clock.
func New() *Reducer {
	return &Reducer{IDs: domain.UUIDGen{}, Clock: time.Now}
}

func (r *Reducer) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

// Reduce maps (state, action) to the next state. Undoable actions push the
// previous present onto the bounded past stack and clear future; skip-history
// actions mutate present in place; identity transitions (unknown actions,
// missing targets, rejected requests) return the input state unchanged and
// push nothing.
func (r *Reducer) Reduce(st State, a Action) State {
	switch act := a.(type) {
	case Undo:
		return st.undo()
	case Redo:
		return st.redo()
	case Init:
		return NewState(act.Snapshot)
	}

	next, changed := r.apply(st.Present, a)
	if !changed {
		return st
	}
	if SkipsHistory(a) {
		st.Present = next
		return st
	}
	return st.push(next)
}

// apply is the snapshot-level transition. It never mutates its input; every
// change path works on a deep clone. The boolean reports whether the snapshot
// actually changed.
func (r *Reducer) apply(s domain.Snapshot, a Action) (domain.Snapshot, bool) {
	switch act := a.(type) {
	case CreateTask:
		return r.createTask(s, act)
	case UpdateTask:
		return r.updateTask(s, act)
	case DeleteTask:
		return r.deleteTask(s, act)
	case MoveTask:
		return r.moveTask(s, act)
	case ArchiveTask:
		return r.setArchived(s, act.ID, true)
	case UnarchiveTask:
		return r.setArchived(s, act.ID, false)
	case DuplicateTask:
		return r.duplicateTask(s, act)
	case AddSubtask:
		return r.addSubtask(s, act)
	case UpdateSubtask:
		return r.updateSubtask(s, act)
	case ToggleSubtask:
		return r.toggleSubtask(s, act.TaskID, act.SubtaskID)
	case DeleteSubtask:
		return r.deleteSubtask(s, act.TaskID, act.SubtaskID)
	case AddChecklistItem:
		return r.addSubtask(s, AddSubtask{TaskID: act.TaskID, Title: act.Title})
	case ToggleChecklistItem:
		return r.toggleSubtask(s, act.TaskID, act.ItemID)
	case DeleteChecklistItem:
		return r.deleteSubtask(s, act.TaskID, act.ItemID)
	case CreateColumn:
		return r.createColumn(s, act)
	case UpdateColumn:
		return r.updateColumn(s, act)
	case DeleteColumn:
		return r.deleteColumn(s, act)
	case MoveColumn:
		return r.moveColumn(s, act)
	case CreateTag:
		return r.createTag(s, act)
	case UpdateTag:
		return r.updateTag(s, act)
	case DeleteTag:
		return r.deleteTag(s, act)
	case CreateNote:
		return r.createNote(s, act)
	case UpdateNote:
		return r.updateNote(s, act)
	case DeleteNote:
		return r.deleteNote(s, act)
	case SetFilter:
		next := s.Clone()
		next.Filter = act.Filter.Clone()
		return next, true
	case AddDependency:
		return r.addDependency(s, act)
	case RemoveDependency:
		return r.removeDependency(s, act)
	case CreateAutomation:
		return r.createAutomation(s, act)
	case UpdateAutomation:
		return r.updateAutomation(s, act)
	case DeleteAutomation:
		return r.deleteAutomation(s, act)
	case ToggleAutomation:
		return r.toggleAutomation(s, act)
	case AppendAutomationLog:
		return r.appendAutomationLog(s, act)
	case AddNotification:
		return r.addNotification(s, act)
	case DismissNotification:
		return r.dismissNotification(s, act)
	case ClearNotifications:
		if len(s.Notifications) == 0 {
			return s, false
		}
		next := s.Clone()
		next.Notifications = nil
		return next, true
	}
	return s, false
}

func (r *Reducer) createTask(s domain.Snapshot, act CreateTask) (domain.Snapshot, bool) {
	next := s.Clone()
	t := act.Draft.Clone()
	now := r.now()
	if t.ID == "" {
		t.ID = r.IDs.Next()
	}
	if t.Title == "" {
		t.Title = DefaultTaskTitle
	}
	if t.Status == "" {
		t.Status = domain.StatusNotStarted
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == "" {
			t.Subtasks[i].ID = r.IDs.Next()
		}
		if t.Subtasks[i].CreatedAt.IsZero() {
			t.Subtasks[i].CreatedAt = now
		}
	}
	t.Order = countInColumn(next, t.ColumnID)
	t = t.SyncStatus()
	next.Tasks = append(next.Tasks, t)
	return next, true
}

func (r *Reducer) updateTask(s domain.Snapshot, act UpdateTask) (domain.Snapshot, bool) {
	if _, ok := s.TaskByID(act.ID); !ok {
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, act.ID)
	prevColumn := t.ColumnID
	p := act.Patch
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ColumnID != nil {
		t.ColumnID = *p.ColumnID
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Tags != nil {
		t.Tags = append([]domain.Tag(nil), (*p.Tags)...)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearStartDate {
		t.StartDate = nil
	} else if p.StartDate != nil {
		d := *p.StartDate
		t.StartDate = &d
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]domain.Subtask(nil), (*p.Subtasks)...)
	}
	if p.EstimatedTime != nil {
		v := *p.EstimatedTime
		t.EstimatedTime = &v
	}
	if p.ActualTime != nil {
		v := *p.ActualTime
		t.ActualTime = &v
	}
	if p.RelatedMarket != nil {
		t.RelatedMarket = *p.RelatedMarket
	}
	if p.Attachments != nil {
		t.Attachments = append([]string(nil), (*p.Attachments)...)
	}
	*t = t.SyncStatus()
	if t.ColumnID != prevColumn {
		t.Order = countInColumn(next, t.ColumnID) - 1 // already counted in new column
		renumberColumn(&next, t.ColumnID)
		renumberColumn(&next, prevColumn)
	}
	return next, true
}

func (r *Reducer) deleteTask(s domain.Snapshot, act DeleteTask) (domain.Snapshot, bool) {
	t, ok := s.TaskByID(act.ID)
	if !ok {
		return s, false
	}
	next := s.Clone()
	out := next.Tasks[:0]
	for _, task := range next.Tasks {
		if task.ID != act.ID {
			out = append(out, task)
		}
	}
	next.Tasks = out
	renumberColumn(&next, t.ColumnID)
	return next, true
}

func (r *Reducer) moveTask(s domain.Snapshot, act MoveTask) (domain.Snapshot, bool) {
	cur, ok := s.TaskByID(act.ID)
	if !ok {
		return s, false
	}
	if cur.ColumnID == act.ColumnID && cur.Order == act.Index {
		// Null move: no history entry.
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, act.ID)
	source := t.ColumnID

	siblings := columnTasks(&next, act.ColumnID, act.ID)
	idx := act.Index
	if idx < 0 {
		idx = 0
	}
	if idx > len(siblings) {
		idx = len(siblings)
	}
	for i, sib := range siblings {
		if i < idx {
			sib.Order = i
		} else {
			sib.Order = i + 1
		}
	}
	t.ColumnID = act.ColumnID
	t.Order = idx
	if source != act.ColumnID {
		renumberColumn(&next, source)
	}
	return next, true
}

func (r *Reducer) setArchived(s domain.Snapshot, id string, archived bool) (domain.Snapshot, bool) {
	t, ok := s.TaskByID(id)
	if !ok || t.Archived == archived {
		return s, false
	}
	next := s.Clone()
	findTask(&next, id).Archived = archived
	return next, true
}

func (r *Reducer) duplicateTask(s domain.Snapshot, act DuplicateTask) (domain.Snapshot, bool) {
	src, ok := s.TaskByID(act.ID)
	if !ok {
		return s, false
	}
	next := s.Clone()
	now := r.now()
	dup := src.Clone()
	dup.ID = r.IDs.Next()
	dup.Title = src.Title + " (copy)"
	dup.CreatedAt = now
	dup.Archived = false
	for i := range dup.Subtasks {
		dup.Subtasks[i].ID = r.IDs.Next()
	}
	for i := range dup.Dependencies {
		dup.Dependencies[i].ID = r.IDs.Next()
	}
	dup.Order = countInColumn(next, dup.ColumnID)
	next.Tasks = append(next.Tasks, dup)
	return next, true
}

func (r *Reducer) addSubtask(s domain.Snapshot, act AddSubtask) (domain.Snapshot, bool) {
	if _, ok := s.TaskByID(act.TaskID); !ok {
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, act.TaskID)
	sub := domain.Subtask{
		ID:         r.IDs.Next(),
		Title:      act.Title,
		AssignedTo: act.AssignedTo,
		CreatedAt:  r.now(),
	}
	if act.DueDate != nil {
		d := *act.DueDate
		sub.DueDate = &d
	}
	t.Subtasks = append(t.Subtasks, sub)
	*t = t.SyncStatus()
	return next, true
}

func (r *Reducer) updateSubtask(s domain.Snapshot, act UpdateSubtask) (domain.Snapshot, bool) {
	if !hasSubtask(s, act.TaskID, act.SubtaskID) {
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, act.TaskID)
	for i := range t.Subtasks {
		if t.Subtasks[i].ID != act.SubtaskID {
			continue
		}
		p := act.Patch
		if p.Title != nil {
			t.Subtasks[i].Title = *p.Title
		}
		if p.Completed != nil {
			t.Subtasks[i].Completed = *p.Completed
		}
		if p.AssignedTo != nil {
			t.Subtasks[i].AssignedTo = *p.AssignedTo
		}
		if p.DueDate != nil {
			d := *p.DueDate
			t.Subtasks[i].DueDate = &d
		}
	}
	*t = t.SyncStatus()
	return next, true
}

func (r *Reducer) toggleSubtask(s domain.Snapshot, taskID, subtaskID string) (domain.Snapshot, bool) {
	if !hasSubtask(s, taskID, subtaskID) {
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, taskID)
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
		}
	}
	*t = t.SyncStatus()
	return next, true
}

func (r *Reducer) deleteSubtask(s domain.Snapshot, taskID, subtaskID string) (domain.Snapshot, bool) {
	if !hasSubtask(s, taskID, subtaskID) {
		return s, false
	}
	next := s.Clone()
	t := findTask(&next, taskID)
	out := t.Subtasks[:0]
	for _, sub := range t.Subtasks {
		if sub.ID != subtaskID {
			out = append(out, sub)
		}
	}
	t.Subtasks = out
	*t = t.SyncStatus()
	return next, true
}

func (r *Reducer) createColumn(s domain.Snapshot, act CreateColumn) (domain.Snapshot, bool) {
	next := s.Clone()
	col := act.Draft
	if col.ID == "" {
		col.ID = r.IDs.Next()
	}
	col.Order = len(next.Columns)
	col.System = false
	col.WIPLimit = nil
	next.Columns = append(next.Columns, col)
	return next, true
}

func (r *Reducer) updateColumn(s domain.Snapshot, act UpdateColumn) (domain.Snapshot, bool) {
	if _, ok := s.ColumnByID(act.ID); !ok {
		return s, false
	}
	next := s.Clone()
	for i := range next.Columns {
		if next.Columns[i].ID != act.ID {
			continue
		}
		p := act.Patch
		if p.Title != nil {
			next.Columns[i].Title = *p.Title
		}
		if p.Subtitle != nil {
			next.Columns[i].Subtitle = *p.Subtitle
		}
		if p.Color != nil {
			next.Columns[i].Color = *p.Color
		}
		if p.Icon != nil {
			next.Columns[i].Icon = *p.Icon
		}
		if p.ClearWIPLimit {
			next.Columns[i].WIPLimit = nil
		} else if p.WIPLimit != nil {
			v := *p.WIPLimit
			next.Columns[i].WIPLimit = &v
		}
		if p.Hidden != nil {
			next.Columns[i].Hidden = *p.Hidden
		}
	}
	return next, true
}

func (r *Reducer) deleteColumn(s domain.Snapshot, act DeleteColumn) (domain.Snapshot, bool) {
	col, ok := s.ColumnByID(act.ID)
	if !ok || col.System {
		return s, false
	}
	next := s.Clone()
	cols := next.Columns[:0]
	for _, c := range next.Columns {
		if c.ID != act.ID {
			cols = append(cols, c)
		}
	}
	next.Columns = cols

	if len(next.Columns) > 0 {
		// First remaining column by array order, not by order field.
		dest := next.Columns[0].ID
		base := countInColumn(next, dest)
		moved := 0
		var orphans []*domain.Task
		for i := range next.Tasks {
			if next.Tasks[i].ColumnID == act.ID {
				orphans = append(orphans, &next.Tasks[i])
			}
		}
		sort.SliceStable(orphans, func(i, j int) bool { return orphans[i].Order < orphans[j].Order })
		for _, t := range orphans {
			t.ColumnID = dest
			t.Order = base + moved
			moved++
		}
		renumberColumn(&next, dest)
	} else {
		tasks := next.Tasks[:0]
		for _, t := range next.Tasks {
			if t.ColumnID != act.ID {
				tasks = append(tasks, t)
			}
		}
		next.Tasks = tasks
	}
	renumberColumns(&next)
	return next, true
}

func (r *Reducer) moveColumn(s domain.Snapshot, act MoveColumn) (domain.Snapshot, bool) {
	if _, ok := s.ColumnByID(act.ID); !ok {
		return s, false
	}
	next := s.Clone()
	var moved *domain.Column
	var others []*domain.Column
	for i := range next.Columns {
		c := &next.Columns[i]
		if c.ID == act.ID {
			moved = c
		} else {
			others = append(others, c)
		}
	}
	sort.SliceStable(others, func(i, j int) bool { return others[i].Order < others[j].Order })
	idx := act.Index
	if idx < 0 {
		idx = 0
	}
	if idx > len(others) {
		idx = len(others)
	}
	for i, c := range others {
		if i < idx {
			c.Order = i
		} else {
			c.Order = i + 1
		}
	}
	moved.Order = idx
	return next, true
}

func (r *Reducer) createTag(s domain.Snapshot, act CreateTag) (domain.Snapshot, bool) {
	next := s.Clone()
	next.Tags = append(next.Tags, domain.Tag{ID: r.IDs.Next(), Name: act.Name, Color: act.Color})
	return next, true
}

func (r *Reducer) updateTag(s domain.Snapshot, act UpdateTag) (domain.Snapshot, bool) {
	found := false
	for _, tag := range s.Tags {
		if tag.ID == act.ID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	merge := func(tag *domain.Tag) {
		if act.Patch.Name != nil {
			tag.Name = *act.Patch.Name
		}
		if act.Patch.Color != nil {
			tag.Color = *act.Patch.Color
		}
	}
	for i := range next.Tags {
		if next.Tags[i].ID == act.ID {
			merge(&next.Tags[i])
		}
	}
	// Fan the same fields out to every task's embedded copy.
	for i := range next.Tasks {
		for j := range next.Tasks[i].Tags {
			if next.Tasks[i].Tags[j].ID == act.ID {
				merge(&next.Tasks[i].Tags[j])
			}
		}
	}
	return next, true
}

func (r *Reducer) deleteTag(s domain.Snapshot, act DeleteTag) (domain.Snapshot, bool) {
	found := false
	for _, tag := range s.Tags {
		if tag.ID == act.ID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	tags := next.Tags[:0]
	for _, tag := range next.Tags {
		if tag.ID != act.ID {
			tags = append(tags, tag)
		}
	}
	next.Tags = tags
	for i := range next.Tasks {
		kept := next.Tasks[i].Tags[:0]
		for _, tag := range next.Tasks[i].Tags {
			if tag.ID != act.ID {
				kept = append(kept, tag)
			}
		}
		next.Tasks[i].Tags = kept
	}
	return next, true
}

func (r *Reducer) createNote(s domain.Snapshot, act CreateNote) (domain.Snapshot, bool) {
	next := s.Clone()
	now := r.now()
	next.Notes = append(next.Notes, domain.Note{
		ID:        r.IDs.Next(),
		Title:     act.Title,
		Content:   act.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return next, true
}

func (r *Reducer) updateNote(s domain.Snapshot, act UpdateNote) (domain.Snapshot, bool) {
	found := false
	for _, n := range s.Notes {
		if n.ID == act.ID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	for i := range next.Notes {
		if next.Notes[i].ID != act.ID {
			continue
		}
		if act.Patch.Title != nil {
			next.Notes[i].Title = *act.Patch.Title
		}
		if act.Patch.Content != nil {
			next.Notes[i].Content = *act.Patch.Content
		}
		// updatedAt refreshes regardless of which fields changed.
		next.Notes[i].UpdatedAt = r.now()
	}
	return next, true
}

func (r *Reducer) deleteNote(s domain.Snapshot, act DeleteNote) (domain.Snapshot, bool) {
	found := false
	for _, n := range s.Notes {
		if n.ID == act.ID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	notes := next.Notes[:0]
	for _, n := range next.Notes {
		if n.ID != act.ID {
			notes = append(notes, n)
		}
	}
	next.Notes = notes
	return next, true
}

func (r *Reducer) addDependency(s domain.Snapshot, act AddDependency) (domain.Snapshot, bool) {
	t, ok := s.TaskByID(act.TaskID)
	if !ok {
		return s, false
	}
	if act.TaskID == act.DependsOnTaskID {
		return s, false
	}
	for _, dep := range t.Dependencies {
		if dep.DependsOnTaskID == act.DependsOnTaskID {
			return s, false
		}
	}
	if domain.WouldCreateCycle(s.Tasks, act.TaskID, act.DependsOnTaskID) {
		return s, false
	}
	next := s.Clone()
	task := findTask(&next, act.TaskID)
	task.Dependencies = append(task.Dependencies, domain.TaskDependency{
		ID:              r.IDs.Next(),
		Type:            domain.DependencyFinishToStart,
		DependsOnTaskID: act.DependsOnTaskID,
		CreatedAt:       r.now(),
	})
	return next, true
}

func (r *Reducer) removeDependency(s domain.Snapshot, act RemoveDependency) (domain.Snapshot, bool) {
	t, ok := s.TaskByID(act.TaskID)
	if !ok {
		return s, false
	}
	found := false
	for _, dep := range t.Dependencies {
		if dep.ID == act.DependencyID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	task := findTask(&next, act.TaskID)
	deps := task.Dependencies[:0]
	for _, dep := range task.Dependencies {
		if dep.ID != act.DependencyID {
			deps = append(deps, dep)
		}
	}
	task.Dependencies = deps
	return next, true
}

func (r *Reducer) createAutomation(s domain.Snapshot, act CreateAutomation) (domain.Snapshot, bool) {
	next := s.Clone()
	auto := act.Draft.Clone()
	now := r.now()
	if auto.ID == "" {
		auto.ID = r.IDs.Next()
	}
	if auto.CreatedAt.IsZero() {
		auto.CreatedAt = now
	}
	auto.UpdatedAt = now
	next.Automations = append(next.Automations, auto)
	return next, true
}

func (r *Reducer) updateAutomation(s domain.Snapshot, act UpdateAutomation) (domain.Snapshot, bool) {
	if !hasAutomation(s, act.ID) {
		return s, false
	}
	next := s.Clone()
	for i := range next.Automations {
		if next.Automations[i].ID != act.ID {
			continue
		}
		p := act.Patch
		if p.Name != nil {
			next.Automations[i].Name = *p.Name
		}
		if p.Enabled != nil {
			next.Automations[i].Enabled = *p.Enabled
		}
		if p.Trigger != nil {
			next.Automations[i].Trigger = *p.Trigger
		}
		if p.Conditions != nil {
			next.Automations[i].Conditions = append([]domain.Condition(nil), (*p.Conditions)...)
		}
		if p.Actions != nil {
			next.Automations[i].Actions = append([]domain.AutomationAction(nil), (*p.Actions)...)
		}
		next.Automations[i].UpdatedAt = r.now()
	}
	return next, true
}

func (r *Reducer) deleteAutomation(s domain.Snapshot, act DeleteAutomation) (domain.Snapshot, bool) {
	if !hasAutomation(s, act.ID) {
		return s, false
	}
	next := s.Clone()
	autos := next.Automations[:0]
	for _, a := range next.Automations {
		if a.ID != act.ID {
			autos = append(autos, a)
		}
	}
	next.Automations = autos
	return next, true
}

func (r *Reducer) toggleAutomation(s domain.Snapshot, act ToggleAutomation) (domain.Snapshot, bool) {
	if !hasAutomation(s, act.ID) {
		return s, false
	}
	next := s.Clone()
	for i := range next.Automations {
		if next.Automations[i].ID == act.ID {
			next.Automations[i].Enabled = !next.Automations[i].Enabled
			next.Automations[i].UpdatedAt = r.now()
		}
	}
	return next, true
}

func (r *Reducer) appendAutomationLog(s domain.Snapshot, act AppendAutomationLog) (domain.Snapshot, bool) {
	if len(act.Entries) == 0 {
		return s, false
	}
	next := s.Clone()
	logEntries := make([]domain.Execution, 0, len(act.Entries)+len(next.AutomationLog))
	logEntries = append(logEntries, act.Entries...)
	logEntries = append(logEntries, next.AutomationLog...)
	if len(logEntries) > domain.AutomationLogCap {
		logEntries = logEntries[:domain.AutomationLogCap]
	}
	next.AutomationLog = logEntries
	return next, true
}

func (r *Reducer) addNotification(s domain.Snapshot, act AddNotification) (domain.Snapshot, bool) {
	next := s.Clone()
	n := domain.Notification{
		ID:        r.IDs.Next(),
		Message:   act.Message,
		TaskID:    act.TaskID,
		CreatedAt: r.now(),
	}
	list := make([]domain.Notification, 0, len(next.Notifications)+1)
	list = append(list, n)
	list = append(list, next.Notifications...)
	if len(list) > domain.NotificationCap {
		list = list[:domain.NotificationCap]
	}
	next.Notifications = list
	return next, true
}

func (r *Reducer) dismissNotification(s domain.Snapshot, act DismissNotification) (domain.Snapshot, bool) {
	found := false
	for _, n := range s.Notifications {
		if n.ID == act.ID {
			found = true
			break
		}
	}
	if !found {
		return s, false
	}
	next := s.Clone()
	list := next.Notifications[:0]
	for _, n := range next.Notifications {
		if n.ID != act.ID {
			list = append(list, n)
		}
	}
	next.Notifications = list
	return next, true
}

func findTask(s *domain.Snapshot, id string) *domain.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

func hasSubtask(s domain.Snapshot, taskID, subtaskID string) bool {
	t, ok := s.TaskByID(taskID)
	if !ok {
		return false
	}
	for _, sub := range t.Subtasks {
		if sub.ID == subtaskID {
			return true
		}
	}
	return false
}

func hasAutomation(s domain.Snapshot, id string) bool {
	for _, a := range s.Automations {
		if a.ID == id {
			return true
		}
	}
	return false
}

func countInColumn(s domain.Snapshot, columnID string) int {
	n := 0
	for _, t := range s.Tasks {
		if t.ColumnID == columnID {
			n++
		}
	}
	return n
}

// columnTasks returns pointers to the tasks of a column, excluding one id,
// sorted by their current order.
func columnTasks(s *domain.Snapshot, columnID, excludeID string) []*domain.Task {
	var out []*domain.Task
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.ColumnID == columnID && t.ID != excludeID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// renumberColumn reassigns dense zero-based order indexes within a column.
func renumberColumn(s *domain.Snapshot, columnID string) {
	for i, t := range columnTasks(s, columnID, "") {
		t.Order = i
	}
}

// renumberColumns reassigns dense zero-based order across all columns.
func renumberColumns(s *domain.Snapshot) {
	cols := make([]*domain.Column, 0, len(s.Columns))
	for i := range s.Columns {
		cols = append(cols, &s.Columns[i])
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Order < cols[j].Order })
	for i, c := range cols {
		c.Order = i
	}
}
