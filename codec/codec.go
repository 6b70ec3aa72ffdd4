package codec

import (
	"time"

	"github.com/bytedance/sonic"

	"boardcore/domain"
)

// Encode flattens a snapshot into a current-version document and marshals it.
// Notifications are ephemeral and never persisted.
func Encode(s domain.Snapshot, savedAt time.Time) ([]byte, error) {
	doc := Document{
		Version: CurrentVersion,
		SavedAt: formatTime(savedAt),
		Data:    toBoardDocument(s),
	}
	return sonic.Marshal(doc)
}

// Decode unmarshals a current-version document payload into a snapshot. It
// does not run migrations; see Load for the full legacy path.
func Decode(data []byte) (domain.Snapshot, error) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return domain.Snapshot{}, err
	}
	return fromBoardDocument(doc.Data), nil
}

func toBoardDocument(s domain.Snapshot) boardDocument {
	doc := boardDocument{
		Tags:   append([]domain.Tag(nil), s.Tags...),
		Filter: toFilterDocument(s.Filter),
	}
	for _, t := range s.Tasks {
		doc.Tasks = append(doc.Tasks, toTaskDocument(t))
	}
	for _, c := range s.Columns {
		doc.Columns = append(doc.Columns, columnDocument{
			ID:       c.ID,
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Color:    c.Color,
			Icon:     c.Icon,
			WIPLimit: c.WIPLimit,
			Order:    c.Order,
			Hidden:   c.Hidden,
			System:   c.System,
		})
	}
	for _, n := range s.Notes {
		doc.Notes = append(doc.Notes, noteDocument{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: formatTime(n.CreatedAt),
			UpdatedAt: formatTime(n.UpdatedAt),
		})
	}
	for _, a := range s.Automations {
		doc.Automations = append(doc.Automations, automationDocument{
			ID:         a.ID,
			Name:       a.Name,
			Enabled:    a.Enabled,
			Trigger:    string(a.Trigger),
			Conditions: append([]domain.Condition(nil), a.Conditions...),
			Actions:    append([]domain.AutomationAction(nil), a.Actions...),
			CreatedAt:  formatTime(a.CreatedAt),
			UpdatedAt:  formatTime(a.UpdatedAt),
		})
	}
	for _, e := range s.AutomationLog {
		doc.Log = append(doc.Log, executionDocument{
			ID:             e.ID,
			AutomationID:   e.AutomationID,
			AutomationName: e.AutomationName,
			TaskID:         e.TaskID,
			Outcome:        string(e.Outcome),
			Message:        e.Message,
			Time:           formatTime(e.Time),
		})
	}
	return doc
}

func toTaskDocument(t domain.Task) taskDocument {
	doc := taskDocument{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		ColumnID:      t.ColumnID,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		Tags:          append([]domain.Tag(nil), t.Tags...),
		DueDate:       formatTimePtr(t.DueDate),
		StartDate:     formatTimePtr(t.StartDate),
		CreatedAt:     formatTime(t.CreatedAt),
		Assignee:      t.Assignee,
		EstimatedTime: t.EstimatedTime,
		ActualTime:    t.ActualTime,
		RelatedMarket: t.RelatedMarket,
		Attachments:   append([]string(nil), t.Attachments...),
		Order:         t.Order,
		Archived:      t.Archived,
	}
	for _, sub := range t.Subtasks {
		doc.Subtasks = append(doc.Subtasks, subtaskDocument{
			ID:         sub.ID,
			Title:      sub.Title,
			Completed:  sub.Completed,
			AssignedTo: sub.AssignedTo,
			DueDate:    formatTimePtr(sub.DueDate),
			CreatedAt:  formatTime(sub.CreatedAt),
		})
	}
	for _, dep := range t.Dependencies {
		doc.Deps = append(doc.Deps, dependencyDocument{
			ID:              dep.ID,
			Type:            string(dep.Type),
			DependsOnTaskID: dep.DependsOnTaskID,
			CreatedAt:       formatTime(dep.CreatedAt),
		})
	}
	return doc
}

func toFilterDocument(f domain.Filter) filterDocument {
	doc := filterDocument{
		TagIDs:       append([]string(nil), f.TagIDs...),
		Assignee:     f.Assignee,
		DueFrom:      formatTimePtr(f.DueFrom),
		DueTo:        formatTimePtr(f.DueTo),
		Search:       f.Search,
		Market:       f.Market,
		ShowArchived: f.ShowArchived,
	}
	for _, p := range f.Priorities {
		doc.Priorities = append(doc.Priorities, string(p))
	}
	return doc
}

func fromBoardDocument(doc boardDocument) domain.Snapshot {
	s := domain.Snapshot{
		Tags:   append([]domain.Tag(nil), doc.Tags...),
		Filter: fromFilterDocument(doc.Filter),
	}
	for _, t := range doc.Tasks {
		s.Tasks = append(s.Tasks, fromTaskDocument(t))
	}
	for _, c := range doc.Columns {
		s.Columns = append(s.Columns, domain.Column{
			ID:       c.ID,
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Color:    c.Color,
			Icon:     c.Icon,
			WIPLimit: c.WIPLimit,
			Order:    c.Order,
			Hidden:   c.Hidden,
			System:   c.System,
		})
	}
	for _, n := range doc.Notes {
		s.Notes = append(s.Notes, domain.Note{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: parseTime(n.CreatedAt),
			UpdatedAt: parseTime(n.UpdatedAt),
		})
	}
	for _, a := range doc.Automations {
		s.Automations = append(s.Automations, domain.Automation{
			ID:         a.ID,
			Name:       a.Name,
			Enabled:    a.Enabled,
			Trigger:    domain.TriggerKind(a.Trigger),
			Conditions: append([]domain.Condition(nil), a.Conditions...),
			Actions:    append([]domain.AutomationAction(nil), a.Actions...),
			CreatedAt:  parseTime(a.CreatedAt),
			UpdatedAt:  parseTime(a.UpdatedAt),
		})
	}
	for _, e := range doc.Log {
		s.AutomationLog = append(s.AutomationLog, domain.Execution{
			ID:             e.ID,
			AutomationID:   e.AutomationID,
			AutomationName: e.AutomationName,
			TaskID:         e.TaskID,
			Outcome:        domain.ExecutionOutcome(e.Outcome),
			Message:        e.Message,
			Time:           parseTime(e.Time),
		})
	}
	return s
}

func fromTaskDocument(doc taskDocument) domain.Task {
	t := domain.Task{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		ColumnID:      doc.ColumnID,
		Priority:      domain.Priority(doc.Priority),
		Status:        domain.Status(doc.Status),
		Tags:          append([]domain.Tag(nil), doc.Tags...),
		DueDate:       parseTimePtr(doc.DueDate),
		StartDate:     parseTimePtr(doc.StartDate),
		CreatedAt:     parseTime(doc.CreatedAt),
		Assignee:      doc.Assignee,
		EstimatedTime: doc.EstimatedTime,
		ActualTime:    doc.ActualTime,
		RelatedMarket: doc.RelatedMarket,
		Attachments:   append([]string(nil), doc.Attachments...),
		Order:         doc.Order,
		Archived:      doc.Archived,
	}
	for _, sub := range doc.Subtasks {
		t.Subtasks = append(t.Subtasks, domain.Subtask{
			ID:         sub.ID,
			Title:      sub.Title,
			Completed:  sub.Completed,
			AssignedTo: sub.AssignedTo,
			DueDate:    parseTimePtr(sub.DueDate),
			CreatedAt:  parseTime(sub.CreatedAt),
		})
	}
	for _, dep := range doc.Deps {
		t.Dependencies = append(t.Dependencies, domain.TaskDependency{
			ID:              dep.ID,
			Type:            domain.DependencyType(dep.Type),
			DependsOnTaskID: dep.DependsOnTaskID,
			CreatedAt:       parseTime(dep.CreatedAt),
		})
	}
	return t
}

func fromFilterDocument(doc filterDocument) domain.Filter {
	f := domain.Filter{
		TagIDs:       append([]string(nil), doc.TagIDs...),
		Assignee:     doc.Assignee,
		DueFrom:      parseTimePtr(doc.DueFrom),
		DueTo:        parseTimePtr(doc.DueTo),
		Search:       doc.Search,
		Market:       doc.Market,
		ShowArchived: doc.ShowArchived,
	}
	for _, p := range doc.Priorities {
		f.Priorities = append(f.Priorities, domain.Priority(p))
	}
	return f
}
