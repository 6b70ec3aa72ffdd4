package domain

import (
	"strings"
	"time"
)

// Filter is the current view filter. It is part of the snapshot (and
// persisted) but excluded from undo history.
type Filter struct {
	Priorities   []Priority `json:"priorities,omitempty"`
	TagIDs       []string   `json:"tagIds,omitempty"`
	Assignee     string     `json:"assignee,omitempty"`
	DueFrom      *time.Time `json:"dueFrom,omitempty"`
	DueTo        *time.Time `json:"dueTo,omitempty"`
	Search       string     `json:"search,omitempty"`
	Market       string     `json:"market,omitempty"`
	ShowArchived bool       `json:"showArchived"`
}

// Matches reports whether the task passes every populated filter field.
func (f Filter) Matches(t Task) bool {
	if t.Archived && !f.ShowArchived {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, t.Priority) {
		return false
	}
	if len(f.TagIDs) > 0 {
		found := false
		for _, id := range f.TagIDs {
			for _, tag := range t.Tags {
				if tag.ID == id {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if f.Assignee != "" && t.Assignee != f.Assignee {
		return false
	}
	if f.Market != "" && t.RelatedMarket != f.Market {
		return false
	}
	if f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)) {
		return false
	}
	if f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the filter.
func (f Filter) Clone() Filter {
	c := f
	c.Priorities = append([]Priority(nil), f.Priorities...)
	c.TagIDs = append([]string(nil), f.TagIDs...)
	c.DueFrom = cloneTime(f.DueFrom)
	c.DueTo = cloneTime(f.DueTo)
	return c
}

func containsPriority(ps []Priority, p Priority) bool {
	for _, v := range ps {
		if v == p {
			return true
		}
	}
	return false
}
