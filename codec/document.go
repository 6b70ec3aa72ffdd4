// Package codec serializes board snapshots into storable documents and back,
// and carries the schema-migration ladder for documents written by earlier
// generations of the app.
package codec

import (
	"time"

	"boardcore/domain"
)

// CurrentVersion is the schema generation written by this build. Loads of
// older documents walk the migration ladder up to this version.
const CurrentVersion = 6

// Document is the persisted envelope. Data holds the flattened snapshot with
// every date rendered as an RFC3339 string so documents stay sortable and
// medium-agnostic.
type Document struct {
	Version int           `json:"version"`
	SavedAt string        `json:"savedAt"`
	Data    boardDocument `json:"data"`
}

type boardDocument struct {
	Tasks       []taskDocument       `json:"tasks"`
	Columns     []columnDocument     `json:"columns"`
	Tags        []domain.Tag         `json:"tags"`
	Notes       []noteDocument       `json:"notes,omitempty"`
	Filter      filterDocument       `json:"filter"`
	Automations []automationDocument `json:"automations,omitempty"`
	Log         []executionDocument  `json:"automationLogs,omitempty"`
}

type taskDocument struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	ColumnID      string               `json:"columnId"`
	Priority      string               `json:"priority"`
	Status        string               `json:"status"`
	Tags          []domain.Tag         `json:"tags,omitempty"`
	DueDate       string               `json:"dueDate,omitempty"`
	StartDate     string               `json:"startDate,omitempty"`
	CreatedAt     string               `json:"createdAt"`
	Assignee      string               `json:"assignee,omitempty"`
	Subtasks      []subtaskDocument    `json:"subtasks,omitempty"`
	EstimatedTime *float64             `json:"estimatedTime,omitempty"`
	ActualTime    *float64             `json:"actualTime,omitempty"`
	RelatedMarket string               `json:"relatedMarket,omitempty"`
	Attachments   []string             `json:"attachments,omitempty"`
	Deps          []dependencyDocument `json:"taskDependencies,omitempty"`
	Order         int                  `json:"order"`
	Archived      bool                 `json:"isArchived"`

	// Legacy shapes, consumed by the migration ladder and cleared afterwards.
	LegacyDependencies []string            `json:"dependencies,omitempty"`
	LegacyChecklist    []checklistDocument `json:"checklist,omitempty"`
}

type subtaskDocument struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Completed  bool   `json:"completed"`
	AssignedTo string `json:"assignedTo,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// checklistDocument is the pre-subtask item shape from early generations.
type checklistDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type dependencyDocument struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	DependsOnTaskID string `json:"dependsOnTaskId"`
	CreatedAt       string `json:"createdAt"`
}

type columnDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	WIPLimit *int   `json:"wipLimit,omitempty"`
	Order    int    `json:"order"`
	Hidden   bool   `json:"isHidden"`
	System   bool   `json:"isSystemColumn"`

	// Deprecated: completion is status-driven. Read for backfill only.
	Done bool `json:"isDoneColumn,omitempty"`
}

type noteDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type filterDocument struct {
	Priorities   []string `json:"priorities,omitempty"`
	TagIDs       []string `json:"tagIds,omitempty"`
	Assignee     string   `json:"assignee,omitempty"`
	DueFrom      string   `json:"dueFrom,omitempty"`
	DueTo        string   `json:"dueTo,omitempty"`
	Search       string   `json:"search,omitempty"`
	Market       string   `json:"market,omitempty"`
	ShowArchived bool     `json:"showArchived"`
}

type automationDocument struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Enabled    bool                      `json:"enabled"`
	Trigger    string                    `json:"trigger"`
	Conditions []domain.Condition        `json:"conditions,omitempty"`
	Actions    []domain.AutomationAction `json:"actions,omitempty"`
	CreatedAt  string                    `json:"createdAt"`
	UpdatedAt  string                    `json:"updatedAt"`
}

type executionDocument struct {
	ID             string `json:"id"`
	AutomationID   string `json:"automationId"`
	AutomationName string `json:"automationName"`
	TaskID         string `json:"taskId,omitempty"`
	Outcome        string `json:"outcome"`
	Message        string `json:"message,omitempty"`
	Time           string `json:"time"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
