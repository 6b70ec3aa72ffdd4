// Package session binds the reducer, history, automations and persistence
// into the single surface the presentation layer talks to: dispatch on one
// side, read accessors on the other, with debounced autosave in between.
package session

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"boardcore/automation"
	"boardcore/codec"
	"boardcore/domain"
	"boardcore/reducer"
	"boardcore/seed"
	"boardcore/store"
)

// DefaultSaveDelay is the autosave debounce window: a burst of dispatches
// within the window collapses into one write.
const DefaultSaveDelay = 500 * time.Millisecond

// Config wires a session. Store and Namespace are required; everything else
// has working defaults.
type Config struct {
	Namespace string
	Store     store.KV
	IDs       domain.IDGen
	Clock     func() time.Time
	Logger    *log.Logger
	SaveDelay time.Duration
	Seed      func(gen domain.IDGen, now time.Time) domain.Snapshot
}

// Session is the board engine façade. All methods are safe for concurrent
// use; state transitions run under one mutex so reads always observe a
// complete snapshot.
type Session struct {
	cfg     Config
	reducer *reducer.Reducer
	engine  *automation.Engine

	mu        sync.Mutex
	state     reducer.State
	saveTimer *time.Timer
	dirty     bool
	closed    bool
}

// New loads the persisted board for the namespace, migrating old documents
// as needed, and falls back to the seeded starter board when nothing
// readable exists. The loaded snapshot becomes the sole history entry.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if cfg.Namespace == "" {
		return nil, errors.New("session: namespace is required")
	}
	if cfg.IDs == nil {
		cfg.IDs = domain.UUIDGen{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.SaveDelay <= 0 {
		cfg.SaveDelay = DefaultSaveDelay
	}
	if cfg.Seed == nil {
		cfg.Seed = seed.Snapshot
	}

	loader := &codec.Loader{KV: cfg.Store, IDs: cfg.IDs, Clock: cfg.Clock, Logger: cfg.Logger}
	snap, err := loader.Load(ctx, cfg.Namespace)
	if err != nil {
		if !errors.Is(err, codec.ErrAbsent) {
			return nil, err
		}
		snap = cfg.Seed(cfg.IDs, cfg.Clock())
		if cfg.Logger != nil {
			cfg.Logger.WithField("namespace", cfg.Namespace).Info("board.session.seeded")
		}
	}

	return &Session{
		cfg:     cfg,
		reducer: &reducer.Reducer{IDs: cfg.IDs, Clock: cfg.Clock},
		engine:  &automation.Engine{IDs: cfg.IDs, Clock: cfg.Clock, Logger: cfg.Logger},
		state:   reducer.NewState(snap),
	}, nil
}

// Dispatch runs one action through the reducer, evaluates automations on the
// resulting snapshot and schedules a debounced save when anything changed.
// Identity transitions (unknown targets, rejected requests) cost nothing.
func (s *Session) Dispatch(ctx context.Context, a reducer.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	metrics, _ := newDispatchMetrics(ctx, s.cfg.Logger, actionName(a))

	prev := s.state.Present
	start := time.Now()
	s.state = s.reducer.Reduce(s.state, a)
	metrics.ObserveReduce(time.Since(start))

	changed := !reflect.DeepEqual(prev, s.state.Present)
	metrics.SetChanged(changed)
	if changed {
		s.runAutomations(metrics, a, prev)
		s.scheduleSaveLocked()
		metrics.SetSaveScheduled(true)
	}
	metrics.Log(nil)
}

// runAutomations evaluates rules against the events the action produced and
// applies the follow-up actions. Follow-up actions do not re-trigger rule
// evaluation, which keeps rule chains from looping.
func (s *Session) runAutomations(metrics *dispatchMetrics, a reducer.Action, prev domain.Snapshot) {
	if len(s.state.Present.Automations) == 0 {
		return
	}
	events := automationEvents(a, prev, s.state.Present)
	if len(events) == 0 {
		return
	}
	start := time.Now()
	for _, ev := range events {
		actions, execs := s.engine.Evaluate(s.state.Present, ev)
		if len(execs) > 0 {
			s.state = s.reducer.Reduce(s.state, reducer.AppendAutomationLog{Entries: execs})
		}
		for _, follow := range actions {
			s.state = s.reducer.Reduce(s.state, follow)
		}
		metrics.AddRulesEvaluated(len(execs))
		metrics.AddActionsFired(len(actions))
	}
	metrics.ObserveAutomation(time.Since(start))
}

// Undo reverts to the previous snapshot; no-op when nothing to undo.
func (s *Session) Undo(ctx context.Context) { s.Dispatch(ctx, reducer.Undo{}) }

// Redo reapplies the most recently undone snapshot; no-op when nothing to
// redo.
func (s *Session) Redo(ctx context.Context) { s.Dispatch(ctx, reducer.Redo{}) }

// CanUndo reports whether an undo target exists.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CanUndo()
}

// CanRedo reports whether a redo target exists.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CanRedo()
}

// HandleKey resolves a keyboard shortcut and dispatches the matching history
// command. The resolved command is returned so callers can update their UI.
func (s *Session) HandleKey(ctx context.Context, mod, shift bool, key string) Command {
	cmd := ResolveKey(mod, shift, key)
	switch cmd {
	case CommandUndo:
		s.Undo(ctx)
	case CommandRedo:
		s.Redo(ctx)
	}
	return cmd
}

// Snapshot returns a deep copy of the present board state.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Present.Clone()
}

// Tasks returns the tasks passing the current filter.
func (s *Session) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, t := range s.state.Present.Tasks {
		if s.state.Present.Filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// TasksByColumn returns the filtered tasks of one column in board order.
func (s *Session) TasksByColumn(columnID string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, t := range s.state.Present.TasksInColumn(columnID) {
		if s.state.Present.Filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Columns returns every column sorted by order, hidden included.
func (s *Session) Columns() []domain.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Present.SortedColumns()
}

// VisibleColumns returns the non-hidden columns sorted by order.
func (s *Session) VisibleColumns() []domain.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Present.VisibleColumns()
}

// Tags returns the shared tag palette.
func (s *Session) Tags() []domain.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Tag(nil), s.state.Present.Tags...)
}

// Notes returns the board notes.
func (s *Session) Notes() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Note(nil), s.state.Present.Notes...)
}

// Automations returns the configured rules.
func (s *Session) Automations() []domain.Automation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Automation, len(s.state.Present.Automations))
	for i, a := range s.state.Present.Automations {
		out[i] = a.Clone()
	}
	return out
}

// AutomationLog returns the execution log, newest first.
func (s *Session) AutomationLog() []domain.Execution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Execution(nil), s.state.Present.AutomationLog...)
}

// Notifications returns the pending notifications, newest first.
func (s *Session) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.state.Present.Notifications...)
}

// Filter returns the current view filter.
func (s *Session) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Present.Filter.Clone()
}

// Progress returns the board-wide completion percentage, archived tasks
// excluded.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.AggregateProgress(s.state.Present.Tasks)
}

// IsBlocked reports the blocking status of a task.
func (s *Session) IsBlocked(taskID string) domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.state.Present.TaskByID(taskID)
	if !ok {
		return domain.Block{}
	}
	return domain.IsBlocked(t, s.state.Present.Tasks)
}

// WouldCreateCycle reports whether adding the dependency would close a cycle.
// Presentation layers call this before dispatching AddDependency to surface
// feedback; the reducer rejects the edge either way.
func (s *Session) WouldCreateCycle(taskID, dependsOnID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.WouldCreateCycle(s.state.Present.Tasks, taskID, dependsOnID)
}

// DependencyEdges enumerates the dependency graph for visualization.
func (s *Session) DependencyEdges() []domain.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DependencyEdges(s.state.Present.Tasks)
}

// WIPExceeded reports whether the column is at or over its WIP limit.
func (s *Session) WIPExceeded(columnID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Present.WIPExceeded(columnID)
}

// scheduleSaveLocked (re)arms the debounce timer. Every dispatch within the
// window pushes the write further out; the timer fires once with the latest
// state.
func (s *Session) scheduleSaveLocked() {
	s.dirty = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.cfg.SaveDelay, s.autosave)
}

func (s *Session) autosave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.dirty {
		return
	}
	_ = s.saveLocked(context.Background())
}

// saveLocked writes the present snapshot. On failure the snapshot stays
// authoritative in memory and dirty stays set, so the next debounce cycle
// retries with the latest state.
func (s *Session) saveLocked(ctx context.Context) error {
	err := codec.Save(ctx, s.cfg.Store, s.cfg.Namespace, s.state.Present, s.cfg.Clock())
	if err != nil {
		if s.cfg.Logger != nil {
			s.cfg.Logger.WithFields(log.Fields{
				"namespace": s.cfg.Namespace,
				"error":     err.Error(),
			}).Warn("board.save.failed")
		}
		return err
	}
	s.dirty = false
	return nil
}

// Flush cancels any pending debounce and writes the present snapshot now.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	if !s.dirty {
		return nil
	}
	return s.saveLocked(ctx)
}

// Close flushes pending changes and stops the session. Dispatches after
// Close are ignored.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	var err error
	if s.dirty {
		err = s.saveLocked(ctx)
	}
	s.closed = true
	return err
}

// actionName renders the action's concrete type without the package prefix.
func actionName(a reducer.Action) string {
	name := fmt.Sprintf("%T", a)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
