package codec

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"boardcore/domain"
	"boardcore/store"
)

// ErrAbsent reports that no readable document exists under any known key.
// Callers fall back to the seed snapshot. Corrupt documents are treated as
// absent and are not deleted.
var ErrAbsent = errors.New("codec: no persisted document")

// Key returns the storage key for the current schema under a workspace
// namespace.
func Key(namespace string) string {
	return namespace + ":board"
}

// legacyKeySuffixes are the storage locations used by earlier schema
// generations, newest first. They stay readable for the depth of the ladder.
var legacyKeySuffixes = []string{
	":board-v5",
	":board-v4",
	":kanban-board",
	":kanban-tasks",
	":tasks",
}

// migration is one rung of the ladder: upgrades a board document from
// version-1 to version. Steps are applied in a loop until the document
// reaches CurrentVersion, so adding a generation is mechanical.
type migration struct {
	version int
	apply   func(doc *boardDocument, gen domain.IDGen, now time.Time)
}

var ladder = []migration{
	{version: 2, apply: migrateChecklistToSubtasks},
	{version: 3, apply: migrateFlatDependencies},
	{version: 4, apply: migrateColumnIDs},
	{version: 5, apply: injectSystemColumns},
	{version: 6, apply: backfillColumnFields},
}

// Migrate walks the ladder from the document's version up to CurrentVersion.
// Already-current documents pass through untouched, which makes the ladder
// idempotent.
func Migrate(doc *Document, gen domain.IDGen, now time.Time) {
	for _, step := range ladder {
		if doc.Version >= step.version {
			continue
		}
		step.apply(&doc.Data, gen, now)
		doc.Version = step.version
	}
}

// migrateChecklistToSubtasks converts legacy checklist items into subtasks
// when a task has checklist items but no subtasks yet.
func migrateChecklistToSubtasks(doc *boardDocument, gen domain.IDGen, now time.Time) {
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if len(t.Subtasks) > 0 || len(t.LegacyChecklist) == 0 {
			t.LegacyChecklist = nil
			continue
		}
		for _, item := range t.LegacyChecklist {
			id := item.ID
			if id == "" {
				id = gen.Next()
			}
			t.Subtasks = append(t.Subtasks, subtaskDocument{
				ID:        id,
				Title:     item.Text,
				Completed: item.Done,
				CreatedAt: formatTime(now),
			})
		}
		t.LegacyChecklist = nil
	}
}

// migrateFlatDependencies converts the flat prerequisite-id list into
// structured finish-to-start records with fresh ids.
func migrateFlatDependencies(doc *boardDocument, gen domain.IDGen, now time.Time) {
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if len(t.Deps) > 0 || len(t.LegacyDependencies) == 0 {
			t.LegacyDependencies = nil
			continue
		}
		for _, dep := range domain.UpgradeLegacyDependencies(t.LegacyDependencies, gen, now) {
			t.Deps = append(t.Deps, dependencyDocument{
				ID:              dep.ID,
				Type:            string(dep.Type),
				DependsOnTaskID: dep.DependsOnTaskID,
				CreatedAt:       formatTime(dep.CreatedAt),
			})
		}
		t.LegacyDependencies = nil
	}
}

// legacyColumnIDs maps column identifiers from earlier generations onto the
// current scheme.
var legacyColumnIDs = map[string]string{
	"new":        "backlog",
	"pending":    "todo",
	"wip":        "in-progress",
	"doing":      "in-progress",
	"inprogress": "in-progress",
	"qa":         "review",
	"complete":   "done",
	"completed":  "done",
	"finished":   "done",
}

// migrateColumnIDs remaps legacy column identifiers on columns and tasks.
// Tasks whose column id matches nothing after the remap fall back to the
// first available column.
func migrateColumnIDs(doc *boardDocument, _ domain.IDGen, _ time.Time) {
	for i := range doc.Columns {
		if mapped, ok := legacyColumnIDs[doc.Columns[i].ID]; ok {
			doc.Columns[i].ID = mapped
		}
	}
	known := make(map[string]bool, len(doc.Columns))
	for _, c := range doc.Columns {
		known[c.ID] = true
	}
	fallback := ""
	if len(doc.Columns) > 0 {
		fallback = doc.Columns[0].ID
	}
	for i := range doc.Tasks {
		id := doc.Tasks[i].ColumnID
		if mapped, ok := legacyColumnIDs[id]; ok {
			id = mapped
		}
		if !known[id] {
			id = fallback
		}
		doc.Tasks[i].ColumnID = id
	}
}

// systemColumns are expected on every board; missing ones are appended after
// the current maximum order.
var systemColumns = []columnDocument{
	{ID: "backlog", Title: "Backlog", System: true},
	{ID: "done", Title: "Done", System: true, Done: true},
}

func injectSystemColumns(doc *boardDocument, _ domain.IDGen, _ time.Time) {
	maxOrder := -1
	present := make(map[string]bool, len(doc.Columns))
	for _, c := range doc.Columns {
		present[c.ID] = true
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	for _, sys := range systemColumns {
		if present[sys.ID] {
			continue
		}
		maxOrder++
		sys.Order = maxOrder
		doc.Columns = append(doc.Columns, sys)
	}
}

// backfillColumnFields fills the optional fields introduced in later
// generations: subtitle, done flag and system flag.
func backfillColumnFields(doc *boardDocument, _ domain.IDGen, _ time.Time) {
	for i := range doc.Columns {
		c := &doc.Columns[i]
		if c.ID == "done" && !c.Done {
			c.Done = true
		}
		if (c.ID == "backlog" || c.ID == "done") && !c.System {
			c.System = true
		}
	}
}

// Loader reads and upgrades persisted documents.
type Loader struct {
	KV     store.KV
	IDs    domain.IDGen
	Clock  func() time.Time
	Logger *log.Logger
}

func (l *Loader) now() time.Time {
	if l.Clock != nil {
		return l.Clock()
	}
	return time.Now()
}

// Load finds the newest readable document under the current or any legacy
// key, migrates it to the current version and re-saves it under the current
// key so future loads skip the ladder. Returns ErrAbsent when nothing
// readable exists anywhere.
func (l *Loader) Load(ctx context.Context, namespace string) (domain.Snapshot, error) {
	keys := make([]string, 0, len(legacyKeySuffixes)+1)
	keys = append(keys, Key(namespace))
	for _, suffix := range legacyKeySuffixes {
		keys = append(keys, namespace+suffix)
	}

	for _, key := range keys {
		data, err := l.KV.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) && l.Logger != nil {
				l.Logger.WithFields(log.Fields{"key": key, "error": err.Error()}).Warn("board.load.read_failed")
			}
			continue
		}
		doc, ok := decodeAnyVersion(data)
		if !ok {
			// Corrupt data is treated as absent and left in place.
			if l.Logger != nil {
				l.Logger.WithFields(log.Fields{"key": key}).Warn("board.load.corrupt_document")
			}
			continue
		}
		migrated := doc.Version < CurrentVersion
		Migrate(&doc, l.IDs, l.now())
		if migrated || key != Key(namespace) {
			if err := l.save(ctx, namespace, doc); err != nil && l.Logger != nil {
				l.Logger.WithFields(log.Fields{"key": Key(namespace), "error": err.Error()}).Warn("board.load.resave_failed")
			}
		}
		return fromBoardDocument(doc.Data), nil
	}
	return domain.Snapshot{}, ErrAbsent
}

// decodeAnyVersion accepts either the versioned envelope or the bare board
// payload written by the very first generation (no envelope, version 1).
func decodeAnyVersion(data []byte) (Document, bool) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err == nil && doc.Version > 0 {
		return doc, true
	}
	var bare boardDocument
	if err := sonic.Unmarshal(data, &bare); err == nil && (len(bare.Tasks) > 0 || len(bare.Columns) > 0) {
		return Document{Version: 1, Data: bare}, true
	}
	return Document{}, false
}

func (l *Loader) save(ctx context.Context, namespace string, doc Document) error {
	doc.SavedAt = formatTime(l.now())
	data, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	return l.KV.Set(ctx, Key(namespace), data)
}

// Save encodes the snapshot under the current version and key. Errors are
// returned for the caller to log; the in-memory snapshot stays authoritative
// either way.
func Save(ctx context.Context, kv store.KV, namespace string, s domain.Snapshot, now time.Time) error {
	data, err := Encode(s, now)
	if err != nil {
		return err
	}
	return kv.Set(ctx, Key(namespace), data)
}
