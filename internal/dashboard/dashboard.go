// Package dashboard holds the admin's view of the seminar collection: the
// fetched list, paging, row selection, the dialog slot and bulk deletion.
//
// The list is a transient copy of the remote store shared by every browser.
// It is fetched once per activation and patched after each successful
// mutation. Selection, dialog and notices belong to a Session.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/activity"
	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

// DefaultPageSize is the number of rows per dashboard page.
const DefaultPageSize = 5

// SessionTTL is how long an idle session keeps its view state.
const SessionTTL = 12 * time.Hour

// Notice is a one-shot message shown at the top of the dashboard.
type Notice struct {
	Text  string
	Error bool
}

// Row is one table row.
type Row struct {
	models.Seminar
	Selected bool
}

// ActionKind is what the floating action button does.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionDelete
)

// Action is the floating action button state.
type Action struct {
	Kind ActionKind
	Href string
}

// IsDelete reports whether the button starts a bulk delete.
func (a Action) IsDelete() bool { return a.Kind == ActionDelete }

// View is a consistent snapshot of the dashboard for rendering.
type View struct {
	Loading    bool
	LoadFailed bool
	Rows       []Row
	Page       int
	PageCount  int
	Total      int
	NextID     models.ID
	Selected   int
	Action     Action
	Dialog     Dialog
	Notice     *Notice
}

// Dashboard is safe for concurrent use. The store is never called while the
// internal lock is held.
type Dashboard struct {
	store    seminars.Store
	recorder activity.Recorder
	logger   *zap.Logger
	pageSize int
	now      func() time.Time

	mu      sync.Mutex
	list    []models.Seminar
	loaded  bool
	loading bool
	loadErr error
	nextID  models.ID
	views   map[string]*viewState
}

// New creates a dashboard. pageSize <= 0 selects DefaultPageSize.
func New(store seminars.Store, rec activity.Recorder, pageSize int, logger *zap.Logger) *Dashboard {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if rec == nil {
		rec = activity.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		store:    store,
		recorder: rec,
		logger:   logger,
		pageSize: pageSize,
		now:      time.Now,
		nextID:   models.NextID(nil),
		views:    make(map[string]*viewState),
	}
}

// Activate starts loading the list in the background unless it is already
// loaded or loading. It reports whether a load was started.
func (d *Dashboard) Activate() bool {
	d.mu.Lock()
	if d.loaded || d.loading {
		d.mu.Unlock()
		return false
	}
	d.loading = true
	d.mu.Unlock()

	go func() {
		_ = d.fetch(context.Background())
	}()
	return true
}

// Load fetches the list synchronously.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()
	return d.fetch(ctx)
}

func (d *Dashboard) fetch(ctx context.Context) error {
	list, err := d.store.List(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	d.loaded = true
	d.loadErr = err
	if err != nil {
		d.logger.Error("load seminars", zap.Error(err))
		d.list = nil
		d.nextID = models.NextID(nil)
		return err
	}
	d.list = append([]models.Seminar(nil), list...)
	d.nextID = models.NextID(list)
	for _, v := range d.views {
		d.pruneSelection(v)
	}
	d.logger.Debug("seminars loaded", zap.Int("count", len(list)), zap.Stringer("next_id", d.nextID))
	return nil
}

// Invalidate marks the list stale; the next Activate refetches it.
func (d *Dashboard) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = false
	d.loadErr = nil
}

// NextID is the id proposed to the creation flow.
func (d *Dashboard) NextID() models.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nextID
}

// Seminars returns a copy of the loaded list.
func (d *Dashboard) Seminars() []models.Seminar {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Seminar(nil), d.list...)
}

// Seminar returns the loaded seminar with the given id.
func (d *Dashboard) Seminar(id models.ID) (models.Seminar, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(id)
	if i < 0 {
		return models.Seminar{}, fmt.Errorf("seminar %s: %w", id, seminars.ErrNotFound)
	}
	return d.list[i], nil
}

// CreateURL is the creation flow route carrying the proposed id.
func CreateURL(id models.ID) string {
	return fmt.Sprintf("/seminar/post?id=%d", int(id))
}

func (d *Dashboard) indexOf(id models.ID) int {
	for i, s := range d.list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// mergeLocked replaces the seminar with the same id and refreshes every open
// dialog showing it.
func (d *Dashboard) mergeLocked(s models.Seminar) {
	if i := d.indexOf(s.ID); i >= 0 {
		d.list[i] = s
	}
	for _, v := range d.views {
		if cur, ok := v.dialog.Seminar(); ok && cur.ID == s.ID {
			v.dialog.seminar = s
		}
	}
}

// pruneSelection drops selected ids that are no longer in the list.
func (d *Dashboard) pruneSelection(v *viewState) {
	for id := range v.selected {
		if d.indexOf(id) < 0 {
			delete(v.selected, id)
		}
	}
}
