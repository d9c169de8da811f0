package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

// viewState is what one browser session sees on top of the shared list.
type viewState struct {
	selected map[models.ID]struct{}
	dialog   Dialog
	notice   *Notice
	seen     time.Time
}

// Session is one browser's view of the dashboard: its row selection, its
// dialog slot and its pending notice.
type Session struct {
	d  *Dashboard
	id string
}

// Session returns the view of the given session id, creating it on first use.
// Sessions idle for longer than SessionTTL are dropped.
func (d *Dashboard) Session(id string) *Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for key, v := range d.views {
		if key != id && now.Sub(v.seen) > SessionTTL {
			delete(d.views, key)
		}
	}
	d.viewLocked(id).seen = now
	return &Session{d: d, id: id}
}

// viewLocked returns the state of id, recreating it if it was evicted.
func (d *Dashboard) viewLocked(id string) *viewState {
	v, ok := d.views[id]
	if !ok {
		v = &viewState{selected: make(map[models.ID]struct{}), seen: d.now()}
		d.views[id] = v
	}
	return v
}

// ID is the session key.
func (s *Session) ID() string { return s.id }

// Notify queues a notice for the next snapshot of this session.
func (s *Session) Notify(text string, isError bool) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.viewLocked(s.id).notice = &Notice{Text: text, Error: isError}
}

// Snapshot returns the state of the given 1-based page. Once the list is
// loaded the pending notice is consumed. Out-of-range pages are clamped.
func (s *Session) Snapshot(page int) View {
	d := s.d
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.viewLocked(s.id)

	v := View{
		Loading:    d.loading || !d.loaded,
		LoadFailed: d.loadErr != nil,
		Total:      len(d.list),
		NextID:     d.nextID,
		Selected:   len(st.selected),
		Dialog:     st.dialog,
	}

	v.PageCount = (len(d.list) + d.pageSize - 1) / d.pageSize
	if v.PageCount < 1 {
		v.PageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > v.PageCount {
		page = v.PageCount
	}
	v.Page = page

	if !v.Loading {
		v.Notice, st.notice = st.notice, nil
		start := (page - 1) * d.pageSize
		end := start + d.pageSize
		if end > len(d.list) {
			end = len(d.list)
		}
		for _, sem := range d.list[start:end] {
			_, sel := st.selected[sem.ID]
			v.Rows = append(v.Rows, Row{Seminar: sem, Selected: sel})
		}
	}

	if len(st.selected) == 0 {
		v.Action = Action{Kind: ActionCreate, Href: CreateURL(d.nextID)}
	} else {
		v.Action = Action{Kind: ActionDelete, Href: "/dashboard/delete"}
	}
	return v
}

// SetPageSelection replaces the selection state of the rows in pageIDs with
// checked. Rows on other pages keep their state; unknown ids are ignored.
func (s *Session) SetPageSelection(pageIDs, checked []models.ID) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	st := s.d.viewLocked(s.id)
	for _, id := range pageIDs {
		delete(st.selected, id)
	}
	for _, id := range checked {
		if s.d.indexOf(id) >= 0 {
			st.selected[id] = struct{}{}
		}
	}
}

// Selection returns the selected ids in ascending order.
func (s *Session) Selection() []models.ID {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return selectionOf(s.d.viewLocked(s.id))
}

// ClearSelection unchecks every row.
func (s *Session) ClearSelection() {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.viewLocked(s.id).selected = make(map[models.ID]struct{})
}

// Dialog returns the current dialog slot.
func (s *Session) Dialog() Dialog {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.d.viewLocked(s.id).dialog
}

// OpenDetails shows the read-only dialog for id, replacing any open dialog.
func (s *Session) OpenDetails(id models.ID) error {
	return s.open(id, Viewing)
}

// OpenEdit shows the edit dialog for id, replacing any open dialog.
func (s *Session) OpenEdit(id models.ID) error {
	return s.open(id, Editing)
}

func (s *Session) open(id models.ID, as func(models.Seminar) Dialog) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	i := s.d.indexOf(id)
	if i < 0 {
		return fmt.Errorf("open seminar %s: %w", id, seminars.ErrNotFound)
	}
	s.d.viewLocked(s.id).dialog = as(s.d.list[i])
	return nil
}

// CloseDialogs closes whichever dialog is open.
func (s *Session) CloseDialogs() {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.viewLocked(s.id).dialog = Dialog{}
}

// ApplyUpdate merges an updated seminar into the shared list by id and
// closes this session's dialogs.
func (s *Session) ApplyUpdate(sem models.Seminar) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.mergeLocked(sem)
	s.d.viewLocked(s.id).dialog = Dialog{}
}

func selectionOf(st *viewState) []models.ID {
	ids := make([]models.ID, 0, len(st.selected))
	for id := range st.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
