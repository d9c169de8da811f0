package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aura-seminar/admin/internal/activity"
	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/monitoring"
	"github.com/aura-seminar/admin/internal/seminars"
)

// BulkDeleteResult is the per-seminar outcome of a bulk delete.
type BulkDeleteResult struct {
	Deleted []models.ID
	Failed  map[models.ID]error
}

// OK reports whether every delete succeeded.
func (r BulkDeleteResult) OK() bool { return len(r.Failed) == 0 }

// FailedIDs returns the ids whose delete failed, ascending.
func (r BulkDeleteResult) FailedIDs() []models.ID {
	ids := make([]models.ID, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DeleteSelected deletes every seminar selected in this session concurrently
// and waits for all requests before touching the list. The list changes only
// when every delete succeeded; after any failure the list and the selection
// stay as they were and the notice names the failed ids.
func (s *Session) DeleteSelected(ctx context.Context) BulkDeleteResult {
	d := s.d
	d.mu.Lock()
	ids := selectionOf(d.viewLocked(s.id))
	titles := make(map[models.ID]string, len(ids))
	for _, id := range ids {
		if i := d.indexOf(id); i >= 0 {
			titles[id] = d.list[i].Title
		}
	}
	d.mu.Unlock()

	res := BulkDeleteResult{Failed: make(map[models.ID]error)}
	if len(ids) == 0 {
		return res
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			errs[i] = d.store.Delete(ctx, id)
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Warn("bulk delete incomplete", zap.Error(err))
	}

	for i, id := range ids {
		activity.Track(ctx, d.recorder, d.logger, id, titles[id], models.ActivityDelete, errs[i])
		if errs[i] != nil {
			res.Failed[id] = errs[i]
			continue
		}
		res.Deleted = append(res.Deleted, id)
	}
	monitoring.TrackBulkDelete(len(res.Deleted), len(res.Failed))

	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.viewLocked(s.id)
	if res.OK() {
		d.removeLocked(res.Deleted)
		st.notice = &Notice{Text: seminars.MsgDeleted}
	} else {
		st.notice = &Notice{Text: failedNotice(res.FailedIDs()), Error: true}
	}
	d.logger.Info("bulk delete finished", zap.Int("deleted", len(res.Deleted)), zap.Int("failed", len(res.Failed)))
	return res
}

// removeLocked drops ids from the list, from every session's selection and
// closes dialogs showing them.
func (d *Dashboard) removeLocked(ids []models.ID) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[models.ID]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	kept := make([]models.Seminar, 0, len(d.list))
	for _, sem := range d.list {
		if _, ok := gone[sem.ID]; !ok {
			kept = append(kept, sem)
		}
	}
	d.list = kept
	for _, v := range d.views {
		for id := range gone {
			delete(v.selected, id)
		}
		if sem, ok := v.dialog.Seminar(); ok {
			if _, ok := gone[sem.ID]; ok {
				v.dialog = Dialog{}
			}
		}
	}
}

func failedNotice(ids []models.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return fmt.Sprintf("%s ID: %s", seminars.MsgDeleteFailed, strings.Join(parts, ", "))
}
