package seminars

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/activity"
	"github.com/aura-seminar/admin/internal/counter"
	"github.com/aura-seminar/admin/internal/models"
)

// Service runs the create and edit submission flows.
type Service struct {
	store     Store
	validator *Validator
	counter   counter.Counter
	recorder  activity.Recorder
	logger    *zap.Logger
}

// NewService creates the seminar form service.
func NewService(store Store, v *Validator, c counter.Counter, rec activity.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = activity.Nop{}
	}
	return &Service{store: store, validator: v, counter: c, recorder: rec, logger: logger}
}

// Validator returns the form validator used by the service.
func (s *Service) Validator() *Validator { return s.validator }

// Create validates f and posts it to the store under id. On success the
// last-seminar-id counter is advanced.
func (s *Service) Create(ctx context.Context, id models.ID, f Form) (models.Seminar, error) {
	if err := s.validator.Validate(f); err != nil {
		return models.Seminar{}, err
	}
	sem := f.Seminar(id)
	if err := s.store.Create(ctx, sem); err != nil {
		s.record(ctx, sem, models.ActivityCreate, err)
		s.logger.Error("create seminar", zap.Stringer("seminar_id", sem.ID), zap.Error(err))
		return models.Seminar{}, fmt.Errorf("create seminar: %w", err)
	}
	s.record(ctx, sem, models.ActivityCreate, nil)

	if s.counter != nil {
		if n, err := s.counter.Advance(ctx); err != nil {
			s.logger.Warn("advance seminar id counter", zap.Error(err))
		} else {
			s.logger.Debug("seminar id counter advanced", zap.Int64("last_seminar_id", n))
		}
	}
	s.logger.Info("seminar created", zap.Stringer("seminar_id", sem.ID), zap.String("title", sem.Title))
	return sem, nil
}

// Update validates f as an edit of original and replaces the stored record.
func (s *Service) Update(ctx context.Context, original models.Seminar, f Form) (models.Seminar, error) {
	f = f.EditOf(original)
	if err := s.validator.Validate(f); err != nil {
		return models.Seminar{}, err
	}
	sem := f.Seminar(original.ID)
	if err := s.store.Update(ctx, sem); err != nil {
		s.record(ctx, sem, models.ActivityUpdate, err)
		s.logger.Error("update seminar", zap.Stringer("seminar_id", sem.ID), zap.Error(err))
		return models.Seminar{}, fmt.Errorf("update seminar %s: %w", sem.ID, err)
	}
	s.record(ctx, sem, models.ActivityUpdate, nil)
	s.logger.Info("seminar updated", zap.Stringer("seminar_id", sem.ID))
	return sem, nil
}

// record stores the outcome of a mutation.
func (s *Service) record(ctx context.Context, sem models.Seminar, action string, opErr error) {
	activity.Track(ctx, s.recorder, s.logger, sem.ID, sem.Title, action, opErr)
}
