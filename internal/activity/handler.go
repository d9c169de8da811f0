package activity

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/pkg/response"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Lister reads recent activity.
type Lister interface {
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

// Handler serves the activity log.
type Handler struct {
	repo Lister
}

// NewHandler creates an activity handler. repo may be nil when the log is disabled.
func NewHandler(repo Lister) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/activity?limit=N.
func (h *Handler) List(c *gin.Context) {
	if h.repo == nil {
		response.ServiceUnavailable(c, "activity log is not configured")
		return
	}
	limit := defaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	list, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Internal(c, "failed to load activity")
		return
	}
	if list == nil {
		list = []models.Activity{}
	}
	response.OK(c, list)
}
