// Package admin serves the seminar admin screens.
package admin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/counter"
	"github.com/aura-seminar/admin/internal/dashboard"
	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

const pageTitle = "Семинары"

// PhotoUploader stores an uploaded photo and returns its public URL.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

// Handler serves the dashboard, dialogs and the creation flow.
type Handler struct {
	dash    *dashboard.Dashboard
	svc     *seminars.Service
	counter counter.Counter
	photos  PhotoUploader
	logger  *zap.Logger
}

// NewHandler creates the admin handler. photos may be nil when uploads are disabled.
func NewHandler(dash *dashboard.Dashboard, svc *seminars.Service, c counter.Counter, photos PhotoUploader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{dash: dash, svc: svc, counter: c, photos: photos, logger: logger}
}

// Register mounts the admin routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })

	ui := r.Group("", h.sessions())
	d := ui.Group("/dashboard")
	{
		d.GET("", h.Dashboard)
		d.POST("/refresh", h.Refresh)
		d.POST("/selection", h.Select)
		d.GET("/seminars/:id", h.Details)
		d.GET("/seminars/:id/edit", h.Edit)
		d.POST("/seminars/:id/edit", h.SubmitEdit)
		d.POST("/dialog/close", h.CloseDialog)
		d.GET("/delete", h.ConfirmDelete)
		d.POST("/delete", h.Delete)
	}

	ui.GET("/seminar/post", h.NewSeminar)
	ui.POST("/seminar/post", h.CreateSeminar)
}

// formPage is the data of the seminar form, on the create page and in the edit dialog.
type formPage struct {
	Title   string
	Action  string
	Form    seminars.Form
	Errors  seminars.ValidationErrors
	Alert   string
	Uploads bool
}

type dashboardPage struct {
	Title          string
	View           dashboard.View
	LastID         int64
	LoadFailedText string
	Detail         *models.Seminar
	Edit           *formPage
}

func dashboardURL(page int) string {
	if page <= 1 {
		return "/dashboard"
	}
	return fmt.Sprintf("/dashboard?page=%d", page)
}

// pageParam reads the 1-based page from the query or the posted form.
func pageParam(c *gin.Context) int {
	v := c.Query("page")
	if v == "" {
		v = c.PostForm("page")
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (h *Handler) redirect(c *gin.Context, page int) {
	c.Redirect(http.StatusSeeOther, dashboardURL(page))
}

// lastID is the counter hint shown on the dashboard; 0 hides it.
func (h *Handler) lastID(ctx context.Context) int64 {
	if h.counter == nil {
		return 0
	}
	n, err := h.counter.Current(ctx)
	if err != nil {
		h.logger.Warn("read seminar id counter", zap.Error(err))
		return 0
	}
	return n
}
