package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/dashboard"
	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

// Dashboard handles GET /dashboard?page=N. The first visit starts loading the
// list and shows the loading page until it arrives.
func (h *Handler) Dashboard(c *gin.Context) {
	page := pageParam(c)
	h.dash.Activate()
	v := session(c).Snapshot(page)
	if v.Loading {
		c.HTML(http.StatusOK, "loading.html", gin.H{"Title": pageTitle, "Page": page})
		return
	}
	h.renderDashboard(c, http.StatusOK, v, nil)
}

func (h *Handler) renderDashboard(c *gin.Context, status int, v dashboard.View, edit *formPage) {
	p := dashboardPage{
		Title:          pageTitle,
		View:           v,
		LastID:         h.lastID(c.Request.Context()),
		LoadFailedText: seminars.MsgLoadFailed,
	}
	if s, ok := v.Dialog.Seminar(); ok {
		switch {
		case v.Dialog.IsViewing():
			p.Detail = &s
		case edit != nil:
			p.Edit = edit
		default:
			p.Edit = h.editPage(s, seminars.FormFor(s), v.Page)
		}
	}
	c.HTML(status, "dashboard.html", p)
}

func (h *Handler) editPage(s models.Seminar, f seminars.Form, page int) *formPage {
	return &formPage{
		Title:  "Редактировать семинар",
		Action: fmt.Sprintf("/dashboard/seminars/%d/edit?page=%d", int(s.ID), page),
		Form:   f,
	}
}

// Refresh handles POST /dashboard/refresh: the list is fetched again.
func (h *Handler) Refresh(c *gin.Context) {
	h.dash.Invalidate()
	h.dash.Activate()
	h.redirect(c, pageParam(c))
}

// Select handles POST /dashboard/selection. page_ids lists the rows shown on
// the page, selected the ones that are checked.
func (h *Handler) Select(c *gin.Context) {
	pageIDs := parseIDs(c.PostFormArray("page_ids"))
	checked := parseIDs(c.PostFormArray("selected"))
	session(c).SetPageSelection(pageIDs, checked)
	h.redirect(c, pageParam(c))
}

func parseIDs(values []string) []models.ID {
	ids := make([]models.ID, 0, len(values))
	for _, v := range values {
		if id, err := models.ParseID(v); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Details handles GET /dashboard/seminars/:id.
func (h *Handler) Details(c *gin.Context) {
	h.openDialog(c, session(c).OpenDetails)
}

// Edit handles GET /dashboard/seminars/:id/edit. It replaces the detail dialog.
func (h *Handler) Edit(c *gin.Context) {
	h.openDialog(c, session(c).OpenEdit)
}

func (h *Handler) openDialog(c *gin.Context, open func(models.ID) error) {
	page := pageParam(c)
	id, err := models.ParseID(c.Param("id"))
	if err == nil {
		err = open(id)
	}
	if err != nil {
		h.logger.Warn("open seminar dialog", zap.String("id", c.Param("id")), zap.Error(err))
		session(c).Notify(seminars.MsgNotFound, true)
	}
	h.redirect(c, page)
}

// CloseDialog handles POST /dashboard/dialog/close.
func (h *Handler) CloseDialog(c *gin.Context) {
	session(c).CloseDialogs()
	h.redirect(c, pageParam(c))
}

// SubmitEdit handles POST /dashboard/seminars/:id/edit. On failure the edit
// dialog stays open with the entered values.
func (h *Handler) SubmitEdit(c *gin.Context) {
	page := pageParam(c)
	sess := session(c)
	id, err := models.ParseID(c.Param("id"))
	var original models.Seminar
	if err == nil {
		original, err = h.dash.Seminar(id)
	}
	if err != nil {
		h.logger.Warn("edit unknown seminar", zap.String("id", c.Param("id")), zap.Error(err))
		sess.Notify(seminars.MsgNotFound, true)
		h.redirect(c, page)
		return
	}

	var f seminars.Form
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), original, f)
	if err != nil {
		_ = sess.OpenEdit(id)
		edit := h.editPage(original, f, page)
		status := http.StatusBadGateway
		var verrs seminars.ValidationErrors
		if errors.As(err, &verrs) {
			edit.Errors = verrs
			status = http.StatusUnprocessableEntity
		} else {
			edit.Alert = seminars.MsgUpdateFailed
		}
		h.renderDashboard(c, status, sess.Snapshot(page), edit)
		return
	}

	sess.ApplyUpdate(updated)
	h.redirect(c, page)
}
