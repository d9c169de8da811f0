package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

// ConfirmDelete handles GET /dashboard/delete.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	page := pageParam(c)
	ids := session(c).Selection()
	if len(ids) == 0 {
		h.redirect(c, page)
		return
	}
	list := make([]models.Seminar, 0, len(ids))
	for _, id := range ids {
		if s, err := h.dash.Seminar(id); err == nil {
			list = append(list, s)
		}
	}
	c.HTML(http.StatusOK, "delete.html", gin.H{
		"Title":    pageTitle,
		"Question": seminars.MsgDeleteAsk,
		"Seminars": list,
		"Page":     page,
	})
}

// Delete handles POST /dashboard/delete. confirm=yes deletes the selection;
// anything else cancels and clears it.
func (h *Handler) Delete(c *gin.Context) {
	page := pageParam(c)
	if c.PostForm("confirm") != "yes" {
		session(c).ClearSelection()
		h.redirect(c, page)
		return
	}
	session(c).DeleteSelected(c.Request.Context())
	h.redirect(c, page)
}
