package admin

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/seminars"
)

// seminarID reads ?id= for the creation flow. A missing or invalid id yields
// models.NoID and the store assigns one.
func (h *Handler) seminarID(c *gin.Context) models.ID {
	raw := c.Query("id")
	id, err := models.ParseID(raw)
	if err != nil || id <= models.NoID {
		h.logger.Warn("creation flow without a valid id", zap.String("id", raw))
		return models.NoID
	}
	return id
}

func (h *Handler) createPage(id models.ID, f seminars.Form) formPage {
	action := "/seminar/post"
	if id != models.NoID {
		action = fmt.Sprintf("/seminar/post?id=%d", int(id))
	}
	return formPage{
		Title:   "Добавить семинар",
		Action:  action,
		Form:    f,
		Uploads: h.photos != nil,
	}
}

// NewSeminar handles GET /seminar/post?id=N.
func (h *Handler) NewSeminar(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", h.createPage(h.seminarID(c), seminars.Form{}))
}

// CreateSeminar handles POST /seminar/post?id=N. An attached photo_file is
// uploaded once the other fields are valid and replaces the photo URL.
func (h *Handler) CreateSeminar(c *gin.Context) {
	id := h.seminarID(c)
	var f seminars.Form
	if err := c.ShouldBind(&f); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	p := h.createPage(id, f)

	if fh := h.photoFile(c); fh != nil {
		if err := h.svc.Validator().ValidateExcept(f, "photo"); err != nil {
			h.renderCreateError(c, p, err)
			return
		}
		url, err := h.uploadPhoto(c, fh)
		if err != nil {
			h.logger.Warn("photo upload", zap.Error(err))
			p.Errors = seminars.ValidationErrors{"photo": seminars.MsgUploadFailed}
			c.HTML(http.StatusUnprocessableEntity, "create.html", p)
			return
		}
		f.Photo = url
		p.Form.Photo = url
	}

	if _, err := h.svc.Create(c.Request.Context(), id, f); err != nil {
		h.renderCreateError(c, p, err)
		return
	}

	session(c).Notify(seminars.MsgCreated, false)
	h.dash.Invalidate()
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) renderCreateError(c *gin.Context, p formPage, err error) {
	var verrs seminars.ValidationErrors
	if errors.As(err, &verrs) {
		p.Errors = verrs
		c.HTML(http.StatusUnprocessableEntity, "create.html", p)
		return
	}
	p.Alert = seminars.MsgCreateFailed
	c.HTML(http.StatusBadGateway, "create.html", p)
}

// photoFile returns the attached photo_file, or nil when uploads are disabled
// or no file was sent.
func (h *Handler) photoFile(c *gin.Context) *multipart.FileHeader {
	if h.photos == nil {
		return nil
	}
	fh, err := c.FormFile("photo_file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			h.logger.Warn("read photo_file", zap.Error(err))
		}
		return nil
	}
	return fh
}

func (h *Handler) uploadPhoto(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open photo_file: %w", err)
	}
	defer file.Close()
	return h.photos.UploadPhoto(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), file, fh.Size)
}
