package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-seminar/admin/internal/models"
)

type fakeLister struct {
	list      []models.Activity
	err       error
	lastLimit int
}

func (f *fakeLister) ListRecent(_ context.Context, limit int) ([]models.Activity, error) {
	f.lastLimit = limit
	return f.list, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/activity", h.List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_List_Success(t *testing.T) {
	repo := &fakeLister{list: []models.Activity{
		{ID: 2, SeminarID: 5, Action: models.ActivityDelete, Status: models.ActivityFailed, ErrorMessage: "status 500"},
		{ID: 1, SeminarID: 5, Action: models.ActivityCreate, Status: models.ActivitySucceeded},
	}}

	w := serve(NewHandler(repo), "/api/activity")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultLimit, repo.lastLimit)

	var body struct {
		Success bool              `json:"success"`
		Data    []models.Activity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, models.ActivityDelete, body.Data[0].Action)
}

func TestHandler_List_LimitCapped(t *testing.T) {
	repo := &fakeLister{}

	w := serve(NewHandler(repo), "/api/activity?limit=100000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxLimit, repo.lastLimit)
}

func TestHandler_List_InvalidLimit(t *testing.T) {
	w := serve(NewHandler(&fakeLister{}), "/api/activity?limit=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_List_RepoError(t *testing.T) {
	w := serve(NewHandler(&fakeLister{err: errors.New("db down")}), "/api/activity")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_List_Disabled(t *testing.T) {
	w := serve(NewHandler(nil), "/api/activity")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
