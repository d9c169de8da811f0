package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aura-seminar/admin/internal/dashboard"
)

const (
	// SessionCookie carries the browser's dashboard session id.
	SessionCookie = "seminar_admin_session"

	sessionKey = "dashboard_session"
)

// sessions attaches the browser's dashboard session to the request, issuing
// a new session cookie when none or an invalid one is sent.
func (h *Handler) sessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(sessionKey, h.dash.Session(id))
		c.Next()
	}
}

func session(c *gin.Context) *dashboard.Session {
	return c.MustGet(sessionKey).(*dashboard.Session)
}
