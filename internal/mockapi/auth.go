package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type profileUpdateInput struct {
	Name     *string `json:"name"`
	Picture  *string `json:"picture"`
	Nickname *string `json:"nickname"`
}

// sessionCookie marks an active mock session. The cookie is the whole
// session state; there is nothing to look up server-side.
const sessionCookie = "nebula_session"

func (s *Server) mockLogin(c *gin.Context) {
	c.SetCookie(sessionCookie, "1", 86400, "/", "", false, true)
	s.data.mu.Lock()
	s.data.user.UpdatedAt = now()
	user := s.data.user
	s.data.mu.Unlock()
	ok(c, http.StatusOK, user)
}

func (s *Server) mockLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	ok(c, http.StatusOK, nil)
}

func (s *Server) mockMe(c *gin.Context) {
	if v, err := c.Cookie(sessionCookie); err != nil || v == "" {
		fail(c, http.StatusUnauthorized, "no active session")
		return
	}
	s.data.mu.RLock()
	user := s.data.user
	s.data.mu.RUnlock()
	ok(c, http.StatusOK, user)
}

func (s *Server) getProfile(c *gin.Context) {
	s.data.mu.RLock()
	user := s.data.user
	s.data.mu.RUnlock()
	ok(c, http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var in profileUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.data.mu.Lock()
	if in.Name != nil {
		s.data.user.Name = *in.Name
	}
	if in.Picture != nil {
		s.data.user.Picture = *in.Picture
	}
	if in.Nickname != nil {
		s.data.user.Nickname = *in.Nickname
	}
	s.data.user.UpdatedAt = now()
	user := s.data.user
	s.data.mu.Unlock()

	ok(c, http.StatusOK, user)
}
