package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"guardian/internal/models"
	"guardian/pkg/middleware"
	"guardian/pkg/response"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleUserSignup registers a new account. Provider errors are surfaced
// verbatim; nothing is retried.
func (h *Handlers) handleUserSignup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Fail(c, "Please fill in both fields", nil)
		return
	}

	user, err := models.CreateUser(h.db, req.Email, req.Password)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "Sign Up Successful", gin.H{"id": user.ID, "email": user.Email})
}

// handleUserSignin checks the credentials and opens a session.
func (h *Handlers) handleUserSignin(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Fail(c, "Please enter email and password", nil)
		return
	}

	user, err := models.AuthenticateUser(h.db, req.Email, req.Password)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "Sign In Successful", gin.H{"id": user.ID, "email": user.Email})
}

func (h *Handlers) handleUserSignout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "Signed Out", nil)
}

// handleSession reports the session state: signed out, signed in without a
// profile, or signed in with a complete profile.
func (h *Handlers) handleSession(c *gin.Context) {
	sess := sessions.Default(c)
	uid, ok := sess.Get(middleware.SessionUserKey).(uint)
	if !ok || uid == 0 {
		response.Success(c, "signed out", gin.H{"signedIn": false})
		return
	}
	_, err := models.GetProfile(h.db, uid)
	response.Success(c, "signed in", gin.H{
		"signedIn":        true,
		"userId":          uid,
		"profileComplete": err == nil,
	})
}
