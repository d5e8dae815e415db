package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"guardian/internal/models"
	"guardian/pkg/middleware"
	"guardian/pkg/response"
)

// handleSaveProfile validates the form and overwrites the user's profile in
// one atomic write. Validation failures never reach the database.
func (h *Handlers) handleSaveProfile(c *gin.Context) {
	var req models.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}

	profile, err := req.Validate()
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := models.SaveProfile(h.db, userID, profile); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "Profile Saved Successfully!", profile)
}

func (h *Handlers) handleGetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	profile, err := models.GetProfile(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailStatus(c, http.StatusNotFound, "User profile not found.")
			return
		}
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "profile", profile)
}
