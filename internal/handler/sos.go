package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guardian/internal/models"
	"guardian/pkg/middleware"
	"guardian/pkg/notification"
	"guardian/pkg/response"
)

type sosRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// handleSOS fans an SOS message out to the user's emergency contacts. The
// dispatch is best-effort: one contact failing never stops the rest, and
// the aggregate outcome is returned rather than swallowed.
func (h *Handlers) handleSOS(c *gin.Context) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		response.Fail(c, "We need location access to send an SOS.", nil)
		return
	}

	userID := middleware.CurrentUserID(c)
	profile, err := models.GetProfile(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, "User profile not found.", nil)
			return
		}
		response.Fail(c, err.Error(), nil)
		return
	}
	if len(profile.EmergencyContacts) == 0 {
		response.Fail(c, "You haven't added emergency contacts yet.", nil)
		return
	}

	message := notification.SOSMessage(profile.Name, *req.Latitude, *req.Longitude)
	outcome := h.dispatcher.Dispatch(c.Request.Context(), profile.EmergencyContacts, message)

	alert := &models.Alert{
		UserID:    userID,
		AlertType: "SOS",
		Location:  models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Attempted: outcome.Attempted,
		Failed:    outcome.Failed,
	}
	if err := models.CreateAlert(h.db, alert); err != nil {
		// the dispatch already happened; a lost audit row must not hide that
		h.logger.Error("could not record SOS alert", zap.Uint("user", userID), zap.Error(err))
	}

	response.Success(c, "Your emergency contacts have been notified.", outcome)
}

// handleAlertHistory lists the user's past SOS dispatches.
func (h *Handlers) handleAlertHistory(c *gin.Context) {
	alerts, err := models.GetAlertsByUser(h.db, middleware.CurrentUserID(c))
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "alerts", alerts)
}

// handleEmergencyCall returns the dialer link for the police number.
func (h *Handlers) handleEmergencyCall(c *gin.Context) {
	response.Success(c, "emergency call", gin.H{
		"number": h.cfg.PoliceNumber,
		"link":   notification.TelLink(h.cfg.PoliceNumber),
	})
}
