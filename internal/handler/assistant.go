package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guardian/pkg/response"
)

// handleGuardianChat answers a safety question through the GuardianAI
// assistant when one is configured.
func (h *Handlers) handleGuardianChat(c *gin.Context) {
	if h.assistant == nil {
		response.FailStatus(c, http.StatusServiceUnavailable, "GuardianAI launching soon!")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	if req.Message == "" {
		response.Fail(c, "missing message", nil)
		return
	}

	reply, err := h.assistant.Ask(c.Request.Context(), req.Message)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "reply", gin.H{"reply": reply})
}
