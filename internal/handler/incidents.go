package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"guardian/internal/cleanup"
	"guardian/internal/models"
	"guardian/pkg/middleware"
	"guardian/pkg/response"
)

// handleReportIncident accepts a multipart report: description, cause,
// latitude, longitude and an optional image. The image is uploaded before
// the row is written, so a failed upload aborts the submission and a failed
// row write can only orphan the object (reclaimed by the sweep).
func (h *Handlers) handleReportIncident(c *gin.Context) {
	description := c.PostForm("description")
	cause := c.PostForm("cause")
	latStr := c.PostForm("latitude")
	lngStr := c.PostForm("longitude")

	if description == "" || cause == "" || latStr == "" || lngStr == "" {
		response.Fail(c, "Please complete all required fields and get location", nil)
		return
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		response.Fail(c, "Please complete all required fields and get location", nil)
		return
	}

	var imageURI *string
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			response.Fail(c, err.Error(), nil)
			return
		}
		defer src.Close()

		key := cleanup.ImagePrefix + uuid.New().String() + ".jpg"
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		if err := h.store.Write(c.Request.Context(), key, src, file.Size, contentType); err != nil {
			response.Fail(c, err.Error(), nil)
			return
		}
		url := h.store.PublicURL(key)
		imageURI = &url
	}

	incident := &models.Incident{
		UserID:      middleware.CurrentUserID(c),
		Description: description,
		Cause:       cause,
		ImageURI:    imageURI,
		Location:    models.Location{Latitude: lat, Longitude: lng},
	}
	if err := models.CreateIncident(h.db, incident); err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}

	h.watcher.Notify()
	if h.search != nil {
		if err := h.search.Index(incident.ID, incident.Description, incident.Cause); err != nil {
			h.logger.Warn("incident index failed", zap.Uint("id", incident.ID), zap.Error(err))
		}
	}

	response.Success(c, "Your report has been submitted.", incident)
}

// handleListIncidents is the one-shot fetch used by the map view.
func (h *Handlers) handleListIncidents(c *gin.Context) {
	incidents, err := models.ListIncidents(h.db)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "incidents", incidents)
}

// handleIncidentStream serves the live feed over SSE. Each event carries
// the full snapshot; the subscription ends with the connection.
func (h *Handlers) handleIncidentStream(c *gin.Context) {
	sub, err := h.watcher.Watch(c.Request.Context())
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		snap, ok := <-sub.Snapshots()
		if !ok {
			return false
		}
		c.SSEvent("snapshot", snap)
		return true
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleIncidentSocket serves the live feed over a websocket for the mobile
// client. Snapshots are pushed; nothing meaningful is read.
func (h *Handlers) handleIncidentSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub, err := h.watcher.Watch(c.Request.Context())
	if err != nil {
		h.logger.Error("incident watch failed", zap.Error(err))
		return
	}
	defer sub.Close()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for snap := range sub.Snapshots() {
		if err := conn.WriteJSON(gin.H{"type": "snapshot", "data": snap}); err != nil {
			return
		}
	}
}

// handleSearchIncidents queries the optional full-text index.
func (h *Handlers) handleSearchIncidents(c *gin.Context) {
	if h.search == nil {
		response.Fail(c, "search is not enabled", nil)
		return
	}
	q := c.Query("q")
	if q == "" {
		response.Fail(c, "missing query", nil)
		return
	}
	ids, err := h.search.Search(q, 50)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	incidents, err := models.GetIncidentsByIDs(h.db, ids)
	if err != nil {
		response.Fail(c, err.Error(), nil)
		return
	}
	response.Success(c, "search results", incidents)
}
