package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guardian/internal/feed"
	"guardian/pkg/config"
	"guardian/pkg/llm"
	"guardian/pkg/middleware"
	"guardian/pkg/notification"
	"guardian/pkg/search"
	stores "guardian/pkg/storage"
)

// Handlers carries every dependency the HTTP layer needs. Everything is
// constructed once in main and injected here; there are no package-level
// service handles.
type Handlers struct {
	db         *gorm.DB
	cfg        *config.Config
	store      stores.Store
	watcher    *feed.Watcher
	dispatcher *notification.Dispatcher
	assistant  *llm.Assistant // nil when not configured
	search     *search.Engine // nil when disabled
	logger     *zap.Logger
}

func NewHandlers(db *gorm.DB, cfg *config.Config, store stores.Store, watcher *feed.Watcher,
	dispatcher *notification.Dispatcher, assistant *llm.Assistant, engine *search.Engine,
	logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		db:         db,
		cfg:        cfg,
		store:      store,
		watcher:    watcher,
		dispatcher: dispatcher,
		assistant:  assistant,
		search:     engine,
		logger:     logger,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	engine.GET("/health", h.HealthCheck)

	r := engine.Group(h.cfg.APIPrefix)

	h.registerAuthRoutes(r)

	protected := r.Group("", middleware.RequireAuth())
	{
		protected.POST("/profile", h.handleSaveProfile)
		protected.GET("/profile", h.handleGetProfile)

		protected.POST("/incidents", h.handleReportIncident)
		protected.GET("/incidents", h.handleListIncidents)
		protected.GET("/incidents/stream", h.handleIncidentStream)
		protected.GET("/incidents/ws", h.handleIncidentSocket)
		protected.GET("/incidents/search", h.handleSearchIncidents)

		protected.POST("/sos", h.handleSOS)
		protected.GET("/sos/history", h.handleAlertHistory)
		protected.GET("/emergency-call", h.handleEmergencyCall)

		protected.POST("/guardian/chat", h.handleGuardianChat)
	}
}

func (h *Handlers) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group(h.cfg.AuthPrefix)
	{
		auth.POST("/register", h.handleUserSignup)
		auth.POST("/login", h.handleUserSignin)
		auth.POST("/logout", h.handleUserSignout)
		auth.GET("/session", h.handleSession)
	}
}
