package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/core/services"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// systemHandler handles settings, audit log, notifications, persistence
// status and the data reset.
type systemHandler struct {
	engine *engine.Engine
	saver  *services.Saver
}

func newSystemHandler(e *engine.Engine, s *services.Saver) *systemHandler {
	return &systemHandler{engine: e, saver: s}
}

// registerSystemRoutes registers the system/administration routes.
func registerSystemRoutes(rg *gin.RouterGroup, e *engine.Engine, s *services.Saver) {
	h := newSystemHandler(e, s)

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
	rg.GET("/audit-log", h.auditLog)
	rg.GET("/notifications", h.notifications)
	rg.GET("/save-status", h.saveStatus)
	rg.POST("/reset", h.reset)
}

// getSettings godoc
// @Summary Get runtime settings
// @Tags system
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *systemHandler) getSettings(c *gin.Context) {
	s := h.engine.GetSettings()
	c.JSON(http.StatusOK, dto.SettingsResponse{AllowNegativeStock: s.AllowNegativeStock})
}

// updateSettings godoc
// @Summary Update runtime settings
// @Tags system
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /settings [put]
func (h *systemHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	s, err := h.engine.UpdateSettings(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.SettingsResponse{AllowNegativeStock: s.AllowNegativeStock})
}

// auditLog godoc
// @Summary Get the audit log
// @Description Returns the most recent audit entries, newest first
// @Tags system
// @Produce  json
// @Param   limit query int false "Maximum number of entries" default(100)
// @Success 200 {array} dto.AuditEntryResponse
// @Security BearerAuth
// @Router /audit-log [get]
func (h *systemHandler) auditLog(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		limit = 100
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(h.engine.AuditLog(limit)))
}

// notifications godoc
// @Summary Get notifications
// @Description Returns the most recent notifications, newest first
// @Tags system
// @Produce  json
// @Param   limit query int false "Maximum number of notifications" default(50)
// @Success 200 {array} domain.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (h *systemHandler) notifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		limit = 50
	}
	c.JSON(http.StatusOK, h.engine.Notifications(limit))
}

// saveStatus godoc
// @Summary Get snapshot persistence status
// @Description Reports whether the persisted snapshot is current, pending or failing
// @Tags system
// @Produce  json
// @Success 200 {object} dto.SaveStatusResponse
// @Security BearerAuth
// @Router /save-status [get]
func (h *systemHandler) saveStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.saver.Status())
}

// reset godoc
// @Summary Reset all transactional data
// @Description Deletes the journal, documents and quotes, zeroes balances and stock, restarts sequences. Master data survives. Irreversible.
// @Tags system
// @Produce  json
// @Success 204 "Reset complete"
// @Security BearerAuth
// @Router /reset [post]
func (h *systemHandler) reset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ResetTransactionalData(c.Request.Context(), actor); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
