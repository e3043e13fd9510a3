package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// adjustmentHandler handles inventory adjustments.
type adjustmentHandler struct {
	engine *engine.Engine
}

func newAdjustmentHandler(e *engine.Engine) *adjustmentHandler {
	return &adjustmentHandler{engine: e}
}

// registerAdjustmentRoutes registers routes related to inventory adjustments.
func registerAdjustmentRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newAdjustmentHandler(e)

	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("", h.createAdjustment)
		adjustments.GET("", h.listAdjustments)
		adjustments.GET("/:id", h.getAdjustment)
		adjustments.PUT("/:id", h.updateAdjustment)
		adjustments.POST("/:id/archive", h.archiveAdjustment)
	}
}

// createAdjustment godoc
// @Summary Create an inventory adjustment
// @Description Moves stock by signed quantities and posts the valuation to the ledger
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment content"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /adjustments [post]
func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateAdjustmentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	adj, err := h.engine.CreateAdjustment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adj))
}

// listAdjustments godoc
// @Summary List inventory adjustments
// @Tags adjustments
// @Produce  json
// @Success 200 {array} dto.AdjustmentResponse
// @Security BearerAuth
// @Router /adjustments [get]
func (h *adjustmentHandler) listAdjustments(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToAdjustmentResponses(st.Adjustments))
}

// getAdjustment godoc
// @Summary Get an inventory adjustment
// @Tags adjustments
// @Produce  json
// @Param   id path string true "Adjustment ID"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Security BearerAuth
// @Router /adjustments/{id} [get]
func (h *adjustmentHandler) getAdjustment(c *gin.Context) {
	st := h.engine.Snapshot()
	adj := st.AdjustmentByID(c.Param("id"))
	if adj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory adjustment not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adj))
}

// updateAdjustment godoc
// @Summary Replace an inventory adjustment
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   id path string true "Adjustment ID"
// @Param   adjustment body dto.CreateAdjustmentRequest true "New adjustment content"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment archived or insufficient stock"
// @Security BearerAuth
// @Router /adjustments/{id} [put]
func (h *adjustmentHandler) updateAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateAdjustmentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	adj, err := h.engine.UpdateAdjustment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adj))
}

// archiveAdjustment godoc
// @Summary Cancel an inventory adjustment
// @Tags adjustments
// @Produce  json
// @Param   id path string true "Adjustment ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Already archived or insufficient stock to undo"
// @Security BearerAuth
// @Router /adjustments/{id}/archive [post]
func (h *adjustmentHandler) archiveAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveAdjustment(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
