package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// purchaseHandler handles purchase bills.
type purchaseHandler struct {
	engine *engine.Engine
}

func newPurchaseHandler(e *engine.Engine) *purchaseHandler {
	return &purchaseHandler{engine: e}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newPurchaseHandler(e)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.PUT("/:id", h.updatePurchase)
		purchases.POST("/:id/archive", h.archivePurchase)
	}
}

// createPurchase godoc
// @Summary Create a purchase bill
// @Description Posts a purchase: stock in, supplier balance up on credit, balanced journal entry
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Bill content"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	p, err := h.engine.CreatePurchase(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(p))
}

// listPurchases godoc
// @Summary List purchase bills
// @Tags purchases
// @Produce  json
// @Success 200 {array} dto.PurchaseResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToPurchaseResponses(st.Purchases))
}

// getPurchase godoc
// @Summary Get a purchase bill
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	st := h.engine.Snapshot()
	p := st.PurchaseByID(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(p))
}

// updatePurchase godoc
// @Summary Replace a purchase bill
// @Description Archives the original journal entry and posts a fresh one with the new content
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   purchase body dto.CreatePurchaseRequest true "New bill content"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 409 {object} map[string]string "Purchase archived or received stock already consumed"
// @Security BearerAuth
// @Router /purchases/{id} [put]
func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	p, err := h.engine.UpdatePurchase(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(p))
}

// archivePurchase godoc
// @Summary Cancel a purchase bill
// @Description Removes the received stock again and archives the journal entry
// @Tags purchases
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 409 {object} map[string]string "Already archived or received stock already consumed"
// @Security BearerAuth
// @Router /purchases/{id}/archive [post]
func (h *purchaseHandler) archivePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchivePurchase(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
