package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// treasuryHandler handles receipt and payment vouchers.
type treasuryHandler struct {
	engine *engine.Engine
}

func newTreasuryHandler(e *engine.Engine) *treasuryHandler {
	return &treasuryHandler{engine: e}
}

// registerTreasuryRoutes registers routes related to treasury vouchers.
func registerTreasuryRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newTreasuryHandler(e)

	treasury := rg.Group("/treasury")
	{
		treasury.POST("", h.createVoucher)
		treasury.GET("", h.listVouchers)
		treasury.GET("/:id", h.getVoucher)
		treasury.PUT("/:id", h.updateVoucher)
		treasury.POST("/:id/archive", h.archiveVoucher)
	}
}

// createVoucher godoc
// @Summary Create a treasury voucher
// @Description Posts a cash or bank receipt/payment against a customer, supplier or ledger account
// @Tags treasury
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateTreasuryRequest true "Voucher content"
// @Success 201 {object} dto.TreasuryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /treasury [post]
func (h *treasuryHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateTreasuryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	t, err := h.engine.CreateTreasury(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTreasuryResponse(t))
}

// listVouchers godoc
// @Summary List treasury vouchers
// @Tags treasury
// @Produce  json
// @Success 200 {array} dto.TreasuryResponse
// @Security BearerAuth
// @Router /treasury [get]
func (h *treasuryHandler) listVouchers(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToTreasuryResponses(st.Treasury))
}

// getVoucher godoc
// @Summary Get a treasury voucher
// @Tags treasury
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.TreasuryResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /treasury/{id} [get]
func (h *treasuryHandler) getVoucher(c *gin.Context) {
	st := h.engine.Snapshot()
	t := st.TreasuryByID(c.Param("id"))
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Treasury voucher not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTreasuryResponse(t))
}

// updateVoucher godoc
// @Summary Replace a treasury voucher
// @Tags treasury
// @Accept  json
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Param   voucher body dto.CreateTreasuryRequest true "New voucher content"
// @Success 200 {object} dto.TreasuryResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher archived"
// @Security BearerAuth
// @Router /treasury/{id} [put]
func (h *treasuryHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateTreasuryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	t, err := h.engine.UpdateTreasury(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTreasuryResponse(t))
}

// archiveVoucher godoc
// @Summary Cancel a treasury voucher
// @Tags treasury
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Already archived"
// @Security BearerAuth
// @Router /treasury/{id}/archive [post]
func (h *treasuryHandler) archiveVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveTreasury(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
