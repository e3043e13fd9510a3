package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// saleHandler handles sales invoices.
type saleHandler struct {
	engine *engine.Engine
}

func newSaleHandler(e *engine.Engine) *saleHandler {
	return &saleHandler{engine: e}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newSaleHandler(e)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.PUT("/:id", h.updateSale)
		sales.POST("/:id/archive", h.archiveSale)
	}
}

// createSale godoc
// @Summary Create a sales invoice
// @Description Posts a sale: stock out, customer balance up on credit, balanced journal entry
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Invoice content"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	sale, err := h.engine.CreateSale(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales invoices
// @Tags sales
// @Produce  json
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToSaleResponses(st.Sales))
}

// getSale godoc
// @Summary Get a sales invoice
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	st := h.engine.Snapshot()
	sale := st.SaleByID(c.Param("id"))
	if sale == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Replace a sales invoice
// @Description Archives the original journal entry and posts a fresh one with the new content
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   sale body dto.CreateSaleRequest true "New invoice content"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale archived or insufficient stock"
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	sale, err := h.engine.UpdateSale(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// archiveSale godoc
// @Summary Cancel a sales invoice
// @Description Restores stock and customer balance, archives the journal entry
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale already archived"
// @Security BearerAuth
// @Router /sales/{id}/archive [post]
func (h *saleHandler) archiveSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveSale(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
