package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// quoteHandler handles price quotes and purchase quotes.
type quoteHandler struct {
	engine *engine.Engine
}

func newQuoteHandler(e *engine.Engine) *quoteHandler {
	return &quoteHandler{engine: e}
}

// registerQuoteRoutes registers routes for both quote sides.
func registerQuoteRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newQuoteHandler(e)

	priceQuotes := rg.Group("/price-quotes")
	{
		priceQuotes.POST("", h.createPriceQuote)
		priceQuotes.GET("", h.listPriceQuotes)
		priceQuotes.GET("/:id", h.getPriceQuote)
		priceQuotes.POST("/:id/convert", h.convertPriceQuote)
		priceQuotes.POST("/:id/cancel", h.cancelPriceQuote)
	}

	purchaseQuotes := rg.Group("/purchase-quotes")
	{
		purchaseQuotes.POST("", h.createPurchaseQuote)
		purchaseQuotes.GET("", h.listPurchaseQuotes)
		purchaseQuotes.GET("/:id", h.getPurchaseQuote)
		purchaseQuotes.POST("/:id/convert", h.convertPurchaseQuote)
		purchaseQuotes.POST("/:id/cancel", h.cancelPurchaseQuote)
	}
}

// createPriceQuote godoc
// @Summary Create a price quote
// @Description Stores a sales draft; no stock, balance or ledger movement
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.CreateQuoteRequest true "Quote content"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /price-quotes [post]
func (h *quoteHandler) createPriceQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateQuoteRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	q, err := h.engine.CreatePriceQuote(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPriceQuoteResponse(q))
}

// listPriceQuotes godoc
// @Summary List price quotes
// @Tags quotes
// @Produce  json
// @Success 200 {array} dto.QuoteResponse
// @Security BearerAuth
// @Router /price-quotes [get]
func (h *quoteHandler) listPriceQuotes(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToPriceQuoteResponses(st.PriceQuotes))
}

// getPriceQuote godoc
// @Summary Get a price quote
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /price-quotes/{id} [get]
func (h *quoteHandler) getPriceQuote(c *gin.Context) {
	st := h.engine.Snapshot()
	q := st.PriceQuoteByID(c.Param("id"))
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Price quote not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToPriceQuoteResponse(q))
}

// convertPriceQuote godoc
// @Summary Convert a price quote into a sale
// @Description Runs the full sale posting flow with the quote's recorded lines
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 201 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote already converted/cancelled or insufficient stock"
// @Security BearerAuth
// @Router /price-quotes/{id}/convert [post]
func (h *quoteHandler) convertPriceQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	sale, err := h.engine.ConvertPriceQuote(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// cancelPriceQuote godoc
// @Summary Cancel a price quote
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote already converted or cancelled"
// @Security BearerAuth
// @Router /price-quotes/{id}/cancel [post]
func (h *quoteHandler) cancelPriceQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.CancelPriceQuote(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createPurchaseQuote godoc
// @Summary Create a purchase quote
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.CreateQuoteRequest true "Quote content"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /purchase-quotes [post]
func (h *quoteHandler) createPurchaseQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateQuoteRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	q, err := h.engine.CreatePurchaseQuote(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseQuoteResponse(q))
}

// listPurchaseQuotes godoc
// @Summary List purchase quotes
// @Tags quotes
// @Produce  json
// @Success 200 {array} dto.QuoteResponse
// @Security BearerAuth
// @Router /purchase-quotes [get]
func (h *quoteHandler) listPurchaseQuotes(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToPurchaseQuoteResponses(st.PurchQuotes))
}

// getPurchaseQuote godoc
// @Summary Get a purchase quote
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Security BearerAuth
// @Router /purchase-quotes/{id} [get]
func (h *quoteHandler) getPurchaseQuote(c *gin.Context) {
	st := h.engine.Snapshot()
	q := st.PurchaseQuoteByID(c.Param("id"))
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase quote not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseQuoteResponse(q))
}

// convertPurchaseQuote godoc
// @Summary Convert a purchase quote into a purchase
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote already converted or cancelled"
// @Security BearerAuth
// @Router /purchase-quotes/{id}/convert [post]
func (h *quoteHandler) convertPurchaseQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	p, err := h.engine.ConvertPurchaseQuote(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(p))
}

// cancelPurchaseQuote godoc
// @Summary Cancel a purchase quote
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote already converted or cancelled"
// @Security BearerAuth
// @Router /purchase-quotes/{id}/cancel [post]
func (h *quoteHandler) cancelPurchaseQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.CancelPurchaseQuote(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
