package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// itemHandler handles inventory item master data.
type itemHandler struct {
	engine *engine.Engine
}

func newItemHandler(e *engine.Engine) *itemHandler {
	return &itemHandler{engine: e}
}

// registerItemRoutes registers routes related to items.
func registerItemRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newItemHandler(e)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:id", h.getItem)
		items.PUT("/:id", h.updateItem)
		items.POST("/:id/archive", h.archiveItem)
		items.POST("/:id/unarchive", h.unarchiveItem)
		items.POST("/:id/barcode", h.assignBarcode)
	}
}

// createItem godoc
// @Summary Create an inventory item
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Item name already exists"
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	item, err := h.engine.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List inventory items
// @Tags items
// @Produce  json
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToItemResponses(st.Items))
}

// getItem godoc
// @Summary Get an inventory item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	st := h.engine.Snapshot()
	item := st.ItemByID(c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update item master data
// @Description Stock never changes here; it only moves through documents
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *itemHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	item, err := h.engine.UpdateItem(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// archiveItem godoc
// @Summary Archive an item
// @Description Only items with zero stock can be archived
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item still has stock"
// @Security BearerAuth
// @Router /items/{id}/archive [post]
func (h *itemHandler) archiveItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveItem(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unarchiveItem godoc
// @Summary Restore an archived item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "Restored"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item is not archived"
// @Security BearerAuth
// @Router /items/{id}/unarchive [post]
func (h *itemHandler) unarchiveItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.UnarchiveItem(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// assignBarcode godoc
// @Summary Assign a generated barcode
// @Description Mints the next free generated barcode for an item without one
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item already has a barcode"
// @Security BearerAuth
// @Router /items/{id}/barcode [post]
func (h *itemHandler) assignBarcode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	item, err := h.engine.AssignBarcode(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}
