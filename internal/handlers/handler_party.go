package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// partyHandler handles customers and suppliers.
type partyHandler struct {
	engine *engine.Engine
}

func newPartyHandler(e *engine.Engine) *partyHandler {
	return &partyHandler{engine: e}
}

// registerPartyRoutes registers routes for both party sides.
func registerPartyRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newPartyHandler(e)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.POST("/:id/archive", h.archiveCustomer)
		customers.POST("/:id/unarchive", h.unarchiveCustomer)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.PUT("/:id", h.updateSupplier)
		suppliers.POST("/:id/archive", h.archiveSupplier)
		suppliers.POST("/:id/unarchive", h.unarchiveSupplier)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreatePartyRequest true "Customer details"
// @Success 201 {object} dto.PartyResponse
// @Failure 409 {object} map[string]string "Customer name already exists"
// @Security BearerAuth
// @Router /customers [post]
func (h *partyHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.engine.CreateCustomer(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags parties
// @Produce  json
// @Success 200 {array} dto.PartyResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *partyHandler) listCustomers(c *gin.Context) {
	st := h.engine.Snapshot()
	out := make([]dto.PartyResponse, len(st.Customers))
	for i := range st.Customers {
		out[i] = dto.ToCustomerResponse(&st.Customers[i])
	}
	c.JSON(http.StatusOK, out)
}

// getCustomer godoc
// @Summary Get a customer
// @Tags parties
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *partyHandler) getCustomer(c *gin.Context) {
	st := h.engine.Snapshot()
	customer := st.CustomerByID(c.Param("id"))
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update customer master data
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   id path string true "Customer ID"
// @Param   customer body dto.UpdatePartyRequest true "Fields to change"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *partyHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.engine.UpdateCustomer(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// archiveCustomer godoc
// @Summary Archive a customer
// @Description Only customers with a zero balance can be archived
// @Tags parties
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Customer has an outstanding balance"
// @Security BearerAuth
// @Router /customers/{id}/archive [post]
func (h *partyHandler) archiveCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveCustomer(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unarchiveCustomer godoc
// @Summary Restore an archived customer
// @Tags parties
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 204 "Restored"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id}/unarchive [post]
func (h *partyHandler) unarchiveCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.UnarchiveCustomer(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createSupplier godoc
// @Summary Create a supplier
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   supplier body dto.CreatePartyRequest true "Supplier details"
// @Success 201 {object} dto.PartyResponse
// @Failure 409 {object} map[string]string "Supplier name already exists"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *partyHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.engine.CreateSupplier(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags parties
// @Produce  json
// @Success 200 {array} dto.PartyResponse
// @Security BearerAuth
// @Router /suppliers [get]
func (h *partyHandler) listSuppliers(c *gin.Context) {
	st := h.engine.Snapshot()
	out := make([]dto.PartyResponse, len(st.Suppliers))
	for i := range st.Suppliers {
		out[i] = dto.ToSupplierResponse(&st.Suppliers[i])
	}
	c.JSON(http.StatusOK, out)
}

// getSupplier godoc
// @Summary Get a supplier
// @Tags parties
// @Produce  json
// @Param   id path string true "Supplier ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *partyHandler) getSupplier(c *gin.Context) {
	st := h.engine.Snapshot()
	supplier := st.SupplierByID(c.Param("id"))
	if supplier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// updateSupplier godoc
// @Summary Update supplier master data
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   id path string true "Supplier ID"
// @Param   supplier body dto.UpdatePartyRequest true "Fields to change"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *partyHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.engine.UpdateSupplier(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// archiveSupplier godoc
// @Summary Archive a supplier
// @Description Only suppliers with a zero balance can be archived
// @Tags parties
// @Produce  json
// @Param   id path string true "Supplier ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Failure 409 {object} map[string]string "Supplier has an outstanding balance"
// @Security BearerAuth
// @Router /suppliers/{id}/archive [post]
func (h *partyHandler) archiveSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveSupplier(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unarchiveSupplier godoc
// @Summary Restore an archived supplier
// @Tags parties
// @Produce  json
// @Param   id path string true "Supplier ID"
// @Success 204 "Restored"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id}/unarchive [post]
func (h *partyHandler) unarchiveSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.UnarchiveSupplier(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
