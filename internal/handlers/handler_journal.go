package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// journalHandler handles the journal listing and manual vouchers.
type journalHandler struct {
	engine *engine.Engine
}

func newJournalHandler(e *engine.Engine) *journalHandler {
	return &journalHandler{engine: e}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newJournalHandler(e)

	journal := rg.Group("/journal")
	{
		journal.GET("", h.listEntries)
		journal.GET("/:id", h.getEntry)
		journal.POST("", h.createManual)
		journal.POST("/:id/archive", h.archiveManual)
		journal.POST("/:id/unarchive", h.unarchiveManual)
	}
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns every journal entry, archived ones included
// @Tags journal
// @Produce  json
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /journal [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(st.Journal))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	st := h.engine.Snapshot()
	entry := st.JournalByID(c.Param("id"))
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// createManual godoc
// @Summary Post a manual journal voucher
// @Description Posts a balanced manual journal entry against account codes
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateManualJournalRequest true "Voucher lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid voucher"
// @Security BearerAuth
// @Router /journal [post]
func (h *journalHandler) createManual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateManualJournalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	entry, err := h.engine.CreateManualJournal(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// archiveManual godoc
// @Summary Archive a manual journal voucher
// @Description Reverses the voucher's effect on balances; document entries must be archived through their document
// @Tags journal
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry belongs to a document or is already archived"
// @Security BearerAuth
// @Router /journal/{id}/archive [post]
func (h *journalHandler) archiveManual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.ArchiveManualJournal(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unarchiveManual godoc
// @Summary Restore an archived manual journal voucher
// @Tags journal
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 204 "Restored"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not archived or belongs to a document"
// @Security BearerAuth
// @Router /journal/{id}/unarchive [post]
func (h *journalHandler) unarchiveManual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	if err := h.engine.UnarchiveManualJournal(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
