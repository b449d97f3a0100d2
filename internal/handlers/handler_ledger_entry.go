package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerEntryHandler handles HTTP requests for income and expense entries.
type ledgerEntryHandler struct {
	entryService portssvc.LedgerEntrySvcFacade
}

func newLedgerEntryHandler(entryService portssvc.LedgerEntrySvcFacade) *ledgerEntryHandler {
	return &ledgerEntryHandler{entryService: entryService}
}

// RegisterEntryRoutes registers the routes addressing a single entry.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.LedgerEntrySvcFacade, mutating ...gin.HandlerFunc) {
	h := newLedgerEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.PUT("/:entryID", chain(mutating, h.updateEntry)...)
		entries.DELETE("/:entryID", chain(mutating, h.deleteEntry)...)
	}
}

// addEntry godoc
// @Summary Record income or expense
// @Description Records an entry against an open session. Classification defaults to CASH for income and OTHER for expenses.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   entry body dto.AddEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is closed"
// @Failure 500 {object} dto.ErrorResponse "Failed to record entry"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/entries [post]
func (h *ledgerEntryHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "AddEntry", err)
		return
	}

	entry, err := h.entryService.AddEntry(c.Request.Context(), sessionID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to record entry")
		return
	}

	logger.Debug("Entry recorded via API", slog.String("entry_id", entry.EntryID), slog.String("session_id", sessionID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List the entries of a session
// @Description Lists entries in insertion order with computed totals, optionally filtered by kind
// @Tags entries
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   kind query string false "INCOME or EXPENSE"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid kind"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list entries"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/entries [get]
func (h *ledgerEntryHandler) listEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "ListEntries", err)
		return
	}

	list, err := h.entryService.ListEntries(c.Request.Context(), c.Param("sessionID"), params.Kind, actor)
	if err != nil {
		respondWithError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(list))
}

// updateEntry godoc
// @Summary Edit an entry
// @Description Edits amount, description, classification or justification of an entry in an open session.
// @Description Only the recording employee or an administrator may edit.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Session is closed"
// @Failure 500 {object} dto.ErrorResponse "Failed to update entry"
// @Security BearerAuth
// @Router /entries/{entryID} [put]
func (h *ledgerEntryHandler) updateEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateEntry", err)
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an entry
// @Description Deletes an entry from an open session. Only the recording employee or an administrator may delete.
// @Tags entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Session is closed"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete entry"
// @Security BearerAuth
// @Router /entries/{entryID} [delete]
func (h *ledgerEntryHandler) deleteEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), c.Param("entryID"), actor); err != nil {
		respondWithError(c, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}
