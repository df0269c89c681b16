package handler

import (
	"log/slog"

	"github.com/busshop-tracker/internal/domain/entry"
	"github.com/busshop-tracker/internal/server/service"
	"github.com/gin-gonic/gin"
)

// EntryHandler handles HTTP requests for work-order entries
type EntryHandler struct {
	entryService service.EntryService
	logger       *slog.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(logger *slog.Logger, entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// List returns entries visible to the caller, newest first. Admins see
// everything; mechanics only their own records. The remaining query
// parameters narrow the result further.
func (h *EntryHandler) List(c *gin.Context) {
	actor := entry.Actor{
		Role: c.Query("role"),
		Name: c.Query("name"),
	}
	criteria := entry.Criteria{
		From:        c.Query("from"),
		To:          c.Query("to"),
		Bus:         c.Query("bus"),
		Mechanic:    c.Query("mech"),
		ServiceType: c.Query("type"),
	}

	entries, err := h.entryService.List(c.Request.Context(), actor, criteria)
	if err != nil {
		h.logger.Error("Failed to list entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, entries)
}

// Upsert creates or fully replaces a work order. Derived fields sent by the
// caller are discarded and recomputed server-side.
func (h *EntryHandler) Upsert(c *gin.Context) {
	var req UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.entryService.Upsert(c.Request.Context(), req.toEntry())
	if err != nil {
		h.logger.Error("Failed to save entry", "id", req.ID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, UpsertEntryResponse{ID: saved.ID, Saved: saved})
}

// Delete removes a work order by id. Deleting an absent id succeeds.
func (h *EntryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete entry", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, DeleteEntryResponse{OK: true})
}
