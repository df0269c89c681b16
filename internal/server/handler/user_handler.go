package handler

import (
	"errors"
	"log/slog"

	"github.com/busshop-tracker/internal/domain/user"
	"github.com/busshop-tracker/internal/server/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for the user directory
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(logger *slog.Logger, userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List returns the full user directory ordered by name
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}
	RespondOK(c, responses)
}

// Create adds a user to the directory, rejecting duplicate names
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.userService.CreateUser(c.Request.Context(), req.Name, req.Role)
	if err != nil {
		var duplicateErr user.ErrDuplicateName
		if errors.As(err, &duplicateErr) {
			h.logger.Warn("Attempt to create user with duplicate name", "name", duplicateErr.Name)
			RespondConflict(c, "A user with this name already exists")
			return
		}
		h.logger.Error("Failed to create user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapUserToResponse(u))
}

// Rename changes a user's name, rejecting names already taken
func (h *UserHandler) Rename(c *gin.Context) {
	var req RenameUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.userService.RenameUser(c.Request.Context(), req.OldName, req.NewName); err != nil {
		var duplicateErr user.ErrDuplicateName
		if errors.As(err, &duplicateErr) {
			RespondConflict(c, "A user with this name already exists")
			return
		}
		h.logger.Error("Failed to rename user", "oldName", req.OldName, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"ok": true})
}

// ResetPIN clears a user's PIN so the next login claims a fresh one
func (h *UserHandler) ResetPIN(c *gin.Context) {
	var req UserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.userService.ResetPIN(c.Request.Context(), req.Name); err != nil {
		h.logger.Error("Failed to reset PIN", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"ok": true})
}

// Delete removes a user by name; deleting an absent user succeeds
func (h *UserHandler) Delete(c *gin.Context) {
	var req UserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), req.Name); err != nil {
		h.logger.Error("Failed to delete user", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"ok": true})
}

// mapUserToResponse maps a user entity to a user response DTO
func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:     u.ID.String(),
		Name:   u.Name,
		Role:   u.Role,
		PINSet: u.PINSet(),
	}
}
