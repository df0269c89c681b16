package handler

import (
	"errors"
	"log/slog"

	"github.com/busshop-tracker/internal/domain/user"
	"github.com/busshop-tracker/internal/server/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for login
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login verifies a name/PIN pair. The first login of a user with an
// unclaimed PIN claims the supplied one.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid login request", "error", err)
		RespondBadRequest(c, "Name and a 4-digit PIN are required")
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		var notFoundErr user.ErrUserNotFound
		if errors.As(err, &notFoundErr) {
			RespondNotFound(c, "Unknown user")
			return
		}
		var wrongPINErr user.ErrWrongPIN
		if errors.As(err, &wrongPINErr) {
			h.logger.Warn("Login with wrong PIN", "name", req.Name)
			RespondUnauthorized(c, "Wrong PIN")
			return
		}
		h.logger.Error("Failed to log in", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapUserToResponse(u))
}
