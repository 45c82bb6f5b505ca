package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/middleware"
	"github.com/screenroom/backend/internal/service"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstreamStorage):
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUserID extracts the authenticated user id placed in the gin
// context by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// optionalUserID resolves the requester from a bearer token on routes
// that serve unauthenticated requests too. Missing, malformed or
// invalid tokens all mean an anonymous requester.
func optionalUserID(c *gin.Context, validator middleware.TokenValidator) *uuid.UUID {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}
	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return &claims.UserID
}
