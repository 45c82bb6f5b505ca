package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/screenroom/backend/internal/middleware"
	"github.com/screenroom/backend/internal/service"
	"github.com/screenroom/backend/internal/types"
)

type UploadHandler struct {
	uploadService service.IUploadService
	authService   service.IAuthService
	validator     middleware.TokenValidator
}

func NewUploadHandler(uploadService service.IUploadService, authService service.IAuthService, validator middleware.TokenValidator) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		authService:   authService,
		validator:     validator,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", middleware.AuthMiddleware(h.validator), h.PresignUpload)
}

// PresignUpload validates the requested file and returns a one-hour
// signed URL for a direct client upload, never proxying the bytes.
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if h.uploadService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured"})
		return
	}

	var req types.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploader, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.uploadService.PresignUpload(c.Request.Context(), &req, uploader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
