package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
)

const (
	maxVideoSize = 500 * 1024 * 1024
	maxImageSize = 10 * 1024 * 1024

	uploadURLExpiry = time.Hour
)

var allowedUploadTypes = map[string]bool{
	"video/mp4":       true,
	"video/mov":       true,
	"video/avi":       true,
	"video/quicktime": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
}

// Presigner issues time-limited upload URLs backed by object storage.
type Presigner interface {
	PresignPutObject(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	ObjectPublicURL(objectKey string) string
}

// UploadService validates upload requests and hands out presigned URLs
// for direct client-to-storage uploads.
type UploadService struct {
	presigner Presigner
}

func NewUploadService(presigner Presigner) *UploadService {
	return &UploadService{presigner: presigner}
}

// PresignUpload validates the file type and size and returns a signed
// URL valid for one hour, plus the key and the public URL the object
// will be served from.
func (s *UploadService) PresignUpload(ctx context.Context, req *types.UploadRequest, uploader *models.User) (*types.UploadResponse, error) {
	if !allowedUploadTypes[req.FileType] {
		return nil, validationError("file type %q not allowed", req.FileType)
	}

	maxSize := int64(maxImageSize)
	if strings.HasPrefix(req.FileType, "video/") {
		maxSize = maxVideoSize
	}
	if req.FileSize > maxSize {
		return nil, validationError("file size %d exceeds limit %d for %s", req.FileSize, maxSize, req.FileType)
	}

	ext := strings.TrimPrefix(path.Ext(req.FileName), ".")
	if ext == "" {
		return nil, validationError("file name %q has no extension", req.FileName)
	}
	key := fmt.Sprintf("uploads/%s/%s.%s", uploader.Email, uuid.New(), ext)

	uploadURL, err := s.presigner.PresignPutObject(ctx, key, req.FileType, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamStorage, err)
	}

	return &types.UploadResponse{
		UploadURL: uploadURL,
		Key:       key,
		PublicURL: s.presigner.ObjectPublicURL(key),
	}, nil
}
