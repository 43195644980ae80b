package images

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/storage"
)

const (
	msgNotConfigured = "image storage is not configured"
	msgBadType       = "invalid file type: only jpg, png, webp and gif images are allowed"
	msgTooLarge      = "file size exceeds 5MB limit"
)

// Store is the object storage the handler uploads images to.
type Store interface {
	UploadImage(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error)
	GeneratePresignedUploadURL(ctx context.Context, key, contentType string) (string, error)
	PublicObjectURL(key string) string
	PresignExpire() time.Duration
}

// UploadURLRequest is the body for POST /images/upload-url.
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// Handler serves image uploads used for party and organization img_url values.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates an images handler. A nil store makes every endpoint answer 503.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) key(c *gin.Context, contentType, filename string) string {
	userID, _ := middleware.UserID(c)
	return storage.ImageKey(strconv.FormatInt(userID, 10), uuid.NewString()+storage.ExtensionFor(contentType, filename))
}

func resolveContentType(contentType, filename string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := storage.AllowedImageTypes[contentType]; ok {
		return contentType
	}
	return storage.ContentTypeForFilename(filename)
}

// Upload handles POST /images (multipart form field "file").
func (h *Handler) Upload(c *gin.Context) {
	if h.store == nil {
		response.ServiceUnavailable(c, msgNotConfigured)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file (form field: file)")
		return
	}
	if file.Size > storage.MaxImageFileSize {
		response.BadRequest(c, msgTooLarge)
		return
	}
	headerType := file.Header.Get("Content-Type")
	if !storage.ValidateImageFileType(headerType, file.Filename) {
		response.BadRequest(c, msgBadType)
		return
	}
	contentType := resolveContentType(headerType, file.Filename)
	key := h.key(c, contentType, file.Filename)

	rc, err := file.Open()
	if err != nil {
		h.logger.Error("open uploaded file", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	defer rc.Close()

	url, err := h.store.UploadImage(c.Request.Context(), key, contentType, rc, file.Size)
	if err != nil {
		h.logger.Error("upload image", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to upload image")
		return
	}
	response.Created(c, gin.H{
		"key":          key,
		"img_url":      url,
		"content_type": contentType,
		"file_size":    file.Size,
	}, "", "")
}

// UploadURL handles POST /images/upload-url: a pre-signed PUT URL for direct browser upload.
func (h *Handler) UploadURL(c *gin.Context) {
	if h.store == nil {
		response.ServiceUnavailable(c, msgNotConfigured)
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.FileSize > storage.MaxImageFileSize {
		response.BadRequest(c, msgTooLarge)
		return
	}
	if !storage.ValidateImageFileType(req.ContentType, req.Filename) {
		response.BadRequest(c, msgBadType)
		return
	}
	contentType := resolveContentType(req.ContentType, req.Filename)
	key := h.key(c, contentType, req.Filename)

	url, err := h.store.GeneratePresignedUploadURL(c.Request.Context(), key, contentType)
	if err != nil {
		h.logger.Error("presign image upload", zap.String("key", key), zap.Error(err))
		response.Internal(c, "image upload unavailable")
		return
	}
	response.OK(c, gin.H{
		"upload_url":   url,
		"img_url":      h.store.PublicObjectURL(key),
		"key":          key,
		"content_type": contentType,
		"expires_in":   int(h.store.PresignExpire().Seconds()),
	})
}
