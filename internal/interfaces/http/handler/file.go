package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// DefaultMaxUploadSize is the upload limit when none is configured (10 MiB)
const DefaultMaxUploadSize int64 = 10 << 20

const maxCategoryLength = 64

// FileHandler handles document upload, metadata and download endpoints
type FileHandler struct {
	BaseHandler
	fileService   *tourismapp.FileService
	maxUploadSize int64
}

// NewFileHandler creates a new FileHandler. A non-positive maxUploadSize
// uses DefaultMaxUploadSize.
func NewFileHandler(fileService *tourismapp.FileService, maxUploadSize int64) *FileHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &FileHandler{fileService: fileService, maxUploadSize: maxUploadSize}
}

// List handles GET /files
func (h *FileHandler) List(c *gin.Context) {
	h.Success(c, h.fileService.List(c.Request.Context()))
}

// GetByID handles GET /files/:id
func (h *FileHandler) GetByID(c *gin.Context) {
	file, err := h.fileService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, file)
}

// Upload handles POST /files/upload: multipart field "file" plus an optional
// "category" form value
func (h *FileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			h.RequestTooLarge(c, h.tooLargeMessage())
		case errors.Is(err, http.ErrMissingFile):
			h.BadRequest(c, "No file uploaded")
		default:
			h.BadRequest(c, "Invalid multipart upload")
		}
		return
	}
	if fh.Size > h.maxUploadSize {
		h.RequestTooLarge(c, h.tooLargeMessage())
		return
	}

	category := c.PostForm("category")
	if len(category) > maxCategoryLength {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "category must be at most 64 characters")
		return
	}

	body, err := fh.Open()
	if err != nil {
		h.HandleError(c, fmt.Errorf("open multipart file: %w", err))
		return
	}
	defer body.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := h.fileService.Upload(c.Request.Context(), tourismapp.UploadInput{
		OriginalName: fh.Filename,
		ContentType:  contentType,
		Size:         fh.Size,
		Category:     category,
		Body:         body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, file)
}

func (h *FileHandler) tooLargeMessage() string {
	return "File exceeds the " + strconv.FormatInt(h.maxUploadSize>>20, 10) + " MiB upload limit"
}

// Update handles PUT /files/:id
func (h *FileHandler) Update(c *gin.Context) {
	var req dto.UpdateFileRequest
	if !h.BindJSON(c, &req) {
		return
	}
	file, err := h.fileService.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, file)
}

// Delete handles DELETE /files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.fileService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "File deleted successfully")
}

// Download handles GET /files/:id/download, streaming the stored content
// under its original name
func (h *FileHandler) Download(c *gin.Context) {
	file, body, err := h.fileService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.DataFromReader(http.StatusOK, file.FileSize, file.FileType, body, map[string]string{
		"Content-Disposition": disposition,
	})
}
