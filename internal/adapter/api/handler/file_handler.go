package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"unisell/internal/domain/service"
	"unisell/internal/infrastructure/storage"
	"unisell/pkg/errors"
	"unisell/pkg/logger"
	"unisell/pkg/response"
)

const maxUploadSize = 5 * 1024 * 1024

var uploadFolders = map[string]bool{
	"items":    true,
	"profiles": true,
}

// FileHandler stores item photos and profile images. The returned URL is what
// clients then send as imageUrl.
type FileHandler struct {
	fileService service.FileUploadService
}

var fileHandler *FileHandler

func NewFileHandler(fileService service.FileUploadService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// SetupFileHandler accepts a nil service when no object store is configured.
func SetupFileHandler(fileService service.FileUploadService) {
	fileHandler = NewFileHandler(fileService)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	if h.fileService == nil {
		return response.Error(c, errors.New("STORAGE_UNAVAILABLE", "File uploads are not configured", http.StatusServiceUnavailable, nil))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}
	if file.Size > maxUploadSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxUploadSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !storage.IsImage(contentType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := strings.ToLower(strings.TrimSpace(c.FormValue("folder")))
	if folder == "" {
		folder = "items"
	}
	if !uploadFolders[folder] {
		return response.Error(c, errors.Validation("folder", "folder must be one of: items profiles"))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	url, err := h.fileService.UploadFile(c.Request().Context(), src, contentType, folder)
	if err != nil {
		logger.Error("upload to %s failed: %v", folder, err)
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	logger.Debug("stored %s upload (%d bytes) at %s", contentType, file.Size, url)
	return response.Created(c, map[string]string{"url": url})
}
