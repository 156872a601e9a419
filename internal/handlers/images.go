package handlers

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/groupshare/backend/internal/config"
	"github.com/groupshare/backend/pkg/utils"
)

// ImageSink is the slice of the object store the upload handler needs.
// Satisfied by storage.MinIOClient; tests substitute an in-memory fake.
type ImageSink interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	PublicURL(objectName string) string
}

type ImagesHandler struct {
	Storage  ImageSink
	MaxBytes int64
}

func NewImagesHandler(storage ImageSink, cfg config.UploadConfig) *ImagesHandler {
	return &ImagesHandler{Storage: storage, MaxBytes: cfg.MaxBytes}
}

func (h *ImagesHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "image is required")
	}

	if fileHeader.Size > h.MaxBytes {
		return utils.Error(c, fiber.StatusBadRequest, "image exceeds size limit")
	}

	filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
	if filename == "" || filename == "." {
		return utils.Error(c, fiber.StatusBadRequest, "invalid filename")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded image")
	}
	defer stream.Close()

	objectName := fmt.Sprintf("images/%s/%s", uuid.New().String(), filename)
	if err := h.Storage.Upload(c.UserContext(), objectName, stream, fileHeader.Size, contentType); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing image")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"path": h.Storage.PublicURL(objectName),
	})
}
