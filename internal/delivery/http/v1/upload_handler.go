package v1

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"stylefeed-backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// imageStore persists encoded image bytes and returns a public URL.
type imageStore interface {
	UploadImage(ctx context.Context, data []byte, baseName, contentType string) (string, error)
}

// UploadHandler accepts image uploads (brand logos, product images),
// re-encodes them as WebP and stores them on R2.
type UploadHandler struct {
	storage       imageStore
	maxUploadSize int64
}

func NewUploadHandler(s imageStore, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "invalid file type, allowed: JPEG, PNG, WebP, GIF")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "invalid file extension")
		return
	}

	data, encodedType, err := utils.ProcessImage(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file is not a decodable image")
		return
	}

	url, err := h.storage.UploadImage(r.Context(), data, header.Filename, encodedType)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
