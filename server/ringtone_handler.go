package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"SadaaFM/cache"
	"SadaaFM/logger"
	"SadaaFM/model"
	"SadaaFM/storage"

	"github.com/gorilla/mux"
	"github.com/minio/minio-go/v7"
)

// UploadRingtoneHandler stores an uploaded ringtone clip in MinIO and
// points the record's ringtone field at the served URL. The clip is
// stored as-is; no audio processing happens server-side.
func (h *APIHandler) UploadRingtoneHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ins, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("failed to look up instrumental for ringtone upload",
			logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to get instrumental", http.StatusInternalServerError)
		return
	}
	if ins == nil {
		http.Error(w, "Instrumental not found", http.StatusNotFound)
		return
	}

	if storage.GetMinioClient() == nil {
		http.Error(w, "Ringtone storage not available", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing ringtone file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp3"
	}
	objectName := fmt.Sprintf("ringtones/%s%s", id, ext)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	err = storage.PutRingtone(ctx, h.cfg.MinioBucket, objectName, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("ringtone upload failed", logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to store ringtone", http.StatusInternalServerError)
		return
	}

	ringtoneURL := fmt.Sprintf("%s/ringtones/%s%s", strings.TrimRight(h.cfg.PublicBaseURL, "/"), id, ext)
	updated, err := h.repo.Update(r.Context(), id, &model.UpdateInstrumentalRequest{Ringtone: &ringtoneURL})
	if err != nil || updated == nil {
		logger.Error("failed to set ringtone URL after upload",
			logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to update instrumental", http.StatusInternalServerError)
		return
	}

	cache.InvalidateCatalog(r.Context())
	logger.Info("ringtone uploaded",
		logger.String("id", id),
		logger.String("object", objectName),
		logger.Int64("size", header.Size),
	)
	writeJSON(w, http.StatusOK, updated)
}

// ServeRingtoneHandler streams stored ringtone objects out of MinIO.
func (h *APIHandler) ServeRingtoneHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/ringtones/")
	if name == "" || strings.Contains(name, "..") {
		http.Error(w, "Invalid ringtone path", http.StatusBadRequest)
		return
	}
	objectPath := "ringtones/" + name

	client := storage.GetMinioClient()
	if client == nil {
		http.Error(w, "Ringtone storage not available", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	object, err := client.GetObject(ctx, h.cfg.MinioBucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		http.Error(w, "Ringtone not found", http.StatusNotFound)
		return
	}
	defer object.Close()

	// Stat forces the lookup so missing objects 404 instead of breaking
	// mid-stream.
	if _, err := object.Stat(); err != nil {
		http.Error(w, "Ringtone not found", http.StatusNotFound)
		return
	}

	var contentType string
	switch {
	case strings.HasSuffix(objectPath, ".mp3"):
		contentType = "audio/mpeg"
	case strings.HasSuffix(objectPath, ".m4r"), strings.HasSuffix(objectPath, ".m4a"):
		contentType = "audio/mp4"
	default:
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if _, err = io.Copy(w, object); err != nil {
		logger.Error("error serving ringtone from MinIO", logger.ErrorField(err))
	}
}
