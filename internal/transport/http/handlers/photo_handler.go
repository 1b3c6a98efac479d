package handlers

import (
	"errors"
	"net/http"

	mediasvc "github.com/MadeInMinsk96/loveblr/internal/services/media"
	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/dto"
	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type PhotoHandler struct {
	media        *mediasvc.Service
	profiles     *profilesvc.Service
	maxBodyBytes int64
}

func NewPhotoHandler(media *mediasvc.Service, profiles *profilesvc.Service, maxBodyBytes int64) *PhotoHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 10 << 20
	}
	return &PhotoHandler{media: media, profiles: profiles, maxBodyBytes: maxBodyBytes}
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeStoreUnavailable(w, "profile store is unavailable")
		return
	}
	if h.media == nil {
		writeUploadFailed(w, "photo storage is unavailable")
		return
	}

	userID, ok := userIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	if _, err := h.profiles.Get(r.Context(), userID); err != nil {
		handleProfileError(w, err, "failed to load profile")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "photo is required")
		return
	}
	defer file.Close()

	if header == nil || header.Size <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "photo is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	photoURL, err := h.media.UploadPhoto(r.Context(), userID, header.Filename, contentType, file, header.Size)
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid photo upload")
			return
		}
		writeUploadFailed(w, "failed to store photo")
		return
	}

	if _, err := h.profiles.SetPhoto(r.Context(), userID, photoURL); err != nil {
		handleProfileError(w, err, "failed to save photo reference")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PhotoResponse{PhotoURL: photoURL})
}
