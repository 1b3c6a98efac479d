package handlers

import (
	"errors"
	"net/http"

	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/dto"
	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeStoreUnavailable(w, "profile store is unavailable")
		return
	}

	userID, ok := userIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleProfileError(w, err, "failed to load profile")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapProfile(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeStoreUnavailable(w, "profile store is unavailable")
		return
	}

	userID, ok := userIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	profile, err := h.service.UpdateAttributes(r.Context(), userID, profilesvc.AttributesInput{
		Bio:       req.Bio,
		Goal:      req.Goal,
		HeightCM:  req.HeightCM,
		WeightKG:  req.WeightKG,
		Interests: req.Interests,
	})
	if err != nil {
		handleProfileError(w, err, "failed to update profile")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapProfile(profile))
}

func handleProfileError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile request")
	case errors.Is(err, profilesvc.ErrNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeStoreUnavailable(w, fallback)
	}
}
