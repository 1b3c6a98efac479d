package handlers

import (
	"errors"
	"net/http"

	candidatesvc "github.com/MadeInMinsk96/loveblr/internal/services/candidates"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/dto"
	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type CandidateHandler struct {
	service *candidatesvc.Service
}

func NewCandidateHandler(service *candidatesvc.Service) *CandidateHandler {
	return &CandidateHandler{service: service}
}

func (h *CandidateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeStoreUnavailable(w, "candidate store is unavailable")
		return
	}

	viewerID, ok := userIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	candidate, err := h.service.Pick(r.Context(), viewerID)
	if err != nil {
		switch {
		case errors.Is(err, candidatesvc.ErrNoCandidates):
			httperrors.Write(w, http.StatusOK, dto.CandidateResponse{Candidate: nil})
		case errors.Is(err, candidatesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		case errors.Is(err, candidatesvc.ErrViewerNotFound):
			writeNotFound(w, "PROFILE_NOT_FOUND", "viewer profile not found")
		default:
			writeStoreUnavailable(w, "failed to pick candidate")
		}
		return
	}

	payload := dto.MapProfile(candidate)
	httperrors.Write(w, http.StatusOK, dto.CandidateResponse{Candidate: &payload})
}
