package handlers

import (
	"errors"
	"net/http"
	"strings"

	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/dto"
	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type RegisterHandler struct {
	service *profilesvc.Service
}

func NewRegisterHandler(service *profilesvc.Service) *RegisterHandler {
	return &RegisterHandler{service: service}
}

func (h *RegisterHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeStoreUnavailable(w, "profile store is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TGID <= 0 || strings.TrimSpace(req.FirstName) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "tg_id and first_name are required")
		return
	}

	profile, err := h.service.Register(r.Context(), req.TGID, req.Username, req.FirstName)
	if err != nil {
		switch {
		case errors.Is(err, profilesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid registration request")
		default:
			writeStoreUnavailable(w, "failed to register profile")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapProfile(profile))
}
