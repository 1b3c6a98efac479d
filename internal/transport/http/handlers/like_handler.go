package handlers

import (
	"errors"
	"net/http"

	likessvc "github.com/MadeInMinsk96/loveblr/internal/services/likes"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/dto"
	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type LikeHandler struct {
	service *likessvc.Service
}

func NewLikeHandler(service *likessvc.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeStoreUnavailable(w, "like store is unavailable")
		return
	}

	var req dto.LikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	result, err := h.service.Like(r.Context(), req.FromUserID, req.ToUserID)
	if err != nil {
		switch {
		case errors.Is(err, likessvc.ErrSelfLike):
			writeBadRequest(w, "SELF_LIKE_REJECTED", "cannot like own profile")
		case errors.Is(err, likessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "from_user_id and to_user_id are required")
		case errors.Is(err, likessvc.ErrProfileNotFound):
			writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
		default:
			writeStoreUnavailable(w, "failed to record like")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LikeResponse{
		AlreadyLiked: result.AlreadyLiked,
		Created:      result.Created,
		IsMatch:      result.IsMatch,
	})
}
