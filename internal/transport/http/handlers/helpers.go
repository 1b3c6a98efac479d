package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeStoreUnavailable(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{Code: "STORE_UNAVAILABLE", Message: message})
}

func writeUploadFailed(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusBadGateway, httperrors.APIError{Code: "UPLOAD_FAILED", Message: message})
}

func userIDFromRequest(r *http.Request) (int64, bool) {
	if r == nil {
		return 0, false
	}
	raw := strings.TrimSpace(chi.URLParam(r, "userID"))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
