package handlers

import (
	"net/http"

	httperrors "github.com/MadeInMinsk96/loveblr/internal/transport/http/errors"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	httperrors.Write(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}
