package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/ports"
)

type RantHandler struct {
	service ports.RantService
	logger  *zap.Logger
}

func NewRantHandler(service ports.RantService, logger *zap.Logger) *RantHandler {
	return &RantHandler{service: service, logger: logger}
}

type createRantRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateRant requires a session but deliberately drops the caller's identity.
func (h *RantHandler) CreateRant(w http.ResponseWriter, r *http.Request) {
	var req createRantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rant, err := h.service.Create(r.Context(), req.Content)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rant)
}

func (h *RantHandler) ListRants(w http.ResponseWriter, r *http.Request) {
	page, err := pageQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rants, err := h.service.List(r.Context(), page)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rants)
}

func (h *RantHandler) Support(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rant, err := h.service.Support(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rant)
}
