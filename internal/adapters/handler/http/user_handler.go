package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/ports"
)

type UserHandler struct {
	service       ports.UserService
	organizations ports.OrganizationService
	logger        *zap.Logger
}

func NewUserHandler(service ports.UserService, organizations ports.OrganizationService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service:       service,
		organizations: organizations,
		logger:        logger,
	}
}

// GetMe reloads the caller so the response reflects the stored profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type createOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,min=4,max=64"`
}

func (h *UserHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	org, err := h.organizations.Create(r.Context(), ports.CreateOrganizationInput{Name: req.Name, Code: req.Code})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}
