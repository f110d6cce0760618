package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/ports"
)

type ManagerHandler struct {
	service ports.ManagerService
	logger  *zap.Logger
}

func NewManagerHandler(service ports.ManagerService, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{service: service, logger: logger}
}

func (h *ManagerHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 0)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	metrics, err := h.service.Metrics(r.Context(), currentUser(r), days)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *ManagerHandler) Employees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.Employees(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *ManagerHandler) Surveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.service.Surveys(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

type createSurveyRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Questions []string `json:"questions" validate:"required,min=1,max=50"`
}

func (h *ManagerHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req createSurveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	survey, err := h.service.CreateSurvey(r.Context(), currentUser(r), ports.CreateSurveyInput{
		Title:     req.Title,
		Questions: req.Questions,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, survey)
}
