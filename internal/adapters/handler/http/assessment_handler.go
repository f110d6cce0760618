package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/ports"
)

type AssessmentHandler struct {
	service ports.AssessmentService
	logger  *zap.Logger
}

func NewAssessmentHandler(service ports.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, logger: logger}
}

type createAssessmentRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Questions   []string `json:"questions" validate:"required,min=1,max=50"`
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.service.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	assessment, err := h.service.Create(r.Context(), currentUser(r), ports.CreateAssessmentInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, assessment)
}

type respondRequest struct {
	Answers []int `json:"answers" validate:"required,min=1"`
}

func (h *AssessmentHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp, err := h.service.Respond(r.Context(), currentUser(r), id, req.Answers)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AssessmentHandler) Responses(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	responses, err := h.service.Responses(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}
