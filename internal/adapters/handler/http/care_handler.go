package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/core/ports"
)

// CareHandler serves therapists, appointments and courses.
type CareHandler struct {
	therapists   ports.TherapistService
	appointments ports.AppointmentService
	courses      ports.CourseService
	logger       *zap.Logger
}

func NewCareHandler(therapists ports.TherapistService, appointments ports.AppointmentService, courses ports.CourseService, logger *zap.Logger) *CareHandler {
	return &CareHandler{
		therapists:   therapists,
		appointments: appointments,
		courses:      courses,
		logger:       logger,
	}
}

func (h *CareHandler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("available") == "true"
	therapists, err := h.therapists.List(r.Context(), onlyAvailable)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, therapists)
}

func (h *CareHandler) GetTherapist(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	therapist, err := h.therapists.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, therapist)
}

type createTherapistRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Specialty string `json:"specialty" validate:"required,max=100"`
	Bio       string `json:"bio" validate:"max=2000"`
	Email     string `json:"email" validate:"omitempty,email"`
	Available *bool  `json:"available"`
}

func (h *CareHandler) CreateTherapist(w http.ResponseWriter, r *http.Request) {
	var req createTherapistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	therapist, err := h.therapists.Create(r.Context(), ports.CreateTherapistInput{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		Email:     req.Email,
		Available: available,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, therapist)
}

func (h *CareHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.List(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

type createAppointmentRequest struct {
	TherapistID uuid.UUID `json:"therapistId" validate:"required"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Notes       string    `json:"notes" validate:"max=1000"`
}

func (h *CareHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	appt, err := h.appointments.Create(r.Context(), ports.CreateAppointmentInput{
		UserID:      currentUser(r).ID,
		TherapistID: req.TherapistID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

type updateAppointmentRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

func (h *CareHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req updateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	appt, err := h.appointments.UpdateStatus(r.Context(), currentUser(r), id, domain.AppointmentStatus(req.Status))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *CareHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CareHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

type createCourseRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	Category        string `json:"category" validate:"max=50"`
	DurationMinutes int    `json:"durationMinutes" validate:"min=0"`
	ContentURL      string `json:"contentUrl" validate:"omitempty,url"`
}

func (h *CareHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	course, err := h.courses.Create(r.Context(), ports.CreateCourseInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		ContentURL:      req.ContentURL,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}
