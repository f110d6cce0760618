package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/ports"
)

type JournalHandler struct {
	journals ports.JournalService
	moods    ports.MoodService
	logger   *zap.Logger
}

func NewJournalHandler(journals ports.JournalService, moods ports.MoodService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		journals: journals,
		moods:    moods,
		logger:   logger,
	}
}

type createJournalRequest struct {
	Content   string   `json:"content" validate:"required"`
	MoodScore *int     `json:"moodScore" validate:"omitempty,min=1,max=10"`
	Tags      []string `json:"tags"`
}

func (h *JournalHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req createJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	journal, err := h.journals.Create(r.Context(), ports.CreateJournalInput{
		UserID:    currentUser(r).ID,
		Content:   req.Content,
		MoodScore: req.MoodScore,
		Tags:      req.Tags,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, journal)
}

func (h *JournalHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	page, err := pageQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	journals, err := h.journals.List(r.Context(), currentUser(r).ID, page)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, journals)
}

func (h *JournalHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.journals.Delete(r.Context(), id, currentUser(r).ID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createMoodRequest struct {
	Score int    `json:"score" validate:"required,min=1,max=10"`
	Note  string `json:"note" validate:"max=500"`
}

func (h *JournalHandler) CreateMood(w http.ResponseWriter, r *http.Request) {
	var req createMoodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	entry, err := h.moods.Create(r.Context(), ports.CreateMoodInput{
		UserID: currentUser(r).ID,
		Score:  req.Score,
		Note:   req.Note,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", ports.DefaultPageSize)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	entries, err := h.moods.List(r.Context(), currentUser(r).ID, limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) MoodStats(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 0)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	stats, err := h.moods.Stats(r.Context(), currentUser(r).ID, days)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func pageQuery(r *http.Request) (ports.Page, error) {
	limit, err := intQuery(r, "limit", ports.DefaultPageSize)
	if err != nil {
		return ports.Page{}, err
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		return ports.Page{}, err
	}
	return ports.Page{Limit: limit, Offset: offset}, nil
}
