package streaks

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/learnloop/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) MyStreaks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.MyStreaks(userID, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get streaks"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) MarkToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	rec, created, err := h.service.MarkToday(userID, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record streak"})
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]interface{}{"created": false})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"created": true,
		"record":  rec,
	})
}

func (h *Handler) UseSaver(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UseStreakSaverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	rec, err := h.service.UseSaver(userID, req.Date, time.Now().UTC())
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be 'YYYY-MM-DD' and not in the future"})
	case errors.Is(err, ErrDateAlreadyCovered):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Date already covered"})
	case errors.Is(err, ErrMonthlyLimitReached):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Monthly streak saver limit reached"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to use streak saver"})
	default:
		writeJSON(w, http.StatusCreated, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
