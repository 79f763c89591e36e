package achievements

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
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

// ListAll returns the achievement catalog without any per-user state.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.store.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get achievements"})
		return
	}
	if all == nil {
		all = []models.Achievement{}
	}

	writeJSON(w, http.StatusOK, all)
}

// ListMine returns every achievement with the caller's claim state.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	views, err := h.service.List(userID, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get achievements"})
		return
	}
	if views == nil {
		views = []models.AchievementView{}
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	achievementID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid achievement id"})
		return
	}

	result, err := h.service.Claim(userID, achievementID, time.Now().UTC())
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Achievement not found"})
	case errors.Is(err, ErrNotClaimable):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Achievement targets not met"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to claim achievement"})
	case result.NewlyClaimed:
		writeJSON(w, http.StatusCreated, result)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
