package leaderboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}

	resp, err := h.service.Top(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get leaderboard"})
		return
	}
	if resp.Entries == nil {
		resp.Entries = []models.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) MyStanding(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	entry, err := h.service.MyStanding(userID)
	switch {
	case errors.Is(err, ErrUserNotRanked):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not on the leaderboard yet"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get standing"})
	default:
		writeJSON(w, http.StatusOK, entry)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
