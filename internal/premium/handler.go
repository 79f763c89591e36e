package premium

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/learnloop/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) MyStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	now := time.Now().UTC()
	subs, err := h.store.ListForUser(userID, now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get subscriptions"})
		return
	}
	tier, err := h.store.ActiveTier(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to resolve tier"})
		return
	}

	resp := models.PremiumStatusResponse{
		Tier:          tier,
		Subscriptions: subs,
	}
	for i := range subs {
		if subs[i].Status == models.SubscriptionActive {
			resp.Subscription = &subs[i]
			break
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Type != models.SubscriptionMonth && req.Type != models.SubscriptionYear {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "type must be 'month' or 'year'"})
		return
	}

	sub, err := h.store.Create(userID, req.Type, req.Amount, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create subscription"})
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
