package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/learnloop/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListActiveCourses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get courses"})
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	chapters, err := h.store.ListChapters(courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get chapters"})
		return
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	chapterID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid chapter id"})
		return
	}

	tests, err := h.store.ListTests(chapterID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get tests"})
		return
	}
	writeJSON(w, http.StatusOK, tests)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	testID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid test id"})
		return
	}

	questions, err := h.store.ListQuestions(testID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
