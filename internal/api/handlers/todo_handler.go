package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/todo-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TodoHandler handles HTTP requests related to todos.
type TodoHandler struct {
	service services.TodoServiceProvider
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service services.TodoServiceProvider) *TodoHandler {
	return &TodoHandler{service: service}
}

// CreateTodoPayload defines the structure for todo creation requests.
// Dates stay raw so a value of the wrong JSON type is dropped like any
// other unparsable date instead of failing the request.
type CreateTodoPayload struct {
	Content   string          `json:"content"`
	Category  string          `json:"category"`
	StartDate json.RawMessage `json:"start_date"`
	Deadline  json.RawMessage `json:"deadline"`
}

// GetAll lists the caller's todos, optionally filtered by ?category=.
func (h *TodoHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), uid, r.URL.Query().Get("category"))
	if err != nil {
		log.Error().Err(err).Int64("user_id", uid).Msg("Failed to retrieve todos")
		writeServiceError(w, err, "Failed to retrieve todos")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// Create handles the request to create a new todo.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload CreateTodoPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.service.Create(r.Context(), uid, services.CreateTodoInput{
		Content:   payload.Content,
		Category:  payload.Category,
		StartDate: dateText(payload.StartDate),
		Deadline:  dateText(payload.Deadline),
	})
	if err != nil {
		writeServiceError(w, err, "Failed to add todo")
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// Toggle flips the done flag of a todo.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Toggle(r.Context(), uid, id)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", uid).Int64("todo_id", id).Msg("Failed to toggle todo")
		writeServiceError(w, err, "Failed to update todo")
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Delete handles the request to delete a todo.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), uid, id); err != nil {
		log.Warn().Err(err).Int64("user_id", uid).Int64("todo_id", id).Msg("Failed to delete todo")
		writeServiceError(w, err, "Failed to delete todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todoID parses the {id} URL parameter. Anything that is not a positive
// integer cannot name a todo, so it is reported as not found.
func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Todo not found")
		return 0, false
	}
	return id, true
}

// dateText returns the string value of a raw JSON date. Absent and null
// values are empty; anything that is not a JSON string is returned as its
// raw text, which the service logs and stores as no date.
func dateText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}
