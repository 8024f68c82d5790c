package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/todo-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles HTTP requests related to categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryPayload is both the request and the response body of category creation.
type CategoryPayload struct {
	Name string `json:"name"`
}

// GetAll returns the caller's category names.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	names, err := h.service.List(r.Context(), uid)
	if err != nil {
		log.Error().Err(err).Int64("user_id", uid).Msg("Failed to retrieve categories")
		writeServiceError(w, err, "Failed to retrieve categories")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// Create adds a category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload CategoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name, err := h.service.Add(r.Context(), uid, payload.Name)
	if err != nil {
		writeServiceError(w, err, "Failed to add category")
		return
	}
	writeJSON(w, http.StatusCreated, CategoryPayload{Name: name})
}

// Delete removes a category by name.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	name := categoryName(r)
	if err := h.service.Delete(r.Context(), uid, name); err != nil {
		writeServiceError(w, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// categoryName returns the decoded {name} URL parameter. chi matches on the
// raw path when the request carries escapes it cannot normalise.
func categoryName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
