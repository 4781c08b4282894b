package driver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alorle/iptv-catalog/internal/application"
	"github.com/alorle/iptv-catalog/internal/catalog"
)

// FavoritesHTTPHandler handles HTTP requests for the favorites
// collection.
type FavoritesHTTPHandler struct {
	service *application.LibraryService
}

// NewFavoritesHTTPHandler creates a new HTTP handler for favorites.
func NewFavoritesHTTPHandler(service *application.LibraryService) *FavoritesHTTPHandler {
	return &FavoritesHTTPHandler{service: service}
}

// ServeHTTP routes the request based on method and path.
func (h *FavoritesHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/favorites")
	path = strings.TrimPrefix(path, "/")

	// GET /favorites - list all favorites
	if r.Method == http.MethodGet && path == "" {
		entries, err := h.service.Favorites(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	// POST /favorites - add a favorite
	if r.Method == http.MethodPost && path == "" {
		var entry catalog.Entry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.service.AddFavorite(r.Context(), entry); err != nil {
			if errors.Is(err, catalog.ErrInvalidEntry) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, entry)
		return
	}

	// DELETE /favorites/{id} - remove a favorite
	if r.Method == http.MethodDelete && path != "" {
		if err := h.service.RemoveFavorite(r.Context(), path); err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// HistoryHTTPHandler handles HTTP requests for the watch history.
type HistoryHTTPHandler struct {
	service *application.LibraryService
}

// NewHistoryHTTPHandler creates a new HTTP handler for the watch
// history.
func NewHistoryHTTPHandler(service *application.LibraryService) *HistoryHTTPHandler {
	return &HistoryHTTPHandler{service: service}
}

// ServeHTTP routes the request based on method.
func (h *HistoryHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.History(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var entry catalog.Entry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.service.TouchHistory(r.Context(), entry); err != nil {
			if errors.Is(err, catalog.ErrInvalidEntry) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		if err := h.service.ClearHistory(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
