package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alorle/iptv-catalog/internal/application"
	"github.com/alorle/iptv-catalog/internal/catalog"
)

// SourceHTTPHandler handles HTTP requests for playlist source
// management: ingestion, listing, rename, delete and export.
type SourceHTTPHandler struct {
	service *application.CatalogService
}

// NewSourceHTTPHandler creates a new HTTP handler for playlist sources.
func NewSourceHTTPHandler(service *application.CatalogService) *SourceHTTPHandler {
	return &SourceHTTPHandler{service: service}
}

// ingestRequest represents the JSON body for creating a source: either
// a raw document (text, with name or filename) or a remote url.
type ingestRequest struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
	URL      string `json:"url"`
}

// renameRequest represents the JSON body for renaming a source.
type renameRequest struct {
	Name string `json:"name"`
}

// sourceSummary represents a source in list responses, without the
// full entry payload.
type sourceSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	OriginKind    string `json:"origin_kind"`
	OriginLocator string `json:"origin_locator,omitempty"`
	EntryCount    int    `json:"entry_count"`
	CategoryCount int    `json:"category_count"`
}

func toSourceSummary(src catalog.Source) sourceSummary {
	categories := make(map[string]struct{})
	for _, e := range src.Entries {
		categories[e.Category] = struct{}{}
	}

	return sourceSummary{
		ID:            src.ID,
		Name:          src.Name,
		CreatedAt:     src.CreatedAt.Format(time.RFC3339),
		OriginKind:    string(src.OriginKind),
		OriginLocator: src.OriginLocator,
		EntryCount:    len(src.Entries),
		CategoryCount: len(categories),
	}
}

// ServeHTTP routes the request based on method and path.
func (h *SourceHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sources")
	path = strings.TrimPrefix(path, "/")

	// POST /sources - ingest a new playlist
	if r.Method == http.MethodPost && path == "" {
		h.handleIngest(w, r)
		return
	}

	// GET /sources - list all sources
	if r.Method == http.MethodGet && path == "" {
		h.handleList(w, r)
		return
	}

	// GET /sources/{id}/export - download the source as a document
	if r.Method == http.MethodGet && strings.HasSuffix(path, "/export") {
		h.handleExport(w, r, strings.TrimSuffix(path, "/export"))
		return
	}

	// GET /sources/{id} - get a specific source with entries
	if r.Method == http.MethodGet && path != "" {
		h.handleGet(w, r, path)
		return
	}

	// PATCH /sources/{id} - rename a source
	if r.Method == http.MethodPatch && path != "" {
		h.handleRename(w, r, path)
		return
	}

	// DELETE /sources/{id} - delete a source
	if r.Method == http.MethodDelete && path != "" {
		h.handleDelete(w, r, path)
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleIngest handles POST /sources
func (h *SourceHTTPHandler) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		src catalog.Source
		err error
	)

	switch {
	case req.URL != "":
		src, err = h.service.IngestURL(r.Context(), req.URL)
	case req.Text != "":
		name := req.Name
		if name == "" && req.Filename != "" {
			name = application.SourceNameFromFilename(req.Filename)
		}
		if name == "" {
			writeError(w, http.StatusBadRequest, "name or filename is required")
			return
		}
		src, err = h.service.IngestText(r.Context(), name, req.Text, catalog.OriginFile, "")
	default:
		writeError(w, http.StatusBadRequest, "either url or text is required")
		return
	}

	if err != nil {
		if errors.Is(err, catalog.ErrNoEntries) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, application.ErrFetchFailed) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toSourceSummary(src))
}

// handleList handles GET /sources
func (h *SourceHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.ListSources(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]sourceSummary, len(sources))
	for i, src := range sources {
		response[i] = toSourceSummary(src)
	}

	writeJSON(w, http.StatusOK, response)
}

// handleGet handles GET /sources/{id}
func (h *SourceHTTPHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	src, err := h.service.GetSource(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, src)
}

// handleRename handles PATCH /sources/{id}
func (h *SourceHTTPHandler) handleRename(w http.ResponseWriter, r *http.Request, id string) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RenameSource(r.Context(), id, req.Name); err != nil {
		if errors.Is(err, catalog.ErrEmptySourceName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, catalog.ErrSourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDelete handles DELETE /sources/{id}
func (h *SourceHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteSource(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrSourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExport handles GET /sources/{id}/export
func (h *SourceHTTPHandler) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	filename, doc, err := h.service.Export(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "audio/mpegurl")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
