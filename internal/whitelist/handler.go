// Package whitelist provides HTTP handlers for the MAC whitelist endpoints.
package whitelist

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/netsentry/fortiview/internal/services"
	"go.uber.org/zap"
)

// macPattern accepts six hex octets separated by colons or hyphens.
var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)

// EntryRequest is the body for creating or replacing a whitelist entry.
type EntryRequest struct {
	Name string   `json:"name"`
	MACs []string `json:"macs"`
}

// MACRequest is the body for appending a single MAC to an entry.
type MACRequest struct {
	MAC string `json:"mac"`
}

// Handler provides HTTP handlers for whitelist CRUD.
type Handler struct {
	repo   services.WhitelistRepository
	logger *zap.Logger
}

// NewHandler creates a whitelist Handler.
func NewHandler(repo services.WhitelistRepository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers whitelist routes on the mux. The protect
// wrapper is applied to every mutating route.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, protect func(http.HandlerFunc) http.HandlerFunc) {
	if protect == nil {
		protect = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	mux.HandleFunc("GET /api/v1/whitelists", h.handleList)
	mux.HandleFunc("POST /api/v1/whitelists", protect(h.handleCreate))
	mux.HandleFunc("PUT /api/v1/whitelists/{id}", protect(h.handleUpdate))
	mux.HandleFunc("DELETE /api/v1/whitelists/{id}", protect(h.handleDelete))
	mux.HandleFunc("POST /api/v1/whitelists/{id}/macs", protect(h.handleAddMAC))
	mux.HandleFunc("DELETE /api/v1/whitelists/{id}/macs/{mac}", protect(h.handleRemoveMAC))
}

// handleList returns every whitelist entry, newest first.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list whitelists", zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to list whitelists")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleCreate inserts a new entry with its MAC list.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEntryRequest(w, r)
	if !ok {
		return
	}

	entry, err := h.repo.Create(r.Context(), req.Name, req.MACs)
	if err != nil {
		h.logger.Error("failed to create whitelist", zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to create whitelist")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleUpdate replaces an entry's name and full MAC list.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeEntryRequest(w, r)
	if !ok {
		return
	}

	entry, err := h.repo.Update(r.Context(), id, req.Name, req.MACs)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeWhitelistError(w, http.StatusNotFound, "whitelist not found")
			return
		}
		h.logger.Error("failed to update whitelist", zap.Int64("id", id), zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to update whitelist")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleDelete removes an entry. Unknown IDs delete successfully.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete whitelist", zap.Int64("id", id), zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to delete whitelist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddMAC appends one MAC to an existing entry.
func (h *Handler) handleAddMAC(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req MACRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWhitelistError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.MAC = strings.TrimSpace(req.MAC)
	if !macPattern.MatchString(req.MAC) {
		writeWhitelistError(w, http.StatusBadRequest, "invalid MAC address: "+req.MAC)
		return
	}

	if err := h.repo.AddMAC(r.Context(), id, req.MAC); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeWhitelistError(w, http.StatusNotFound, "whitelist not found")
			return
		}
		h.logger.Error("failed to add mac", zap.Int64("id", id), zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to add MAC")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mac": req.MAC})
}

// handleRemoveMAC deletes one MAC from an entry. Missing MACs remove
// successfully.
func (h *Handler) handleRemoveMAC(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	mac := r.PathValue("mac")

	if err := h.repo.RemoveMAC(r.Context(), id, mac); err != nil {
		h.logger.Error("failed to remove mac", zap.Int64("id", id), zap.Error(err))
		writeWhitelistError(w, http.StatusInternalServerError, "failed to remove MAC")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeEntryRequest parses and validates a create/update body.
func decodeEntryRequest(w http.ResponseWriter, r *http.Request) (EntryRequest, bool) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWhitelistError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeWhitelistError(w, http.StatusBadRequest, "name is required")
		return req, false
	}
	for i := range req.MACs {
		req.MACs[i] = strings.TrimSpace(req.MACs[i])
		if !macPattern.MatchString(req.MACs[i]) {
			writeWhitelistError(w, http.StatusBadRequest, "invalid MAC address: "+req.MACs[i])
			return req, false
		}
	}
	return req, true
}

// pathID parses the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeWhitelistError(w, http.StatusBadRequest, "invalid whitelist id")
		return 0, false
	}
	return id, true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeWhitelistError writes an RFC 7807 problem response.
func writeWhitelistError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://fortiview.dev/problems/whitelist-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
