// Package settings provides HTTP handlers for application settings endpoints.
package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/netsentry/fortiview/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SettingsResponse is the readable view of the application settings.
// Secrets are never echoed back; their presence is reported instead.
type SettingsResponse struct {
	RetentionHours    string `json:"retention_hours"`
	FortiGateHost     string `json:"fortigate_host"`
	FortiGateTokenSet bool   `json:"fortigate_token_set"`
	AuthUsername      string `json:"auth_username"`
}

// UpdateRequest carries a partial settings update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	RetentionHours *string `json:"retention_hours"`
	FortiGateHost  *string `json:"fortigate_host"`
	FortiGateToken *string `json:"fortigate_token"`
	AuthUsername   *string `json:"auth_username"`
	AuthPassword   *string `json:"auth_password"`
}

// Handler provides HTTP handlers for settings endpoints.
type Handler struct {
	interfaces *services.InterfaceService
	settings   services.SettingsRepository
	logger     *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(settings services.SettingsRepository, logger *zap.Logger) *Handler {
	return &Handler{
		interfaces: services.NewInterfaceService(),
		settings:   settings,
		logger:     logger,
	}
}

// RegisterRoutes registers settings routes on the mux. The protect
// wrapper is applied to the mutating route.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, protect func(http.HandlerFunc) http.HandlerFunc) {
	if protect == nil {
		protect = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	mux.HandleFunc("GET /api/v1/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", protect(h.handleUpdateSettings))
	mux.HandleFunc("GET /api/v1/settings/interfaces", h.handleListInterfaces)
}

// handleGetSettings returns the current settings with secrets redacted.
func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	resp := SettingsResponse{}

	var err error
	if resp.RetentionHours, err = h.value(r, services.SettingRetentionHours); err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}
	if resp.FortiGateHost, err = h.value(r, services.SettingFortiGateHost); err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}
	token, err := h.value(r, services.SettingFortiGateToken)
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}
	resp.FortiGateTokenSet = token != ""
	if resp.AuthUsername, err = h.value(r, services.SettingAuthUsername); err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateSettings applies a partial update. Values are validated
// before anything is written, so a bad field rejects the whole request.
func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]string{}

	if req.RetentionHours != nil {
		v := strings.TrimSpace(*req.RetentionHours)
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 0 {
			writeSettingsError(w, http.StatusBadRequest, "retention_hours must be a non-negative integer")
			return
		}
		updates[services.SettingRetentionHours] = strconv.Itoa(hours)
	}
	if req.FortiGateHost != nil {
		updates[services.SettingFortiGateHost] = strings.TrimSpace(*req.FortiGateHost)
	}
	if req.FortiGateToken != nil {
		updates[services.SettingFortiGateToken] = strings.TrimSpace(*req.FortiGateToken)
	}
	if req.AuthUsername != nil {
		v := strings.TrimSpace(*req.AuthUsername)
		if v == "" {
			writeSettingsError(w, http.StatusBadRequest, "auth_username must not be empty")
			return
		}
		updates[services.SettingAuthUsername] = v
	}
	if req.AuthPassword != nil {
		if *req.AuthPassword == "" {
			writeSettingsError(w, http.StatusBadRequest, "auth_password must not be empty")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.AuthPassword), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error("failed to hash password", zap.Error(err))
			writeSettingsError(w, http.StatusInternalServerError, "failed to update password")
			return
		}
		updates[services.SettingAuthPasswordHash] = string(hash)
	}

	if len(updates) == 0 {
		writeSettingsError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	for key, value := range updates {
		if err := h.settings.Set(r.Context(), key, value); err != nil {
			h.logger.Error("failed to save setting", zap.String("key", key), zap.Error(err))
			writeSettingsError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	h.handleGetSettings(w, r)
}

// handleListInterfaces returns the server's non-loopback interfaces, for
// pointing the dashboard at the right network.
func (h *Handler) handleListInterfaces(w http.ResponseWriter, _ *http.Request) {
	interfaces, err := h.interfaces.ListNetworkInterfaces()
	if err != nil {
		h.logger.Error("failed to list interfaces", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to list network interfaces")
		return
	}
	writeJSON(w, http.StatusOK, interfaces)
}

// value reads one setting, mapping absence to the empty string.
func (h *Handler) value(r *http.Request, key string) (string, error) {
	s, err := h.settings.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSettingsError writes an RFC 7807 problem response.
func writeSettingsError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://fortiview.dev/problems/settings-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
