package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Handler provides HTTP handlers for the device inventory endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an inventory Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes registers inventory routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/devices", h.handleListDevices)
	mux.HandleFunc("GET /api/v1/devices/connection-test", h.handleConnectionTest)
}

// handleListDevices returns one page of reconciled devices plus
// aggregate statistics. All filter parameters are optional.
func (h *Handler) handleListDevices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := Criteria{
		Search:     q.Get("search"),
		OS:         q.Get("os"),
		Vendor:     q.Get("vendor"),
		Interface:  q.Get("interface"),
		DeviceType: q.Get("device_type"),
		MAC:        q.Get("mac"),
		Online:     q.Get("online"),
		Authorized: q.Get("authorized"),
	}

	page := 1
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeInventoryError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	result, err := h.svc.Query(r.Context(), criteria, page)
	if err != nil {
		h.logger.Error("device query failed", zap.Error(err))
		writeInventoryError(w, http.StatusInternalServerError, "failed to query devices")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleConnectionTest probes the firewall with the stored credentials.
func (h *Handler) handleConnectionTest(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.TestConnection(r.Context())
	if err != nil {
		h.logger.Warn("fortigate connection test failed", zap.Error(err))
		writeInventoryError(w, http.StatusBadGateway, "could not reach the firewall: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "connection established",
		"devices_count": info.DeviceCount,
		"serial":        info.Serial,
		"version":       info.Version,
		"build":         info.Build,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeInventoryError writes an RFC 7807 problem response.
func writeInventoryError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://fortiview.dev/problems/inventory-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
