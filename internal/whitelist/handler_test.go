package whitelist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/netsentry/fortiview/internal/services"
	"github.com/netsentry/fortiview/internal/testutil"
	"github.com/netsentry/fortiview/pkg/models"
)

func newTestHandler(t *testing.T) (http.Handler, services.WhitelistRepository) {
	t.Helper()
	repo, err := services.NewSQLiteWhitelistRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("whitelist repo: %v", err)
	}
	mux := http.NewServeMux()
	NewHandler(repo, testutil.Logger()).RegisterRoutes(mux, nil)
	return mux, repo
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestWhitelistLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	// Create
	rec := doJSON(t, h, http.MethodPost, "/api/v1/whitelists",
		`{"name":"IT Equipment","macs":["AA:BB:CC:DD:EE:FF"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var created models.WhitelistEntry
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created entry: %v", err)
	}
	if created.ID == 0 || created.Name != "IT Equipment" {
		t.Fatalf("created = %+v, want non-zero ID and the given name", created)
	}

	// List
	rec = doJSON(t, h, http.MethodGet, "/api/v1/whitelists", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var entries []models.WhitelistEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created entry", entries)
	}

	// Update
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/whitelists/%d", created.ID),
		`{"name":"Renamed","macs":["11:22:33:44:55:66"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	// Delete
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/whitelists/%d", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/whitelists", "")
	entries = nil
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list after delete: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("list after delete = %+v, want empty", entries)
	}
}

func TestCreateValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing name", `{"macs":["AA:BB:CC:DD:EE:FF"]}`},
		{"blank name", `{"name":"   "}`},
		{"malformed mac", `{"name":"x","macs":["not-a-mac"]}`},
		{"short mac", `{"name":"x","macs":["AA:BB:CC"]}`},
		{"mixed delimiters rejected", `{"name":"x","macs":["AA:BB-CC:DD-EE:FF"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/whitelists", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
		})
	}
}

func TestCreateAcceptsBothDelimiters(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/whitelists",
		`{"name":"mixed","macs":["AA:BB:CC:DD:EE:FF","aa-bb-cc-dd-ee-00"]}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/whitelists/9999", `{"name":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteNonexistentSucceeds(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodDelete, "/api/v1/whitelists/9999", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestBadIDPath(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodDelete, "/api/v1/whitelists/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddMAC(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "IT", []string{"AA:BB:CC:DD:EE:FF"})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/whitelists/%d/macs", created.ID),
		`{"mac":"11:22:33:44:55:66"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	entries, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(entries[0].MACs) != 2 {
		t.Errorf("MACs = %v, want 2 entries", entries[0].MACs)
	}
}

func TestAddMACValidation(t *testing.T) {
	h, repo := newTestHandler(t)

	created, err := repo.Create(context.Background(), "IT", nil)
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/whitelists/%d/macs", created.ID),
		`{"mac":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddMACToMissingEntry(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/whitelists/9999/macs",
		`{"mac":"AA:BB:CC:DD:EE:FF"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRemoveMAC(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "IT", []string{"AA:BB:CC:DD:EE:FF", "11:22:33:44:55:66"})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := doJSON(t, h, http.MethodDelete,
		fmt.Sprintf("/api/v1/whitelists/%d/macs/AA:BB:CC:DD:EE:FF", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body: %s", rec.Code, rec.Body.String())
	}

	entries, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(entries[0].MACs) != 1 || entries[0].MACs[0] != "11:22:33:44:55:66" {
		t.Errorf("MACs = %v, want only the remaining MAC", entries[0].MACs)
	}
}

func TestProtectWrapsWritesOnly(t *testing.T) {
	repo, err := services.NewSQLiteWhitelistRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("whitelist repo: %v", err)
	}

	deny := func(http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}
	mux := http.NewServeMux()
	NewHandler(repo, testutil.Logger()).RegisterRoutes(mux, deny)

	if rec := doJSON(t, mux, http.MethodGet, "/api/v1/whitelists", ""); rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200 (reads stay public)", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodPost, "/api/v1/whitelists", `{"name":"x"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST status = %d, want 401 (writes are protected)", rec.Code)
	}
}
