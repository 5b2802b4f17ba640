package fortigate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/netsentry/fortiview/internal/metrics"
	"github.com/netsentry/fortiview/internal/testutil"
)

// newTLSServer starts a TLS test server and returns it plus the
// host:port the client should dial. The client skips certificate
// verification, so the server's self-signed cert is fine.
func newTLSServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)
	return srv, strings.TrimPrefix(srv.URL, "https://")
}

func newClient(timeout time.Duration) *Client {
	return NewClient(timeout, testutil.Logger(), metrics.New())
}

func TestFetch_Success(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != deviceQueryPath {
			t.Errorf("path = %q, want %q", r.URL.Path, deviceQueryPath)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"mac":"AA:BB:CC:DD:EE:FF","ipv4_address":"10.0.0.1","last_seen":1700000000}],"serial":"FGT60F000","version":"v7.2.5"}`))
	})

	devices, usingFallback := newClient(0).Fetch(context.Background(), host, "secret")
	if usingFallback {
		t.Error("usingFallback = true, want false")
	}
	if len(devices) != 1 {
		t.Fatalf("devices = %d, want 1", len(devices))
	}
	if devices[0].MAC != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("MAC = %q, want AA:BB:CC:DD:EE:FF", devices[0].MAC)
	}
}

func TestFetch_MissingResultsIsZeroDevices(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"serial":"FGT60F000"}`))
	})

	devices, usingFallback := newClient(0).Fetch(context.Background(), host, "secret")
	if usingFallback {
		t.Error("usingFallback = true, want false (empty results is not a failure)")
	}
	if len(devices) != 0 {
		t.Errorf("devices = %d, want 0", len(devices))
	}
	if devices == nil {
		t.Error("devices is nil, want empty slice")
	}
}

func TestFetch_ServerErrorFallsBack(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	devices, usingFallback := newClient(0).Fetch(context.Background(), host, "secret")
	if !usingFallback {
		t.Error("usingFallback = false, want true")
	}
	if len(devices) != len(FallbackDevices(time.Now())) {
		t.Errorf("devices = %d, want fallback set of %d", len(devices), len(FallbackDevices(time.Now())))
	}
}

func TestFetch_MalformedBodyFallsBack(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, usingFallback := newClient(0).Fetch(context.Background(), host, "secret")
	if !usingFallback {
		t.Error("usingFallback = false, want true")
	}
}

func TestFetch_TimeoutFallsBack(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"results":[]}`))
	})

	devices, usingFallback := newClient(50*time.Millisecond).Fetch(context.Background(), host, "secret")
	if !usingFallback {
		t.Error("usingFallback = false, want true")
	}
	if len(devices) == 0 {
		t.Error("expected fallback devices, got none")
	}
}

func TestFetch_UnreachableHostFallsBack(t *testing.T) {
	devices, usingFallback := newClient(100*time.Millisecond).Fetch(context.Background(), "127.0.0.1:1", "secret")
	if !usingFallback {
		t.Error("usingFallback = false, want true")
	}
	if len(devices) == 0 {
		t.Error("expected fallback devices, got none")
	}
}

func TestTestConnection_Success(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":[{"mac":"a"},{"mac":"b"}],"serial":"FGT60F000","version":"v7.2.5","build":1517}`))
	})

	info, err := newClient(0).TestConnection(context.Background(), host, "secret")
	if err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if info.DeviceCount != 2 {
		t.Errorf("DeviceCount = %d, want 2", info.DeviceCount)
	}
	if info.Serial != "FGT60F000" {
		t.Errorf("Serial = %q, want FGT60F000", info.Serial)
	}
	if info.Version != "v7.2.5" {
		t.Errorf("Version = %q, want v7.2.5", info.Version)
	}
}

func TestTestConnection_ErrorSurfaces(t *testing.T) {
	_, host := newTLSServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := newClient(0).TestConnection(context.Background(), host, "bad-token"); err == nil {
		t.Error("TestConnection: expected error, got nil")
	}
}

func TestFallbackDevices_Shape(t *testing.T) {
	now := time.Now()
	devices := FallbackDevices(now)

	if len(devices) != 8 {
		t.Fatalf("fallback devices = %d, want 8", len(devices))
	}
	for i, d := range devices {
		if d.MAC == "" {
			t.Errorf("device %d has empty MAC", i)
		}
		if d.LastSeen == 0 {
			t.Errorf("device %d has zero last_seen", i)
		}
		if d.LastSeen > now.Unix() {
			t.Errorf("device %d last_seen is in the future", i)
		}
	}
}
