package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/netsentry/fortiview/internal/services"
	"github.com/netsentry/fortiview/internal/testutil"
)

func newSettingsRepo(t *testing.T) *services.SQLiteSettingsRepository {
	t.Helper()
	repo, err := services.NewSQLiteSettingsRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("settings repo: %v", err)
	}
	return repo
}

func TestSettingsSetAndGet(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, services.SettingRetentionHours, "4"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s, err := repo.Get(ctx, services.SettingRetentionHours)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Value != "4" {
		t.Errorf("Value = %q, want 4", s.Value)
	}
	if s.UpdatedAt.IsZero() {
		t.Error("UpdatedAt is zero")
	}
}

func TestSettingsGetMissing(t *testing.T) {
	repo := newSettingsRepo(t)

	_, err := repo.Get(context.Background(), "nonexistent")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Get missing key: err = %v, want ErrNotFound", err)
	}
}

func TestSettingsSetUpserts(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, services.SettingFortiGateHost, "172.31.254.1"); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := repo.Set(ctx, services.SettingFortiGateHost, "10.0.0.1"); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	s, err := repo.Get(ctx, services.SettingFortiGateHost)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Value != "10.0.0.1" {
		t.Errorf("Value = %q, want the updated host", s.Value)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("GetAll len = %d, want 1 (upsert, not insert)", len(all))
	}
}

func TestSettingsGetAllOrderedByKey(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	for _, kv := range [][2]string{
		{"zeta", "1"},
		{"alpha", "2"},
		{"mid", "3"},
	} {
		if err := repo.Set(ctx, kv[0], kv[1]); err != nil {
			t.Fatalf("Set %s: %v", kv[0], err)
		}
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(all) != len(want) {
		t.Fatalf("GetAll len = %d, want %d", len(all), len(want))
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("all[%d].Key = %q, want %q", i, all[i].Key, key)
		}
	}
}

func TestSettingsDelete(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, services.SettingFortiGateToken, "secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Delete(ctx, services.SettingFortiGateToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, services.SettingFortiGateToken); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestSettingsDeleteMissing(t *testing.T) {
	repo := newSettingsRepo(t)

	if err := repo.Delete(context.Background(), "nonexistent"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Delete missing key: err = %v, want ErrNotFound", err)
	}
}
