package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/netsentry/fortiview/internal/fortigate"
	"github.com/netsentry/fortiview/internal/services"
	"github.com/netsentry/fortiview/pkg/models"
	"go.uber.org/zap"
)

// defaultRetentionHours applies when the setting is absent or malformed.
const defaultRetentionHours = 2

// QueryResult is one page of reconciled devices plus the aggregate view.
type QueryResult struct {
	Devices  []models.Device `json:"devices"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`

	// Total is the size of the criteria-filtered set across all pages.
	Total int `json:"total"`

	// Stats covers the retention-filtered inventory before criteria are
	// applied, matching what the dashboard summary cards show.
	Stats models.Stats `json:"stats"`

	UsingFallback  bool `json:"using_fallback"`
	RetentionHours int  `json:"retention_hours"`
}

// Service runs the reconciliation pipeline: fetch, enrich, retention
// filter, classify, criteria filter, paginate, aggregate.
type Service struct {
	client     *fortigate.Client
	whitelists services.WhitelistRepository
	settings   services.SettingsRepository
	logger     *zap.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates a Service.
func NewService(client *fortigate.Client, wl services.WhitelistRepository, st services.SettingsRepository, logger *zap.Logger) *Service {
	return &Service{
		client:     client,
		whitelists: wl,
		settings:   st,
		logger:     logger,
		now:        time.Now,
	}
}

// Query executes one reconciliation pass and returns the requested page.
// Source failures degrade to fallback data (flagged in the result);
// store failures are returned as errors.
func (s *Service) Query(ctx context.Context, criteria Criteria, page int) (*QueryResult, error) {
	retention := s.retentionHours(ctx)
	host, token, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}

	raws, usingFallback := s.client.Fetch(ctx, host, token)
	now := s.now()

	devices := FilterByRetention(EnrichAll(raws, retention, now), retention)

	entries, err := s.whitelists.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load whitelists: %w", err)
	}
	set := NewMACSet(entries)

	// Statistics cover the whole retained inventory, not the filtered view.
	stats := Aggregate(devices, set)

	filtered := ApplyFilters(devices, criteria, set)
	if page < 1 {
		page = 1
	}

	return &QueryResult{
		Devices:        Paginate(filtered, page),
		Page:           page,
		PageSize:       PageSize,
		Total:          len(filtered),
		Stats:          stats,
		UsingFallback:  usingFallback,
		RetentionHours: retention,
	}, nil
}

// TestConnection probes the firewall with the stored credentials.
func (s *Service) TestConnection(ctx context.Context) (*fortigate.ConnectionInfo, error) {
	host, token, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.TestConnection(ctx, host, token)
}

// retentionHours reads the configured window, falling back to the
// default on absence or a non-integer value.
func (s *Service) retentionHours(ctx context.Context) int {
	setting, err := s.settings.Get(ctx, services.SettingRetentionHours)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			s.logger.Warn("failed to read retention setting", zap.Error(err))
		}
		return defaultRetentionHours
	}
	hours, err := strconv.Atoi(setting.Value)
	if err != nil || hours < 0 {
		s.logger.Warn("invalid retention_hours value", zap.String("value", setting.Value))
		return defaultRetentionHours
	}
	return hours
}

// credentials reads the firewall host and token from settings. Absent
// values resolve to empty strings; the fetch then fails and falls back,
// which is the intended degraded mode for an unconfigured install.
func (s *Service) credentials(ctx context.Context) (host, token string, err error) {
	host, err = s.settingValue(ctx, services.SettingFortiGateHost)
	if err != nil {
		return "", "", err
	}
	token, err = s.settingValue(ctx, services.SettingFortiGateToken)
	if err != nil {
		return "", "", err
	}
	return host, token, nil
}

func (s *Service) settingValue(ctx context.Context, key string) (string, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return setting.Value, nil
}
