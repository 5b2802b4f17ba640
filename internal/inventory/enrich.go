// Package inventory implements the device reconciliation engine: it
// takes raw firewall-observed device records, derives online/retention
// state, classifies devices against the MAC whitelists, and supports
// search, filtering, and pagination over the result.
package inventory

import (
	"time"

	"github.com/netsentry/fortiview/pkg/models"
)

// onlineThresholdSeconds is the fixed window for the online flag: a
// device is online when it was seen within the last 25 minutes. The
// retention window is configurable and independent of this threshold,
// so a device can be offline yet still within retention.
const onlineThresholdSeconds = 25 * 60

// timestampLayout mirrors the en-US locale date-time string the
// dashboard renders, e.g. "1/2/2026, 3:04:05 PM".
const timestampLayout = "1/2/2006, 3:04:05 PM"

// Enrich computes the derived fields for one raw record. It is a pure
// function: all time arithmetic uses the supplied now.
func Enrich(raw models.RawDevice, retentionHours int, now time.Time) models.Device {
	d := models.Device{RawDevice: raw}

	d.IsOnline = isOnline(raw.LastSeen, now)
	d.IsWithinRetention = isWithinRetention(raw.LastSeen, retentionHours, now)

	d.LastSeenFormatted = formatTimestamp(raw.LastSeen)
	d.ActiveStartTimeFormatted = formatTimestamp(raw.ActiveStartTime)
	if raw.DHCPLeaseExpire != 0 {
		d.DHCPLeaseExpireFormatted = formatTimestamp(raw.DHCPLeaseExpire)
	}

	d.DeviceType = raw.HardwareType
	if d.DeviceType == "" {
		d.DeviceType = "Unknown"
	}

	return d
}

// EnrichAll enriches every record in the input order.
func EnrichAll(raws []models.RawDevice, retentionHours int, now time.Time) []models.Device {
	devices := make([]models.Device, 0, len(raws))
	for _, raw := range raws {
		devices = append(devices, Enrich(raw, retentionHours, now))
	}
	return devices
}

// FilterByRetention drops devices outside the retention window. A
// retention of 0 hours is the documented "show all" override, not
// merely a zero-width threshold.
func FilterByRetention(devices []models.Device, retentionHours int) []models.Device {
	if retentionHours <= 0 {
		return devices
	}
	kept := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if d.IsWithinRetention {
			kept = append(kept, d)
		}
	}
	return kept
}

// isOnline reports whether lastSeen falls within the fixed 25-minute
// threshold. A device never seen is never online.
func isOnline(lastSeen int64, now time.Time) bool {
	if lastSeen == 0 {
		return false
	}
	return now.Unix()-lastSeen <= onlineThresholdSeconds
}

// isWithinRetention applies the configurable window. retentionHours==0
// means retention filtering is disabled and everything qualifies.
func isWithinRetention(lastSeen int64, retentionHours int, now time.Time) bool {
	if retentionHours == 0 {
		return true
	}
	if lastSeen == 0 {
		return false
	}
	return now.Unix()-lastSeen <= int64(retentionHours)*3600
}

// formatTimestamp renders an epoch-seconds value for display. Absent
// timestamps render as the literal "N/A".
func formatTimestamp(epoch int64) string {
	if epoch == 0 {
		return "N/A"
	}
	return time.Unix(epoch, 0).Format(timestampLayout)
}
