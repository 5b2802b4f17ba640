package inventory

import "github.com/netsentry/fortiview/pkg/models"

// Aggregate counts online/authorization state over the given device
// set. Callers choose the input set: the dashboard computes statistics
// over the full (unfiltered) inventory, not the current page.
func Aggregate(devices []models.Device, set MACSet) models.Stats {
	stats := models.Stats{Total: len(devices)}
	for _, d := range devices {
		if d.IsOnline {
			stats.Online++
		}
		if IsAuthorized(d, set) {
			stats.Authorized++
		}
	}
	stats.Offline = stats.Total - stats.Online
	stats.Unauthorized = stats.Total - stats.Authorized
	return stats
}
