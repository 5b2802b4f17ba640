package inventory

import (
	"strings"

	"github.com/netsentry/fortiview/pkg/models"
)

// PageSize is the fixed number of devices per page.
const PageSize = 20

// Criteria is a transient query object. All criteria are AND-combined;
// an empty field matches everything.
type Criteria struct {
	// Search matches case-insensitively against hostname, IP, MAC, OS
	// name, vendor, hardware type, and detected interface.
	Search string

	// Exact, case-sensitive equality filters.
	OS         string
	Vendor     string
	Interface  string
	DeviceType string

	// MAC is a case-insensitive substring filter.
	MAC string

	// Online is "online", "offline", or "" (no constraint).
	Online string

	// Authorized is "authorized", "unauthorized", or "" (no constraint).
	Authorized string
}

// ApplyFilters returns the devices matching all set criteria, in input
// order. Authorization checks use the pre-flattened set.
func ApplyFilters(devices []models.Device, c Criteria, set MACSet) []models.Device {
	matched := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if c.matches(d, set) {
			matched = append(matched, d)
		}
	}
	return matched
}

func (c Criteria) matches(d models.Device, set MACSet) bool {
	if c.Search != "" && !matchesSearch(d, c.Search) {
		return false
	}
	if c.OS != "" && d.OSName != c.OS {
		return false
	}
	if c.MAC != "" && !strings.Contains(strings.ToLower(d.MAC), strings.ToLower(c.MAC)) {
		return false
	}
	if c.Vendor != "" && d.HardwareVendor != c.Vendor {
		return false
	}
	if c.Interface != "" && d.DetectedInterface != c.Interface {
		return false
	}
	if c.DeviceType != "" && d.DeviceType != c.DeviceType {
		return false
	}
	if c.Online == "online" && !d.IsOnline {
		return false
	}
	if c.Online == "offline" && d.IsOnline {
		return false
	}
	if c.Authorized != "" {
		authorized := IsAuthorized(d, set)
		if c.Authorized == "authorized" && !authorized {
			return false
		}
		if c.Authorized == "unauthorized" && authorized {
			return false
		}
	}
	return true
}

// matchesSearch reports whether any searchable field contains the term.
func matchesSearch(d models.Device, term string) bool {
	term = strings.ToLower(term)
	fields := []string{
		d.Hostname,
		d.IPv4Address,
		d.MAC,
		d.OSName,
		d.HardwareVendor,
		d.HardwareType,
		d.DetectedInterface,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Paginate slices the device list into fixed-size pages. Pages are
// 1-based; out-of-range pages yield an empty slice.
func Paginate(devices []models.Device, page int) []models.Device {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(devices) {
		return []models.Device{}
	}
	end := start + PageSize
	if end > len(devices) {
		end = len(devices)
	}
	return devices[start:end]
}
