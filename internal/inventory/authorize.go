package inventory

import "github.com/netsentry/fortiview/pkg/models"

// MACSet is the flattened union of every whitelist entry's MAC list.
// Callers classifying many devices should build it once per query
// rather than re-flattening per device.
type MACSet map[string]struct{}

// NewMACSet flattens the given whitelist entries into one set.
func NewMACSet(entries []models.WhitelistEntry) MACSet {
	set := make(MACSet)
	for _, e := range entries {
		for _, mac := range e.MACs {
			set[mac] = struct{}{}
		}
	}
	return set
}

// Contains reports whether mac appears in any whitelist entry. Matching
// is exact and case-sensitive; neither case nor delimiter style (":"
// vs "-") is normalized.
func (s MACSet) Contains(mac string) bool {
	_, ok := s[mac]
	return ok
}

// IsAuthorized reports whether the device's MAC is whitelisted.
func IsAuthorized(d models.Device, set MACSet) bool {
	return set.Contains(d.MAC)
}
