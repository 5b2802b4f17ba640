package models

import "strings"

// deviceIcons maps hardware-type keywords to Lucide icon names
// (https://lucide.dev) for compatibility with the React dashboard.
// FortiGate reports hardware_type as free-form text, so matching is by
// lowercase substring rather than exact value.
var deviceIcons = []struct {
	keyword string
	icon    string
}{
	{"phone", "smartphone"},
	{"mobile", "smartphone"},
	{"tablet", "tablet"},
	{"laptop", "laptop"},
	{"notebook", "laptop"},
	{"desktop", "monitor"},
	{"computer", "monitor"},
	{"server", "server"},
	{"printer", "printer"},
	{"router", "router"},
	{"switch", "network"},
	{"access point", "wifi"},
	{"firewall", "shield"},
}

// DeviceIcon returns the icon identifier for a hardware type.
// Returns "monitor" for unrecognised types.
func DeviceIcon(hardwareType string) string {
	ht := strings.ToLower(hardwareType)
	for _, m := range deviceIcons {
		if strings.Contains(ht, m.keyword) {
			return m.icon
		}
	}
	return "monitor"
}
