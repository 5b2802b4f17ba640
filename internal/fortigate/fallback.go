package fortigate

import (
	"time"

	"github.com/netsentry/fortiview/pkg/models"
)

// FallbackDevices returns the fixed demo inventory served when the
// appliance is unreachable. Timestamps are relative to now so the
// online/retention mix stays stable: five devices seen within the last
// 25 minutes, one just past the online threshold, and two old enough to
// fall outside a 2-hour retention window.
func FallbackDevices(now time.Time) []models.RawDevice {
	ts := now.Unix()
	return []models.RawDevice{
		{
			IPv4Address:       "172.31.254.175",
			MAC:               "00:0c:29:19:e4:4d",
			HardwareVendor:    "VMware",
			HardwareType:      "Server",
			HardwareFamily:    "Virtual Machine",
			VDOM:              "root",
			OSName:            "Ubuntu",
			LastSeen:          ts - 300,
			ActiveStartTime:   ts - 3600,
			IsFortiguardSrc:   true,
			PurdueLevel:       "3",
			MasterMAC:         "00:0c:29:19:e4:4d",
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
		},
		{
			IPv4Address:       "172.31.254.179",
			MAC:               "fa:71:3c:c1:93:fc",
			VDOM:              "root",
			OSName:            "Android",
			OSVersion:         "13",
			Hostname:          "POCO-X4-Pro-5G",
			HardwareType:      "Mobile",
			LastSeen:          ts - 120,
			HostSrc:           "dhcp",
			ActiveStartTime:   ts - 7200,
			DHCPLeaseStatus:   "leased",
			DHCPLeaseExpire:   ts + 86400,
			DHCPServerID:      3,
			PurdueLevel:       "3",
			MasterMAC:         "fa:71:3c:c1:93:fc",
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			OnlineInterfaces:  []string{"lan1"},
		},
		{
			IPv4Address:       "172.31.254.100",
			MAC:               "AA:BB:CC:DD:EE:FF",
			Hostname:          "DESKTOP-ABC123",
			HardwareVendor:    "Dell",
			HardwareType:      "Desktop",
			HardwareFamily:    "OptiPlex",
			VDOM:              "root",
			OSName:            "Windows",
			OSVersion:         "11",
			LastSeen:          ts - 60,
			ActiveStartTime:   ts - 14400,
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
		{
			IPv4Address:       "172.31.254.200",
			MAC:               "FF:EE:DD:CC:BB:AA",
			Hostname:          "PRINTER-HP",
			HardwareVendor:    "HP",
			HardwareType:      "Printer",
			HardwareFamily:    "LaserJet",
			VDOM:              "root",
			OSName:            "Embedded",
			LastSeen:          ts - 900,
			ActiveStartTime:   ts - 10800,
			DetectedInterface: "lan2",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
		{
			IPv4Address:       "172.31.254.202",
			MAC:               "CC:DD:EE:FF:00:11",
			Hostname:          "PHONE-RECENT",
			HardwareVendor:    "Apple",
			HardwareType:      "Mobile",
			HardwareFamily:    "iPhone",
			VDOM:              "root",
			OSName:            "iOS",
			OSVersion:         "17",
			LastSeen:          ts - 600,
			ActiveStartTime:   ts - 3600,
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
		{
			IPv4Address:       "172.31.254.201",
			MAC:               "88:99:AA:BB:CC:DD",
			Hostname:          "TABLET-OFFLINE",
			HardwareVendor:    "Samsung",
			HardwareType:      "Tablet",
			HardwareFamily:    "Galaxy",
			VDOM:              "root",
			OSName:            "Android",
			OSVersion:         "12",
			LastSeen:          ts - 1800,
			ActiveStartTime:   ts - 7200,
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
		{
			IPv4Address:       "172.31.254.150",
			MAC:               "11:22:33:44:55:66",
			Hostname:          "LAPTOP-OFFLINE",
			HardwareVendor:    "Lenovo",
			HardwareType:      "Laptop",
			HardwareFamily:    "ThinkPad",
			VDOM:              "root",
			OSName:            "Windows",
			OSVersion:         "10",
			LastSeen:          ts - 10800,
			ActiveStartTime:   ts - 18000,
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
		{
			IPv4Address:       "172.31.254.250",
			MAC:               "77:88:99:AA:BB:CC",
			Hostname:          "OLD-DEVICE",
			HardwareVendor:    "Generic",
			HardwareType:      "Unknown",
			VDOM:              "root",
			OSName:            "Unknown",
			LastSeen:          ts - 14400,
			ActiveStartTime:   ts - 21600,
			DetectedInterface: "lan1",
			IsMasterDevice:    true,
			PurdueLevel:       "3",
		},
	}
}
