package testutil

import (
	"time"

	"github.com/netsentry/fortiview/pkg/models"
)

// NewRawDevice returns a RawDevice with sensible defaults, suitable for
// test fixtures. Override individual fields through options as needed.
func NewRawDevice(opts ...func(*models.RawDevice)) models.RawDevice {
	d := models.RawDevice{
		MAC:               "00:11:22:33:44:55",
		IPv4Address:       "192.168.1.100",
		Hostname:          "test-device",
		HardwareVendor:    "Dell",
		HardwareType:      "Desktop",
		OSName:            "Windows",
		OSVersion:         "11",
		VDOM:              "root",
		DetectedInterface: "lan1",
		LastSeen:          time.Now().Unix() - 60,
		ActiveStartTime:   time.Now().Unix() - 3600,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithMAC sets the device's MAC address.
func WithMAC(mac string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.MAC = mac }
}

// WithIP sets the device's IPv4 address.
func WithIP(ip string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.IPv4Address = ip }
}

// WithHostname sets the device hostname.
func WithHostname(name string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.Hostname = name }
}

// WithLastSeen sets the device's last_seen epoch timestamp.
func WithLastSeen(epoch int64) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.LastSeen = epoch }
}

// WithHardwareType sets the device hardware type.
func WithHardwareType(ht string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.HardwareType = ht }
}

// WithOS sets the device OS name.
func WithOS(os string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.OSName = os }
}

// WithVendor sets the device hardware vendor.
func WithVendor(v string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.HardwareVendor = v }
}

// WithInterface sets the detected interface.
func WithInterface(ifname string) func(*models.RawDevice) {
	return func(d *models.RawDevice) { d.DetectedInterface = ifname }
}
