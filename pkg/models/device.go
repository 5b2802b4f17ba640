package models

// RawDevice is one device record as reported by the FortiGate
// device-inventory endpoint. Every descriptive field is optional on the
// wire; absent strings decode to "" and absent timestamps to 0. The
// enrichment layer defaults them exactly once, so downstream code never
// has to re-check.
type RawDevice struct {
	MAC         string `json:"mac"`
	IPv4Address string `json:"ipv4_address"`
	Hostname    string `json:"hostname,omitempty"`

	HardwareVendor string `json:"hardware_vendor,omitempty"`
	HardwareType   string `json:"hardware_type,omitempty"`
	HardwareFamily string `json:"hardware_family,omitempty"`

	OSName    string `json:"os_name,omitempty"`
	OSVersion string `json:"os_version,omitempty"`

	VDOM              string   `json:"vdom,omitempty"`
	DetectedInterface string   `json:"detected_interface,omitempty"`
	OnlineInterfaces  []string `json:"online_interfaces,omitempty"`

	// Epoch seconds. Zero means "never seen".
	LastSeen        int64 `json:"last_seen"`
	ActiveStartTime int64 `json:"active_start_time,omitempty"`

	HostSrc           string `json:"host_src,omitempty"`
	DHCPLeaseStatus   string `json:"dhcp_lease_status,omitempty"`
	DHCPLeaseExpire   int64  `json:"dhcp_lease_expire,omitempty"`
	DHCPLeaseReserved bool   `json:"dhcp_lease_reserved,omitempty"`
	DHCPServerID      int    `json:"dhcp_server_id,omitempty"`

	UnjoinedForticlientEndpoint   bool   `json:"unjoined_forticlient_endpoint,omitempty"`
	IsFortiguardSrc               bool   `json:"is_fortiguard_src,omitempty"`
	PurdueLevel                   string `json:"purdue_level,omitempty"`
	MasterMAC                     string `json:"master_mac,omitempty"`
	IsMasterDevice                bool   `json:"is_master_device,omitempty"`
	IsDetectedInterfaceRoleWAN    bool   `json:"is_detected_interface_role_wan,omitempty"`
	DetectedInterfaceFortitelemtr bool   `json:"detected_interface_fortitelemetry,omitempty"`
}

// Device is a RawDevice plus the fields derived by enrichment. Derived
// fields are recomputed from the raw record on every fetch and are never
// persisted on their own.
type Device struct {
	RawDevice

	IsOnline                 bool   `json:"is_online"`
	LastSeenFormatted        string `json:"last_seen_formatted"`
	ActiveStartTimeFormatted string `json:"active_start_time_formatted"`
	DHCPLeaseExpireFormatted string `json:"dhcp_lease_expire_formatted,omitempty"`
	IsWithinRetention        bool   `json:"is_within_retention"`
	DeviceType               string `json:"device_type"`
}

// Stats aggregates online/authorization counts over a device set.
type Stats struct {
	Total        int `json:"total"`
	Online       int `json:"online"`
	Offline      int `json:"offline"`
	Authorized   int `json:"authorized"`
	Unauthorized int `json:"unauthorized"`
}
