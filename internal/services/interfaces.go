package services

import (
	"fmt"
	"net"
)

// NetworkInterface describes one usable IPv4 interface on the host
// running the dashboard.
type NetworkInterface struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	Subnet    string `json:"subnet"`
	MAC       string `json:"mac"`
	Status    string `json:"status"`
}

// InterfaceService enumerates host network interfaces. It backs the
// server-info endpoint so the dashboard can display a reachable address.
type InterfaceService struct{}

// NewInterfaceService creates an InterfaceService.
func NewInterfaceService() *InterfaceService {
	return &InterfaceService{}
}

// ListNetworkInterfaces returns all non-loopback interfaces that carry
// an IPv4 address.
func (s *InterfaceService) ListNetworkInterfaces() ([]NetworkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var result []NetworkInterface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil {
				continue
			}

			status := "down"
			if iface.Flags&net.FlagUp != 0 {
				status = "up"
			}

			result = append(result, NetworkInterface{
				Name:      iface.Name,
				IPAddress: ip4.String(),
				Subnet:    ipNet.String(),
				MAC:       iface.HardwareAddr.String(),
				Status:    status,
			})
			break // One IPv4 address per interface is enough.
		}
	}
	return result, nil
}

// ServerIP returns the first non-loopback IPv4 address of an up
// interface, or "localhost" when none is found.
func (s *InterfaceService) ServerIP() string {
	ifaces, err := s.ListNetworkInterfaces()
	if err != nil {
		return "localhost"
	}
	for i := range ifaces {
		if ifaces[i].Status == "up" {
			return ifaces[i].IPAddress
		}
	}
	return "localhost"
}
