package collector

import (
	"context"
	"fmt"
	"net"
	"strings"
)

const statusEstablished = "ESTABLISHED"

// FormatMAC renders a hardware address as lowercase colon-separated octets.
func FormatMAC(hw net.HardwareAddr) string {
	octets := make([]string, len(hw))
	for i, b := range hw {
		octets[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(octets, ":")
}

// collectNetworkInfo gathers addressing, counters and established
// connections. Any failure discards the whole section.
func collectNetworkInfo(ctx context.Context, src NetworkSource) (NetworkInfo, error) {
	hw, err := src.HardwareAddr(ctx)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("hardware address: %w", err)
	}
	hostname, err := src.Hostname()
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("hostname: %w", err)
	}
	ip, err := src.LookupIPv4(ctx, hostname)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("resolve %s: %w", hostname, err)
	}
	fqdn, err := src.FQDN(ctx, hostname)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("fqdn: %w", err)
	}
	sent, recv, err := src.IOCounters(ctx)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("io counters: %w", err)
	}
	conns, err := src.Connections(ctx)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("connections: %w", err)
	}

	return NetworkInfo{
		MAC:      FormatMAC(hw),
		IPv4:     ip,
		Hostname: hostname,
		DNS:      fqdn,
		Bandwidth: Bandwidth{
			SentMB:     BytesToMB(sent),
			ReceivedMB: BytesToMB(recv),
		},
		Connections: establishedConnections(conns),
	}, nil
}

func establishedConnections(conns []Connection) []ConnectionRecord {
	out := []ConnectionRecord{}
	for _, c := range conns {
		if c.Status != statusEstablished {
			continue
		}
		rec := ConnectionRecord{
			State:     c.Status,
			LocalIP:   c.LocalIP,
			LocalPort: c.LocalPort,
			RemoteIP:  NotAvailable,
			PID:       c.PID,
		}
		if c.RemoteIP != "" {
			rec.RemoteIP = c.RemoteIP
			rec.RemotePort = Port{Number: c.RemotePort, Valid: true}
		}
		out = append(out, rec)
	}
	return out
}
