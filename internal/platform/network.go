package platform

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// Network reads interface, resolver and socket table information.
type Network struct{}

// HardwareAddr returns the address of the first non-loopback interface
// that has one, preferring interfaces that are up.
func (Network) HardwareAddr(context.Context) (net.HardwareAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var fallback net.HardwareAddr
	for _, i := range ifaces {
		if i.Flags&net.FlagLoopback != 0 || len(i.HardwareAddr) < 6 || isZero(i.HardwareAddr) {
			continue
		}
		if i.Flags&net.FlagUp != 0 {
			return i.HardwareAddr, nil
		}
		if fallback == nil {
			fallback = i.HardwareAddr
		}
	}
	if fallback == nil {
		return nil, errors.New("no hardware address found")
	}
	return fallback, nil
}

func isZero(hw net.HardwareAddr) bool {
	for _, b := range hw {
		if b != 0 {
			return false
		}
	}
	return true
}

func (Network) Hostname() (string, error) {
	return os.Hostname()
}

func (Network) LookupIPv4(ctx context.Context, host string) (string, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		if ip4 := a.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", fmt.Errorf("no IPv4 address for %s", host)
}

// FQDN returns the first dotted name the host's addresses resolve back to,
// or host itself.
func (Network) FQDN(ctx context.Context, host string) (string, error) {
	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return host, nil
	}
	for _, a := range addrs {
		names, err := net.DefaultResolver.LookupAddr(ctx, a)
		if err != nil {
			continue
		}
		for _, n := range names {
			n = strings.TrimSuffix(n, ".")
			if strings.Contains(n, ".") {
				return n, nil
			}
		}
	}
	return host, nil
}

func (Network) IOCounters(ctx context.Context) (uint64, uint64, error) {
	stats, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	if len(stats) == 0 {
		return 0, 0, errors.New("no interface counters")
	}
	return stats[0].BytesSent, stats[0].BytesRecv, nil
}

func (Network) Connections(ctx context.Context) ([]collector.Connection, error) {
	conns, err := psnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return nil, err
	}
	out := make([]collector.Connection, len(conns))
	for i, c := range conns {
		out[i] = collector.Connection{
			Status:     c.Status,
			LocalIP:    c.Laddr.IP,
			LocalPort:  c.Laddr.Port,
			RemoteIP:   c.Raddr.IP,
			RemotePort: c.Raddr.Port,
			PID:        c.Pid,
		}
	}
	return out, nil
}
