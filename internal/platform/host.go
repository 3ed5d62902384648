package platform

import (
	"context"
	"fmt"
	"os/user"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// Host reads host information and the process table.
type Host struct{}

func (Host) Info(ctx context.Context) (collector.HostStat, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return collector.HostStat{}, err
	}
	return collector.HostStat{
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		Hostname:        info.Hostname,
		BootTime:        time.Unix(int64(info.BootTime), 0),
	}, nil
}

func (Host) User(context.Context) (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	return u.Username, nil
}

func (Host) ProcessCount(ctx context.Context) (int, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return len(pids), nil
}
