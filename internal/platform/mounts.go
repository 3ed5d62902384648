package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// Mounts enumerates mounted filesystems.
type Mounts struct{}

func (Mounts) Mounts(ctx context.Context) ([]collector.Mount, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	mounts := make([]collector.Mount, len(parts))
	for i, p := range parts {
		mounts[i] = collector.Mount{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			Opts:       p.Opts,
		}
	}
	return mounts, nil
}

func (Mounts) TotalBytes(ctx context.Context, mountpoint string) (uint64, error) {
	u, err := disk.UsageWithContext(ctx, mountpoint)
	if err != nil {
		return 0, err
	}
	return u.Total, nil
}
