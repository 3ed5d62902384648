//go:build !windows

package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/jaypipes/ghw"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// ghwDisks maps block devices onto the drive/partition/logical-disk
// topology: each disk gets an index, and every mounted partition is a
// logical disk whose device identifier is its mount point.
type ghwDisks struct {
	load func() (*ghw.BlockInfo, error)
}

func newDiskSource() collector.DiskSource {
	return ghwDisks{load: sync.OnceValues(func() (*ghw.BlockInfo, error) {
		return ghw.Block(ghw.WithDisableWarnings())
	})}
}

func (g ghwDisks) block() (*ghw.BlockInfo, error) {
	info, err := g.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", collector.ErrUnavailable, err)
	}
	return info, nil
}

func (g ghwDisks) Drives(context.Context) ([]collector.Drive, error) {
	info, err := g.block()
	if err != nil {
		return nil, err
	}
	drives := make([]collector.Drive, 0, len(info.Disks))
	for i, d := range info.Disks {
		drives = append(drives, collector.Drive{
			Index:  uint32(i),
			Model:  known(d.Model),
			Size:   d.SizeBytes,
			Serial: known(d.SerialNumber),
		})
	}
	return drives, nil
}

func (g ghwDisks) Partitions(context.Context) ([]collector.Partition, error) {
	info, err := g.block()
	if err != nil {
		return nil, err
	}
	var parts []collector.Partition
	for i, d := range info.Disks {
		for _, p := range d.Partitions {
			parts = append(parts, collector.Partition{DiskIndex: uint32(i), Name: p.Name})
		}
	}
	return parts, nil
}

func (g ghwDisks) LogicalDisks(context.Context) ([]collector.LogicalDisk, error) {
	info, err := g.block()
	if err != nil {
		return nil, err
	}
	var out []collector.LogicalDisk
	for _, d := range info.Disks {
		for _, p := range d.Partitions {
			if p.MountPoint == "" {
				continue
			}
			out = append(out, collector.LogicalDisk{DeviceID: p.MountPoint, ProviderID: "/dev/" + p.Name})
		}
	}
	return out, nil
}

// known blanks ghw's placeholder for missing values.
func known(s string) string {
	if s == "unknown" {
		return ""
	}
	return s
}
