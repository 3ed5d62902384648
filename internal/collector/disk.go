package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MediaType infers the disk media type from its model string.
func MediaType(model string) string {
	m := strings.ToUpper(model)
	switch {
	case strings.Contains(m, "SSD"):
		return MediaSSD
	case strings.Contains(m, "NVME"), strings.Contains(m, "M.2"):
		return MediaNVMe
	default:
		return MediaHDD
	}
}

// collectDisks joins drives, partitions and logical disks into one record
// per physical disk. When the hardware source is unreachable or reports no
// drives, it falls back to the mounted filesystems.
func (c *Collector) collectDisks(ctx context.Context) ([]DiskRecord, error) {
	disks, err := c.diskTopology(ctx)
	if err == nil && len(disks) > 0 {
		return disks, nil
	}
	if err != nil {
		c.log.Warnf("disk topology unavailable, using filesystem view: %v", err)
	} else {
		c.log.Warn("disk topology reported no drives, using filesystem view")
	}

	fallback, ferr := c.mountedDisks(ctx)
	if ferr != nil {
		return nil, errors.Join(err, fmt.Errorf("filesystem view: %w", ferr))
	}
	return fallback, nil
}

func (c *Collector) diskTopology(ctx context.Context) ([]DiskRecord, error) {
	src := c.src.Disks
	if src == nil {
		return nil, ErrUnavailable
	}

	drives, err := src.Drives(ctx)
	if err != nil {
		return nil, fmt.Errorf("drives: %w", err)
	}
	parts, err := src.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("partitions: %w", err)
	}
	logical, err := src.LogicalDisks(ctx)
	if err != nil {
		return nil, fmt.Errorf("logical disks: %w", err)
	}

	disks := make([]DiskRecord, 0, len(drives))
	for _, d := range drives {
		rec, err := guard(func() DiskRecord { return buildDiskRecord(d, parts, logical) })
		if err != nil {
			c.log.Warnf("skipping disk %d: %v", d.Index, err)
			continue
		}
		disks = append(disks, rec)
	}
	return disks, nil
}

// guard runs fn, converting a panic into an error.
func guard[T any](fn func() T) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(), nil
}

// buildDiskRecord joins one drive with its partitions and logical disks. A
// drive without a model is kept and classified as HDD.
func buildDiskRecord(d Drive, parts []Partition, logical []LogicalDisk) DiskRecord {
	letters := []string{}
	seen := make(map[string]bool)
	for _, p := range parts {
		if p.DiskIndex != d.Index || p.Name == "" {
			continue
		}
		for _, l := range logical {
			if strings.Contains(l.ProviderID, p.Name) && !seen[l.DeviceID] {
				seen[l.DeviceID] = true
				letters = append(letters, l.DeviceID)
			}
		}
	}

	model := strings.TrimSpace(d.Model)
	if model == "" {
		model = NotAvailable
	}
	serial := strings.TrimSpace(d.Serial)
	if serial == "" {
		serial = NotAvailable
	}

	return DiskRecord{
		Model:        model,
		CapacityGB:   BytesToGB(d.Size),
		MediaType:    MediaType(d.Model),
		DriveLetters: letters,
		Serial:       serial,
	}
}

func (c *Collector) mountedDisks(ctx context.Context) ([]DiskRecord, error) {
	src := c.src.Mounts
	if src == nil {
		return nil, ErrUnavailable
	}

	mounts, err := src.Mounts(ctx)
	if err != nil {
		return nil, err
	}

	disks := make([]DiskRecord, 0, len(mounts))
	for _, m := range mounts {
		if m.Mountpoint == "" {
			continue
		}
		total, err := src.TotalBytes(ctx, m.Mountpoint)
		if err != nil {
			c.log.Debugf("skipping mount %s: %v", m.Mountpoint, err)
			continue
		}

		media := MediaHDD
		if strings.Contains(strings.ToLower(strings.Join(m.Opts, ",")), "ssd") {
			media = MediaSSD
		}
		disks = append(disks, DiskRecord{
			Device:       m.Device,
			CapacityGB:   BytesToGB(total),
			MediaType:    media,
			DriveLetters: []string{m.Mountpoint},
			Filesystem:   m.Fstype,
		})
	}
	return disks, nil
}
