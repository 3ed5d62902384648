//go:build !windows

package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/jaypipes/ghw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

func TestGHWDisks(t *testing.T) {
	info := &ghw.BlockInfo{Disks: []*ghw.Disk{
		{
			Name:         "nvme0n1",
			Model:        "Samsung SSD 980 PRO",
			SizeBytes:    1 << 40,
			SerialNumber: "S5GX",
			Partitions: []*ghw.Partition{
				{Name: "nvme0n1p1", MountPoint: "/boot/efi"},
				{Name: "nvme0n1p2", MountPoint: "/"},
				{Name: "nvme0n1p3"},
			},
		},
		{Name: "sda", Model: "unknown", SerialNumber: "unknown"},
	}}
	src := ghwDisks{load: func() (*ghw.BlockInfo, error) { return info, nil }}
	ctx := context.Background()

	drives, err := src.Drives(ctx)
	require.NoError(t, err)
	assert.Equal(t, []collector.Drive{
		{Index: 0, Model: "Samsung SSD 980 PRO", Size: 1 << 40, Serial: "S5GX"},
		{Index: 1},
	}, drives)

	parts, err := src.Partitions(ctx)
	require.NoError(t, err)
	assert.Len(t, parts, 3)
	assert.Equal(t, collector.Partition{DiskIndex: 0, Name: "nvme0n1p2"}, parts[1])

	logical, err := src.LogicalDisks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []collector.LogicalDisk{
		{DeviceID: "/boot/efi", ProviderID: "/dev/nvme0n1p1"},
		{DeviceID: "/", ProviderID: "/dev/nvme0n1p2"},
	}, logical)
}

func TestGHWDisksUnavailable(t *testing.T) {
	src := ghwDisks{load: func() (*ghw.BlockInfo, error) { return nil, errors.New("no sysfs") }}

	_, err := src.Drives(context.Background())
	assert.ErrorIs(t, err, collector.ErrUnavailable)
}
