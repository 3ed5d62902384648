//go:build windows

package platform

import (
	"context"

	"github.com/yusufpapurcu/wmi"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

type win32DiskDrive struct {
	Index        uint32
	Model        string
	Size         uint64
	SerialNumber string
}

type win32DiskPartition struct {
	DiskIndex uint32
	Name      string
}

type win32LogicalDisk struct {
	DeviceID     string
	ProviderName string
}

type win32LogicalDiskToPartition struct {
	Antecedent string
	Dependent  string
}

// wmiDisks queries the disk topology through WMI.
type wmiDisks struct{}

func newDiskSource() collector.DiskSource { return wmiDisks{} }

func (wmiDisks) Drives(context.Context) ([]collector.Drive, error) {
	var dst []win32DiskDrive
	if err := wmi.Query("SELECT Index, Model, Size, SerialNumber FROM Win32_DiskDrive", &dst); err != nil {
		return nil, err
	}
	drives := make([]collector.Drive, len(dst))
	for i, d := range dst {
		drives[i] = collector.Drive{
			Index:  d.Index,
			Model:  d.Model,
			Size:   d.Size,
			Serial: d.SerialNumber,
		}
	}
	return drives, nil
}

func (wmiDisks) Partitions(context.Context) ([]collector.Partition, error) {
	var dst []win32DiskPartition
	if err := wmi.Query("SELECT DiskIndex, Name FROM Win32_DiskPartition", &dst); err != nil {
		return nil, err
	}
	parts := make([]collector.Partition, len(dst))
	for i, p := range dst {
		parts[i] = collector.Partition{DiskIndex: p.DiskIndex, Name: p.Name}
	}
	return parts, nil
}

// LogicalDisks reports one entry per partition association, with the
// partition name as provider identifier. Logical disks without an
// association (network drives) keep their ProviderName.
func (wmiDisks) LogicalDisks(context.Context) ([]collector.LogicalDisk, error) {
	var disks []win32LogicalDisk
	if err := wmi.Query("SELECT DeviceID, ProviderName FROM Win32_LogicalDisk", &disks); err != nil {
		return nil, err
	}
	var assoc []win32LogicalDiskToPartition
	if err := wmi.Query("SELECT Antecedent, Dependent FROM Win32_LogicalDiskToPartition", &assoc); err != nil {
		return nil, err
	}

	partitionsOf := make(map[string][]string)
	for _, a := range assoc {
		dev := wmiKeyValue(a.Dependent)
		partitionsOf[dev] = append(partitionsOf[dev], wmiKeyValue(a.Antecedent))
	}

	var out []collector.LogicalDisk
	for _, d := range disks {
		parts, ok := partitionsOf[d.DeviceID]
		if !ok {
			out = append(out, collector.LogicalDisk{DeviceID: d.DeviceID, ProviderID: d.ProviderName})
			continue
		}
		for _, p := range parts {
			out = append(out, collector.LogicalDisk{DeviceID: d.DeviceID, ProviderID: p})
		}
	}
	return out, nil
}
