// Package platform implements the collector data sources on top of
// gopsutil, WMI, ghw, SMBIOS and the registry.
package platform

import "github.com/go-tangra/go-tangra-sysreport/internal/collector"

// Sources returns the accessors for the running operating system.
func Sources() collector.Sources {
	return collector.Sources{
		Host:     Host{},
		CPU:      CPU{},
		Memory:   Memory{},
		Disks:    newDiskSource(),
		Mounts:   Mounts{},
		Network:  Network{},
		Software: newSoftwareSource(),
		Firmware: Firmware{},
		Commands: Exec{},
	}
}
