package platform

import (
	"context"
	"fmt"

	"github.com/siderolabs/go-smbios/smbios"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// Firmware reads the BIOS descriptor from the SMBIOS tables.
type Firmware struct{}

func (Firmware) Firmware(context.Context) (collector.FirmwareRecord, error) {
	s, err := smbios.New()
	if err != nil {
		return collector.FirmwareRecord{}, fmt.Errorf("read smbios: %w", err)
	}
	return collector.FirmwareRecord{
		Manufacturer: s.BIOSInformation.Vendor,
		Version:      s.BIOSInformation.Version,
		Serial:       s.SystemInformation.SerialNumber,
		ReleaseDate:  s.BIOSInformation.ReleaseDate,
	}, nil
}
