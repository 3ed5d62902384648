package collector

import (
	"context"
	"strings"
)

func collectFirmwareInfo(ctx context.Context, src FirmwareSource) (FirmwareInfo, error) {
	fw, err := src.Firmware(ctx)
	if err != nil {
		return FirmwareInfo{}, err
	}

	date := NotAvailable
	if fw.ReleaseDate != "" {
		date, _, _ = strings.Cut(fw.ReleaseDate, ".")
	}
	return FirmwareInfo{
		Manufacturer: strings.TrimSpace(fw.Manufacturer),
		Version:      strings.TrimSpace(fw.Version),
		Serial:       strings.TrimSpace(fw.Serial),
		ReleaseDate:  date,
	}, nil
}
