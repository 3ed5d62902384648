package collector

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok, err := NewToken()
		require.NoError(t, err)
		assert.Len(t, tok, 15)
		assert.Regexp(t, `^[a-zA-Z0-9]{15}$`, tok)
		seen[tok] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestProcessorLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Intel(R) Core(TM) i7-8650U CPU @ 1.90GHz", "Intel Core i7-8650 (Gen 86)"},
		{"Intel(R) Core(TM) i5-12400F", "Intel Core i5-1240 (Gen 12)"},
		{"Intel Core i9-0550", "Intel Core i9-0550 (Gen 9)"},
		{"intel core i3 530", "intel core i3 530"},
		{"Intel(R) Xeon(R) CPU E5-2680", "Intel(R) Xeon(R) CPU E5-2680"},
		{"AMD Ryzen 7 5800X 8-Core Processor", "AMD Ryzen 7 5800X 8-Core Processor"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ProcessorLabel(tt.raw))
		})
	}
}

func TestByteConversions(t *testing.T) {
	assert.Equal(t, uint64(3), BytesToGB(3*(1<<30)+500))
	assert.Equal(t, uint64(0), BytesToGB(1<<30-1))
	assert.Equal(t, uint64(2), BytesToMB(2*(1<<20)+1))
}

func TestCollectMemoryInfo(t *testing.T) {
	mi, err := collectMemoryInfo(context.Background(), &fakeMemory{stat: MemoryStat{
		Total:       16 << 30,
		Available:   6<<30 + 12345,
		Used:        10 << 30,
		UsedPercent: 62.5,
	}})
	require.NoError(t, err)
	assert.Equal(t, MemoryInfo{TotalGB: 16, AvailableGB: 6, UsedGB: 10, UsedPercent: 62.5}, mi)
}

func TestMediaType(t *testing.T) {
	tests := map[string]string{
		"Samsung SSD 860 EVO":   MediaSSD,
		"WDC PC SN730 NVMe":     MediaNVMe,
		"Generic M.2 Drive":     MediaNVMe,
		"ST1000DM010-2EP102":    MediaHDD,
		"Crucial ssd with nvme": MediaSSD,
		"":                      MediaHDD,
	}
	for model, want := range tests {
		assert.Equal(t, want, MediaType(model), model)
	}
}

func TestFormatMAC(t *testing.T) {
	hw := net.HardwareAddr{0x00, 0x1A, 0x2b, 0x3C, 0x4d, 0x5e}
	assert.Equal(t, "00:1a:2b:3c:4d:5e", FormatMAC(hw))
}

func TestFormatUptime(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	boot := now.Add(-(26*time.Hour + 3*time.Minute + 4*time.Second + 900*time.Millisecond))
	assert.Equal(t, "26h3m4s", formatUptime(now, boot))
	assert.Equal(t, "0s", formatUptime(now, time.Time{}))
	assert.Equal(t, "0s", formatUptime(now, now.Add(time.Minute)))
}

func TestCollectFirmwareInfo(t *testing.T) {
	fi, err := collectFirmwareInfo(context.Background(), &fakeFirmware{rec: FirmwareRecord{
		Manufacturer: " LENOVO ",
		Version:      "N2HET68W (1.51 )",
		Serial:       "PF1ABCDE",
		ReleaseDate:  "20230412000000.000000+000",
	}})
	require.NoError(t, err)
	assert.Equal(t, "LENOVO", fi.Manufacturer)
	assert.Equal(t, "N2HET68W (1.51 )", fi.Version)
	assert.Equal(t, "20230412000000", fi.ReleaseDate)

	fi, err = collectFirmwareInfo(context.Background(), &fakeFirmware{})
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, fi.ReleaseDate)

	_, err = collectFirmwareInfo(context.Background(), &fakeFirmware{err: errBoom})
	assert.ErrorIs(t, err, errBoom)
}
