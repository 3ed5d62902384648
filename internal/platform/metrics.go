package platform

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// CPU reads processor counters.
type CPU struct{}

func (CPU) ModelName(ctx context.Context) (string, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", errors.New("no processor information")
	}
	return infos[0].ModelName, nil
}

func (CPU) Counts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (CPU) Percent(ctx context.Context, interval time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, errors.New("no utilisation sample")
	}
	return pcts[0], nil
}

// Memory reads virtual memory counters.
type Memory struct{}

func (Memory) VirtualMemory(ctx context.Context) (collector.MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return collector.MemoryStat{}, err
	}
	return collector.MemoryStat{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}, nil
}
