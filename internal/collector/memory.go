package collector

import "context"

const (
	gib = 1 << 30
	mib = 1 << 20
)

// BytesToGB converts a byte count to whole gigabytes, truncating.
func BytesToGB(b uint64) uint64 { return b / gib }

// BytesToMB converts a byte count to whole megabytes, truncating.
func BytesToMB(b uint64) uint64 { return b / mib }

// collectMemoryInfo reads the virtual memory counters.
func collectMemoryInfo(ctx context.Context, src MemorySource) (MemoryInfo, error) {
	vm, err := src.VirtualMemory(ctx)
	if err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{
		TotalGB:     BytesToGB(vm.Total),
		AvailableGB: BytesToGB(vm.Available),
		UsedGB:      BytesToGB(vm.Used),
		UsedPercent: vm.UsedPercent,
	}, nil
}
