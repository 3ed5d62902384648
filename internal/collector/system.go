package collector

import (
	"context"
	"strings"
	"time"
)

func osDescriptor(h HostStat) string {
	return strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
}

// formatUptime renders the time since boot truncated to whole seconds.
func formatUptime(now, boot time.Time) string {
	if boot.IsZero() || boot.After(now) {
		return time.Duration(0).String()
	}
	return now.Sub(boot).Truncate(time.Second).String()
}

func collectProcessCount(ctx context.Context, src HostSource) (int, error) {
	return src.ProcessCount(ctx)
}
