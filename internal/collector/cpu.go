package collector

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var intelCoreRe = regexp.MustCompile(`i(\d)-?(\d{3,4})\w*`)

// ProcessorLabel turns an Intel Core processor name into a label with its
// estimated generation. Other names are returned unchanged.
func ProcessorLabel(raw string) string {
	if !strings.Contains(strings.ToLower(raw), "intel") {
		return raw
	}
	m := intelCoreRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	family, model := m[1], m[2]

	gen := family
	if n, err := strconv.Atoi(model[:2]); err == nil && n > 5 {
		gen = model[:2]
	}
	return fmt.Sprintf("Intel Core i%s-%s (Gen %s)", family, model, gen)
}

func collectProcessor(ctx context.Context, src CPUSource) (string, error) {
	name, err := src.ModelName(ctx)
	if err != nil {
		return "", err
	}
	return ProcessorLabel(strings.TrimSpace(name)), nil
}

// collectCPUUsage blocks for one sampling window.
func collectCPUUsage(ctx context.Context, src CPUSource, window time.Duration) (float64, error) {
	return src.Percent(ctx, window)
}
