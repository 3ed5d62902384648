package collector

import (
	"context"
	"sort"
	"strings"
)

// collectSoftware merges display names from every uninstall namespace.
// Unreadable namespaces and entries are skipped.
func (c *Collector) collectSoftware(ctx context.Context) (SoftwareList, error) {
	if c.src.Software == nil {
		return nil, ErrUnavailable
	}

	names := make(map[string]struct{})
	for _, ns := range c.src.Software.Namespaces() {
		keys, err := ns.SubKeys(ctx)
		if err != nil {
			c.log.Debugf("software namespace %s skipped: %v", ns.Name(), err)
			continue
		}
		for _, k := range keys {
			name, err := ns.DisplayName(ctx, k)
			if err != nil {
				continue
			}
			if name = strings.TrimSpace(name); name != "" {
				names[name] = struct{}{}
			}
		}
	}

	list := make(SoftwareList, 0, len(names))
	for n := range names {
		list = append(list, n)
	}
	sort.Strings(list)
	return list, nil
}
