package collector

import (
	"context"
	"strings"
	"time"
)

// FirewallCommand describes how to query the firewall state.
type FirewallCommand struct {
	Name         string
	Args         []string
	EnabledToken string
	Timeout      time.Duration
}

// ClassifyFirewall maps command output to a firewall status.
func ClassifyFirewall(output, enabledToken string) FirewallStatus {
	if strings.Contains(output, enabledToken) {
		return FirewallEnabled
	}
	return FirewallDisabled
}

// collectFirewall never blocks longer than the command timeout; a failed
// or timed out command yields FirewallNotAvailable.
func (c *Collector) collectFirewall(ctx context.Context) FirewallStatus {
	fc := c.firewall
	if c.src.Commands == nil || fc.Name == "" {
		return FirewallNotAvailable
	}

	timeout := fc.Timeout
	if timeout <= 0 {
		timeout = DefaultFirewallTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := c.src.Commands.Run(ctx, fc.Name, fc.Args...)
	if err != nil {
		c.log.Warnf("firewall status command failed: %v", err)
		return FirewallNotAvailable
	}
	if ctx.Err() != nil {
		return FirewallNotAvailable
	}
	return ClassifyFirewall(string(out), fc.EnabledToken)
}
