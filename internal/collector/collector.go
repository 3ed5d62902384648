package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultConcurrency  = 4
	defaultCPUWindow    = time.Second
	defaultEnabledToken = "ON"

	// DefaultFirewallTimeout bounds the firewall status command when no
	// positive timeout is configured.
	DefaultFirewallTimeout = 5 * time.Second
)

// Collector assembles a Report from independent probes. A failing probe
// only affects its own field.
type Collector struct {
	src         Sources
	log         *log.Helper
	concurrency int
	cpuWindow   time.Duration
	firewall    FirewallCommand
	now         func() time.Time
	token       func() (string, error)
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *Collector) { c.log = log.NewHelper(log.With(l, "module", "collector")) }
}

// WithConcurrency bounds the number of probes running at once.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithCPUSampleWindow sets the utilisation sampling window.
func WithCPUSampleWindow(d time.Duration) Option {
	return func(c *Collector) { c.cpuWindow = d }
}

// WithFirewallCommand sets the firewall status query.
func WithFirewallCommand(fc FirewallCommand) Option {
	return func(c *Collector) { c.firewall = fc }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// WithTokenGenerator overrides the report token generator.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(c *Collector) { c.token = fn }
}

// New creates a Collector reading from src.
func New(src Sources, opts ...Option) *Collector {
	c := &Collector{
		src:         src,
		log:         log.NewHelper(log.With(log.GetLogger(), "module", "collector")),
		concurrency: defaultConcurrency,
		cpuWindow:   defaultCPUWindow,
		now:         time.Now,
		token:       NewToken,
	}
	for _, o := range opts {
		o(c)
	}
	if c.firewall.EnabledToken == "" {
		c.firewall.EnabledToken = defaultEnabledToken
	}
	if c.firewall.Timeout <= 0 {
		c.firewall.Timeout = DefaultFirewallTimeout
	}
	return c
}

// Collect runs every probe and returns the assembled report. It never
// fails: probe errors become error markers in their fields, and a failure
// outside the probes is recorded in Report.Error.
func (c *Collector) Collect(ctx context.Context) (rep *Report) {
	rep = &Report{
		CollectedAt: c.now(),
		Firewall:    FirewallNotAvailable,
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("report assembly aborted: %v", r)
			rep.Error = fmt.Sprintf("critical failure: %v", r)
		}
	}()

	token, err := c.token()
	if err != nil {
		c.log.Errorf("report token: %v", err)
		rep.Error = fmt.Sprintf("critical failure: %v", err)
	} else {
		rep.Token = token
	}

	host := sync.OnceValues(func() (HostStat, error) {
		if c.src.Host == nil {
			return HostStat{}, ErrUnavailable
		}
		return c.src.Host.Info(ctx)
	})
	fromHost := func(fn func(HostStat) string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			h, err := host()
			if err != nil {
				return "", err
			}
			return fn(h), nil
		}
	}

	probes := []func(){
		func() { rep.OS = capture(ctx, c, "os", fromHost(osDescriptor)) },
		func() {
			rep.OSVersion = capture(ctx, c, "os_version", fromHost(func(h HostStat) string { return h.KernelVersion }))
		},
		func() {
			rep.Architecture = capture(ctx, c, "architecture", fromHost(func(h HostStat) string { return h.KernelArch }))
		},
		func() { rep.Node = capture(ctx, c, "node", fromHost(func(h HostStat) string { return h.Hostname })) },
		func() {
			rep.Uptime = capture(ctx, c, "uptime", fromHost(func(h HostStat) string {
				return formatUptime(rep.CollectedAt, h.BootTime)
			}))
		},
		func() {
			rep.User = capture(ctx, c, "user", func(ctx context.Context) (string, error) {
				if c.src.Host == nil {
					return "", ErrUnavailable
				}
				return c.src.Host.User(ctx)
			})
		},
		func() {
			rep.ProcessCount = capture(ctx, c, "process_count", func(ctx context.Context) (int, error) {
				if c.src.Host == nil {
					return 0, ErrUnavailable
				}
				return collectProcessCount(ctx, c.src.Host)
			})
		},
		func() {
			rep.Processor = capture(ctx, c, "processor", func(ctx context.Context) (string, error) {
				if c.src.CPU == nil {
					return "", ErrUnavailable
				}
				return collectProcessor(ctx, c.src.CPU)
			})
		},
		func() {
			rep.PhysicalCores = capture(ctx, c, "physical_cores", func(ctx context.Context) (int, error) {
				if c.src.CPU == nil {
					return 0, ErrUnavailable
				}
				return c.src.CPU.Counts(ctx, false)
			})
		},
		func() {
			rep.LogicalCores = capture(ctx, c, "logical_cores", func(ctx context.Context) (int, error) {
				if c.src.CPU == nil {
					return 0, ErrUnavailable
				}
				return c.src.CPU.Counts(ctx, true)
			})
		},
		func() {
			rep.CPUUsage = capture(ctx, c, "cpu_usage", func(ctx context.Context) (float64, error) {
				if c.src.CPU == nil {
					return 0, ErrUnavailable
				}
				return collectCPUUsage(ctx, c.src.CPU, c.cpuWindow)
			})
		},
		func() {
			rep.Memory = capture(ctx, c, "memory", func(ctx context.Context) (MemoryInfo, error) {
				if c.src.Memory == nil {
					return MemoryInfo{}, ErrUnavailable
				}
				return collectMemoryInfo(ctx, c.src.Memory)
			})
		},
		func() { rep.Disks = capture(ctx, c, "disks", c.collectDisks) },
		func() {
			rep.Firmware = capture(ctx, c, "firmware", func(ctx context.Context) (FirmwareInfo, error) {
				if c.src.Firmware == nil {
					return FirmwareInfo{}, ErrUnavailable
				}
				return collectFirmwareInfo(ctx, c.src.Firmware)
			})
		},
		func() {
			rep.Network = capture(ctx, c, "network", func(ctx context.Context) (NetworkInfo, error) {
				if c.src.Network == nil {
					return NetworkInfo{}, ErrUnavailable
				}
				return collectNetworkInfo(ctx, c.src.Network)
			})
		},
		func() { rep.Software = capture(ctx, c, "software", c.collectSoftware) },
		func() {
			rep.Firewall = FirewallNotAvailable
			defer func() {
				if r := recover(); r != nil {
					c.log.Errorf("probe firewall panicked: %v", r)
				}
			}()
			rep.Firewall = c.collectFirewall(ctx)
		},
	}

	p := pool.New().WithMaxGoroutines(c.concurrency)
	for _, probe := range probes {
		p.Go(probe)
	}
	p.Wait()

	return rep
}

// capture runs one probe and converts an error or panic into a failed
// Field.
func capture[T any](ctx context.Context, c *Collector, name string, fn func(context.Context) (T, error)) (f Field[T]) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("probe %s panicked: %v", name, r)
			f = Fail[T](fmt.Errorf("probe panicked: %v", r))
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		c.log.Warnf("probe %s failed: %v", name, err)
		return Fail[T](err)
	}
	c.log.Debugf("probe %s done in %s", name, time.Since(start))
	return Ok(v)
}
