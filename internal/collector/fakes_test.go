package collector

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

var errBoom = errors.New("boom")

type fakeHost struct {
	info    HostStat
	infoErr error
	user    string
	procs   int
	panics  bool
}

func (f *fakeHost) Info(context.Context) (HostStat, error) { return f.info, f.infoErr }

func (f *fakeHost) User(context.Context) (string, error) {
	if f.panics {
		panic("user lookup exploded")
	}
	return f.user, nil
}

func (f *fakeHost) ProcessCount(context.Context) (int, error) { return f.procs, nil }

type fakeCPU struct {
	model   string
	phys    int
	logical int
	percent float64
	err     error
}

func (f *fakeCPU) ModelName(context.Context) (string, error) { return f.model, f.err }

func (f *fakeCPU) Counts(_ context.Context, logical bool) (int, error) {
	if logical {
		return f.logical, f.err
	}
	return f.phys, f.err
}

func (f *fakeCPU) Percent(context.Context, time.Duration) (float64, error) { return f.percent, f.err }

type fakeMemory struct {
	stat MemoryStat
	err  error
}

func (f *fakeMemory) VirtualMemory(context.Context) (MemoryStat, error) { return f.stat, f.err }

type fakeDisks struct {
	drives  []Drive
	parts   []Partition
	logical []LogicalDisk
	err     error
}

func (f *fakeDisks) Drives(context.Context) ([]Drive, error)             { return f.drives, f.err }
func (f *fakeDisks) Partitions(context.Context) ([]Partition, error)     { return f.parts, nil }
func (f *fakeDisks) LogicalDisks(context.Context) ([]LogicalDisk, error) { return f.logical, nil }

type fakeMounts struct {
	mounts []Mount
	sizes  map[string]uint64
	err    error
}

func (f *fakeMounts) Mounts(context.Context) ([]Mount, error) { return f.mounts, f.err }

func (f *fakeMounts) TotalBytes(_ context.Context, mountpoint string) (uint64, error) {
	size, ok := f.sizes[mountpoint]
	if !ok {
		return 0, errBoom
	}
	return size, nil
}

type fakeNetwork struct {
	hw       net.HardwareAddr
	hostname string
	ip       string
	fqdn     string
	sent     uint64
	recv     uint64
	conns    []Connection
	connErr  error
}

func (f *fakeNetwork) HardwareAddr(context.Context) (net.HardwareAddr, error) { return f.hw, nil }
func (f *fakeNetwork) Hostname() (string, error)                               { return f.hostname, nil }
func (f *fakeNetwork) LookupIPv4(context.Context, string) (string, error)      { return f.ip, nil }
func (f *fakeNetwork) FQDN(context.Context, string) (string, error)            { return f.fqdn, nil }

func (f *fakeNetwork) IOCounters(context.Context) (uint64, uint64, error) {
	return f.sent, f.recv, nil
}

func (f *fakeNetwork) Connections(context.Context) ([]Connection, error) { return f.conns, f.connErr }

type fakeNamespace struct {
	name    string
	entries map[string]string
	err     error
}

func (f *fakeNamespace) Name() string { return f.name }

func (f *fakeNamespace) SubKeys(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeNamespace) DisplayName(_ context.Context, key string) (string, error) {
	name := f.entries[key]
	if name == "<unreadable>" {
		return "", errBoom
	}
	return name, nil
}

type fakeSoftware []Namespace

func (f fakeSoftware) Namespaces() []Namespace { return f }

type fakeFirmware struct {
	rec FirmwareRecord
	err error
}

func (f *fakeFirmware) Firmware(context.Context) (FirmwareRecord, error) { return f.rec, f.err }

type fakeRunner struct {
	out   string
	err   error
	block bool
}

func (f *fakeRunner) Run(ctx context.Context, _ string, _ ...string) ([]byte, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(f.out), f.err
}

func quietLogger() Option {
	return WithLogger(log.NewStdLogger(io.Discard))
}

func newTestCollector(src Sources, opts ...Option) *Collector {
	return New(src, append([]Option{quietLogger()}, opts...)...)
}
