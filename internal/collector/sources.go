package collector

import (
	"context"
	"net"
	"time"
)

// Sources bundles the OS accessors the probes read from. Production
// implementations live in internal/platform; tests substitute fakes.
type Sources struct {
	Host     HostSource
	CPU      CPUSource
	Memory   MemorySource
	Disks    DiskSource
	Mounts   MountSource
	Network  NetworkSource
	Software SoftwareSource
	Firmware FirmwareSource
	Commands CommandRunner
}

// HostStat is the subset of host information used by the report.
type HostStat struct {
	Platform        string
	PlatformVersion string
	KernelVersion   string
	KernelArch      string
	Hostname        string
	BootTime        time.Time
}

type HostSource interface {
	Info(ctx context.Context) (HostStat, error)
	User(ctx context.Context) (string, error)
	ProcessCount(ctx context.Context) (int, error)
}

type CPUSource interface {
	ModelName(ctx context.Context) (string, error)
	Counts(ctx context.Context, logical bool) (int, error)
	Percent(ctx context.Context, interval time.Duration) (float64, error)
}

// MemoryStat holds raw memory counters in bytes.
type MemoryStat struct {
	Total       uint64
	Available   uint64
	Used        uint64
	UsedPercent float64
}

type MemorySource interface {
	VirtualMemory(ctx context.Context) (MemoryStat, error)
}

// Drive is a physical disk as reported by the hardware query subsystem.
type Drive struct {
	Index  uint32
	Model  string
	Size   uint64
	Serial string
}

// Partition belongs to the drive whose Index equals DiskIndex.
type Partition struct {
	DiskIndex uint32
	Name      string
}

// LogicalDisk belongs to every partition whose Name is contained in
// ProviderID.
type LogicalDisk struct {
	DeviceID   string
	ProviderID string
}

// DiskSource is the primary disk topology source. Implementations return
// ErrUnavailable when the subsystem cannot be reached.
type DiskSource interface {
	Drives(ctx context.Context) ([]Drive, error)
	Partitions(ctx context.Context) ([]Partition, error)
	LogicalDisks(ctx context.Context) ([]LogicalDisk, error)
}

// Mount is a mounted filesystem from basic OS enumeration.
type Mount struct {
	Device     string
	Mountpoint string
	Fstype     string
	Opts       []string
}

type MountSource interface {
	Mounts(ctx context.Context) ([]Mount, error)
	TotalBytes(ctx context.Context, mountpoint string) (uint64, error)
}

// Connection is one entry of the OS socket table. An empty RemoteIP means
// the socket has no remote endpoint.
type Connection struct {
	Status     string
	LocalIP    string
	LocalPort  uint32
	RemoteIP   string
	RemotePort uint32
	PID        int32
}

type NetworkSource interface {
	HardwareAddr(ctx context.Context) (net.HardwareAddr, error)
	Hostname() (string, error)
	LookupIPv4(ctx context.Context, host string) (string, error)
	FQDN(ctx context.Context, host string) (string, error)
	IOCounters(ctx context.Context) (sent, recv uint64, err error)
	Connections(ctx context.Context) ([]Connection, error)
}

// Namespace is one registry-like collection of uninstall entries.
type Namespace interface {
	Name() string
	SubKeys(ctx context.Context) ([]string, error)
	DisplayName(ctx context.Context, subKey string) (string, error)
}

type SoftwareSource interface {
	Namespaces() []Namespace
}

// FirmwareRecord is the raw firmware descriptor.
type FirmwareRecord struct {
	Manufacturer string
	Version      string
	Serial       string
	ReleaseDate  string
}

type FirmwareSource interface {
	Firmware(ctx context.Context) (FirmwareRecord, error)
}

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
