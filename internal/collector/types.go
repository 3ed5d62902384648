package collector

import "time"

// Report is the complete inventory of the local host. Fields are emitted
// in declaration order; every field except Error is always present.
type Report struct {
	CollectedAt   time.Time           `json:"collected_at"`
	OS            Field[string]       `json:"os"`
	OSVersion     Field[string]       `json:"os_version"`
	Architecture  Field[string]       `json:"architecture"`
	User          Field[string]       `json:"user"`
	Node          Field[string]       `json:"node"`
	Processor     Field[string]       `json:"processor"`
	PhysicalCores Field[int]          `json:"physical_cores"`
	LogicalCores  Field[int]          `json:"logical_cores"`
	CPUUsage      Field[float64]      `json:"cpu_usage_percent"`
	Memory        Field[MemoryInfo]   `json:"memory"`
	Disks         Field[[]DiskRecord] `json:"disks"`
	Firmware      Field[FirmwareInfo] `json:"firmware"`
	Network       Field[NetworkInfo]  `json:"network"`
	Uptime        Field[string]       `json:"uptime"`
	Software      Field[SoftwareList] `json:"installed_software"`
	ProcessCount  Field[int]          `json:"process_count"`
	Firewall      FirewallStatus      `json:"firewall"`
	Token         string              `json:"token"`

	// Error is set only when assembly failed outside any probe.
	Error string `json:"error,omitempty"`
}

// MemoryInfo summarises physical memory in whole gigabytes.
type MemoryInfo struct {
	TotalGB     uint64  `json:"total_gb"`
	AvailableGB uint64  `json:"available_gb"`
	UsedGB      uint64  `json:"used_gb"`
	UsedPercent float64 `json:"used_percent"`
}

// Media types inferred for a disk.
const (
	MediaHDD  = "HDD"
	MediaSSD  = "SSD"
	MediaNVMe = "NVMe"
)

// DiskRecord describes one physical disk. Records produced by the
// filesystem fallback carry Device and Filesystem instead of Model and
// Serial.
type DiskRecord struct {
	Model        string   `json:"model,omitempty"`
	Device       string   `json:"device,omitempty"`
	CapacityGB   uint64   `json:"capacity_gb"`
	MediaType    string   `json:"media_type"`
	DriveLetters []string `json:"drive_letters"`
	Serial       string   `json:"serial,omitempty"`
	Filesystem   string   `json:"filesystem,omitempty"`
}

// FirmwareInfo holds the BIOS descriptor.
type FirmwareInfo struct {
	Manufacturer string `json:"manufacturer"`
	Version      string `json:"version"`
	Serial       string `json:"serial"`
	ReleaseDate  string `json:"release_date"`
}

// NetworkInfo summarises addressing, traffic and live connections.
type NetworkInfo struct {
	MAC         string             `json:"mac"`
	IPv4        string             `json:"ipv4"`
	Hostname    string             `json:"hostname"`
	DNS         string             `json:"dns"`
	Bandwidth   Bandwidth          `json:"bandwidth"`
	Connections []ConnectionRecord `json:"connections"`
}

// Bandwidth holds cumulative traffic counters in whole megabytes.
type Bandwidth struct {
	SentMB     uint64 `json:"sent_mb"`
	ReceivedMB uint64 `json:"received_mb"`
}

// ConnectionRecord is one established socket.
type ConnectionRecord struct {
	State      string `json:"state"`
	LocalIP    string `json:"local_ip"`
	LocalPort  uint32 `json:"local_port"`
	RemoteIP   string `json:"remote_ip"`
	RemotePort Port   `json:"remote_port"`
	PID        int32  `json:"pid"`
}

// Port is a port number that may be absent.
type Port struct {
	Number uint32
	Valid  bool
}

func (p Port) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return marshal(NotAvailable)
	}
	return marshal(p.Number)
}

// SoftwareList is the sorted set of installed application names.
type SoftwareList []string

func (s SoftwareList) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return marshal(NotDetected)
	}
	return marshal([]string(s))
}

// FirewallStatus is the classified firewall state.
type FirewallStatus string

const (
	FirewallEnabled      FirewallStatus = "enabled"
	FirewallDisabled     FirewallStatus = "disabled"
	FirewallNotAvailable FirewallStatus = NotAvailable
)
