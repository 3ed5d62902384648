package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWMIKeyValue(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{`\\WS-042\root\cimv2:Win32_LogicalDisk.DeviceID="C:"`, "C:"},
		{`\\WS-042\root\cimv2:Win32_DiskPartition.DeviceID="Disk #0, Partition #1"`, "Disk #0, Partition #1"},
		{`Win32_Directory.Name="C:\\Users"`, `C:\Users`},
		{`Win32_LogicalDisk`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wmiKeyValue(tt.ref), tt.ref)
	}
}
