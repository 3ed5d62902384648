package platform

import "strings"

// wmiKeyValue extracts the key value from a WMI object reference such as
// \\HOST\root\cimv2:Win32_LogicalDisk.DeviceID="C:".
func wmiKeyValue(ref string) string {
	i := strings.LastIndex(ref, `="`)
	if i < 0 {
		return ""
	}
	v := ref[i+2:]
	if j := strings.IndexByte(v, '"'); j >= 0 {
		v = v[:j]
	}
	return strings.ReplaceAll(v, `\\`, `\`)
}
