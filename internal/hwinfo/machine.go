package hwinfo

import (
	"os"
	"path/filepath"
	"strings"
)

// MachineID returns the persistent systemd machine identifier, or "".
func (s *System) MachineID() string {
	return s.readFirstLine("etc/machine-id")
}

// DMIIdentity returns the DMI product UUID and board serial joined by
// ";". Either half may be absent; "" means neither was readable.
func (s *System) DMIIdentity() string {
	var parts []string
	if v := s.readFirstLine("sys/class/dmi/id/product_uuid"); v != "" {
		parts = append(parts, v)
	}
	if v := s.readFirstLine("sys/class/dmi/id/board_serial"); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ";")
}

// RootFSUUID resolves the filesystem UUID of the device mounted at "/":
// the root device is taken from the active mount table, then reverse-
// matched against the UUID-keyed symlinks in /dev/disk/by-uuid. "" means
// the device could not be resolved.
func (s *System) RootFSUUID() string {
	device := s.rootDevice()
	if device == "" {
		return ""
	}
	entries, err := os.ReadDir(s.path("dev/disk/by-uuid"))
	if err != nil {
		return ""
	}
	base := filepath.Base(device)
	for _, e := range entries {
		target, err := os.Readlink(s.path("dev/disk/by-uuid/" + e.Name()))
		if err != nil {
			continue
		}
		// Targets are relative symlinks like ../../sda1; matching on the
		// device base name makes the link depth irrelevant.
		if filepath.Base(target) == base {
			return strings.ToLower(e.Name())
		}
	}
	return ""
}

// rootDevice returns the device node mounted at "/". The last matching
// mount table entry wins, mirroring how the kernel shadows overmounts.
func (s *System) rootDevice() string {
	device := ""
	for _, line := range strings.Split(s.readFile("proc/self/mounts"), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "/" {
			device = fields[0]
		}
	}
	return device
}
