package hwinfo

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// smiUUIDPattern matches the UUID column of `nvidia-smi -L` output, e.g.
// "GPU 0: NVIDIA A100 (UUID: GPU-9fb3f44e-...)".
var smiUUIDPattern = regexp.MustCompile(`(?i)UUID:\s*(GPU-[0-9a-fA-F-]+)`)

// GPUUUIDs returns the sorted, deduplicated, lower-cased UUIDs of the
// attached NVIDIA GPUs. The driver's proc tree is the primary source;
// when it is absent or yields nothing, the nvidia-smi listing is parsed
// instead. An empty slice means no GPU identity could be determined.
func (s *System) GPUUUIDs() []string {
	uuids := s.driverGPUUUIDs()
	if len(uuids) == 0 {
		uuids = s.smiGPUUUIDs()
	}
	return dedupSort(uuids)
}

// driverGPUUUIDs scans the per-device information files under the NVIDIA
// driver's proc directory for "GPU UUID:" lines.
func (s *System) driverGPUUUIDs() []string {
	entries, err := os.ReadDir(s.path("proc/driver/nvidia/gpus"))
	if err != nil {
		return nil
	}
	var uuids []string
	for _, e := range entries {
		info := s.readFile("proc/driver/nvidia/gpus/" + e.Name() + "/information")
		for _, line := range strings.Split(info, "\n") {
			l := strings.ToLower(strings.TrimSpace(line))
			if !strings.Contains(l, "gpu uuid:") {
				continue
			}
			if p := strings.Index(l, "gpu-"); p >= 0 {
				uuids = append(uuids, l[p:])
			}
		}
	}
	return uuids
}

// smiGPUUUIDs invokes the diagnostic command. Candidates whose GPU-
// suffix is not a well-formed UUID are discarded.
func (s *System) smiGPUUUIDs() []string {
	out, err := s.Runner.Run("nvidia-smi", "-L")
	if err != nil {
		return nil
	}
	var uuids []string
	for _, line := range strings.Split(out, "\n") {
		m := smiUUIDPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v := strings.ToLower(m[1])
		if _, err := uuid.Parse(strings.TrimPrefix(v, "gpu-")); err != nil {
			continue
		}
		uuids = append(uuids, v)
	}
	return uuids
}

// IsTegra reports whether the device tree identifies a Tegra-class SoC.
// Tegra boards expose no per-GPU UUID interface, so storage identity is
// used for them instead.
func (s *System) IsTegra() bool {
	// compatible is a NUL-separated string list, e.g.
	// "nvidia,p3450-0000\x00nvidia,jetson-nano\x00nvidia,tegra210".
	return strings.Contains(strings.ToLower(s.readFile("proc/device-tree/compatible")), "tegra")
}

// EMMCCID returns the hardware CID of the first non-removable eMMC block
// device, lexicographically smallest name first. "" means no CID is
// readable.
func (s *System) EMMCCID() string {
	entries, err := os.ReadDir(s.path("sys/block"))
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "mmcblk") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.TrimSpace(s.readFile("sys/block/"+name+"/removable")) != "0" {
			continue
		}
		if cid := s.readFirstLine("sys/block/" + name + "/device/cid"); cid != "" {
			return cid
		}
	}
	return ""
}

func dedupSort(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
