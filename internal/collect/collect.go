// Package collect runs the hardware identity collectors for a deployment
// profile and assembles the component list that feeds the HWID hash.
package collect

import (
	"fmt"
	"strings"

	"github.com/tusharlock10/sentinel-hwreq/internal/hwid"
	"github.com/tusharlock10/sentinel-hwreq/internal/hwinfo"
)

// Profile selects which identity facets are mandatory. Board and CPU
// identity are required by every profile.
type Profile string

const (
	// ProfileGPU is the full desktop/server and embedded profile: at
	// least one accelerator/storage identity is required on top of board
	// and CPU.
	ProfileGPU Profile = "gpu"
	// ProfileMachine is the minimal profile: the machine/OS facets
	// (machine-id, DMI identity, root filesystem UUID) are best-effort
	// and any subset, including none, is accepted.
	ProfileMachine Profile = "machine"
)

// Valid reports whether p names a known profile.
func (p Profile) Valid() bool {
	return p == ProfileGPU || p == ProfileMachine
}

// MissingIdentityError reports that a mandatory identity facet could not
// be determined on this machine. It maps to the reserved fatal exit code.
type MissingIdentityError struct {
	Facet  string
	Detail string
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("missing %s identity: %s", e.Facet, e.Detail)
}

// Result is the collected identity set for one run.
type Result struct {
	Components []hwid.Component
	GPUCount   int // number of GPU UUIDs found; meaningful only under ProfileGPU
}

// Run executes the collectors sequentially in a fixed order. The order
// carries no meaning: the canonicalizer sorts tokens before hashing.
func Run(sys *hwinfo.System, profile Profile) (*Result, error) {
	res := &Result{}

	board := sys.BoardName()
	if board == "" {
		return nil, &MissingIdentityError{
			Facet:  "board",
			Detail: "/sys/class/dmi/id/board_name unreadable and not WSL",
		}
	}
	res.Components = append(res.Components, hwid.Component{Label: hwid.LabelBoard, Value: board})

	cpu := sys.CPU()
	if cpu == nil {
		return nil, &MissingIdentityError{
			Facet:  "CPU",
			Detail: "/proc/cpuinfo missing or unparsable",
		}
	}
	res.Components = append(res.Components,
		hwid.Component{Label: hwid.LabelCPUVendor, Value: cpu.Vendor},
		hwid.Component{Label: hwid.LabelCPUSig, Value: cpu.Signature},
	)
	if cpu.ISA != "" {
		res.Components = append(res.Components, hwid.Component{Label: hwid.LabelCPUISA, Value: cpu.ISA})
	}

	switch profile {
	case ProfileGPU:
		if err := collectAccelerator(sys, res); err != nil {
			return nil, err
		}
	case ProfileMachine:
		collectMachine(sys, res)
	default:
		return nil, fmt.Errorf("unknown profile %q", profile)
	}

	return res, nil
}

// collectAccelerator walks the accelerator/storage provider chain: NVIDIA
// GPU UUIDs first, then the eMMC CID on Tegra-class boards. At least one
// identity is mandatory under ProfileGPU.
func collectAccelerator(sys *hwinfo.System, res *Result) error {
	uuids := sys.GPUUUIDs()
	if len(uuids) > 0 {
		res.Components = append(res.Components, hwid.Component{
			Label: hwid.LabelGPU,
			Value: strings.Join(uuids, ";"),
		})
		res.GPUCount = len(uuids)
		return nil
	}
	if sys.IsTegra() {
		if cid := sys.EMMCCID(); cid != "" {
			res.Components = append(res.Components, hwid.Component{Label: hwid.LabelGPU, Value: cid})
			return nil
		}
		return &MissingIdentityError{
			Facet:  "accelerator/storage",
			Detail: "Tegra board with no readable eMMC CID",
		}
	}
	return &MissingIdentityError{
		Facet:  "accelerator/storage",
		Detail: "no NVIDIA GPU UUID found (need at least one GPU)",
	}
}

// collectMachine gathers the optional machine/OS facets. Absence is never
// an error here.
func collectMachine(sys *hwinfo.System, res *Result) {
	if v := sys.MachineID(); v != "" {
		res.Components = append(res.Components, hwid.Component{Label: hwid.LabelMachineID, Value: v})
	}
	if v := sys.DMIIdentity(); v != "" {
		res.Components = append(res.Components, hwid.Component{Label: hwid.LabelDMI, Value: v})
	}
	if v := sys.RootFSUUID(); v != "" {
		res.Components = append(res.Components, hwid.Component{Label: hwid.LabelRootFS, Value: v})
	}
}
