package hwinfo

import (
	"sort"
	"strings"
)

// CPUIdentity is the normalized identity of the first processor entry in
// /proc/cpuinfo.
type CPUIdentity struct {
	Vendor    string // vendor_id (x86) or implementer code (ARM)
	Signature string // family-model-stepping or arch-variant-part-revision
	ISA       string // filtered, sorted, comma-joined feature flags; may be empty
}

// cpuStrategy describes one architecture's cpuinfo shape: which keys it
// requires, where the vendor and flag line live, which flags are retained
// and how the signature is assembled. Strategies are tried in order and
// the first fully satisfied one wins, so supporting another architecture
// is a new entry, not a new branch.
type cpuStrategy struct {
	name      string
	vendorKey string
	sigKeys   []string // joined with "-" in order
	flagsKey  string
	keepFlags map[string]bool
}

var cpuStrategies = []cpuStrategy{
	{
		name:      "x86",
		vendorKey: "vendor_id",
		sigKeys:   []string{"cpufamily", "model", "stepping"},
		flagsKey:  "flags",
		keepFlags: map[string]bool{
			"sse2": true, "sse4_2": true, "avx": true, "avx2": true, "avx512f": true,
		},
	},
	{
		name:      "arm",
		vendorKey: "cpuimplementer",
		sigKeys:   []string{"cpuarchitecture", "cpuvariant", "cpupart", "cpurevision"},
		flagsKey:  "features",
		keepFlags: map[string]bool{
			"asimd": true, "aes": true, "crc32": true, "sha1": true,
			"sha2": true, "atomics": true, "asimdrdm": true,
		},
	},
}

// CPU parses the first processor block of /proc/cpuinfo. It returns nil
// when the file is unreadable or no known architecture profile is fully
// satisfied.
func (s *System) CPU() *CPUIdentity {
	return parseCPUInfo(s.readFile("proc/cpuinfo"))
}

func parseCPUInfo(txt string) *CPUIdentity {
	if txt == "" {
		return nil
	}
	fields := make(map[string]string)
	for _, line := range strings.Split(txt, "\n") {
		if strings.TrimSpace(line) == "" {
			break // first processor entry only
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[normalize(k)] = strings.ToLower(strings.TrimSpace(v))
	}
	for _, st := range cpuStrategies {
		if id := st.extract(fields); id != nil {
			return id
		}
	}
	return nil
}

// extract returns the identity if every field the strategy requires is
// present, nil otherwise.
func (st cpuStrategy) extract(fields map[string]string) *CPUIdentity {
	vendor := normalize(fields[st.vendorKey])
	if vendor == "" {
		return nil
	}
	sig := make([]string, 0, len(st.sigKeys))
	for _, k := range st.sigKeys {
		v := normalize(fields[k])
		if v == "" {
			return nil
		}
		sig = append(sig, v)
	}
	return &CPUIdentity{
		Vendor:    vendor,
		Signature: strings.Join(sig, "-"),
		ISA:       filterFlags(fields[st.flagsKey], st.keepFlags),
	}
}

// filterFlags keeps only the allow-listed flags, deduplicated, sorted and
// comma-joined. The allow-list keeps the identifier stable across kernel
// updates that reorder or extend the flag line.
func filterFlags(flags string, keep map[string]bool) string {
	present := make(map[string]bool)
	for _, f := range strings.Fields(flags) {
		if keep[f] {
			present[f] = true
		}
	}
	if len(present) == 0 {
		return ""
	}
	out := make([]string, 0, len(present))
	for f := range present {
		out = append(out, f)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
