// Package hwid defines the hardware identity component tokens and the
// canonicalization step that turns an unordered set of them into a
// reproducible hash.
package hwid

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Labels of the known identity facets. At most one token per label is
// emitted per run; the gpu token may embed multiple identifiers joined
// by ";".
const (
	LabelBoard     = "brd"
	LabelCPUVendor = "cpuv"
	LabelCPUSig    = "cpus"
	LabelCPUISA    = "cpui"
	LabelGPU       = "gpu"
	LabelMachineID = "mid"
	LabelDMI       = "dmi"
	LabelRootFS    = "fs"
)

// Component is one normalized hardware facet.
type Component struct {
	Label string
	Value string
}

// Token renders the component in its canonical "label:value" form.
func (c Component) Token() string { return c.Label + ":" + c.Value }

// Canonicalize is the single deterministic contract of the tool: render
// each component as a token, sort the tokens lexicographically as plain
// strings, and hash the newline-joined result with SHA-256. For a fixed
// set of components the returned digest is invariant to the order in
// which the collectors ran.
func Canonicalize(comps []Component) (tokens []string, digest string) {
	tokens = make([]string, 0, len(comps))
	for _, c := range comps {
		tokens = append(tokens, c.Token())
	}
	sort.Strings(tokens)
	sum := sha256.Sum256([]byte(strings.Join(tokens, "\n")))
	return tokens, hex.EncodeToString(sum[:])
}
