// Package request builds and emits the license request document.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Version is the license request schema version.
const Version = 1

// Env is descriptive host metadata. It is reported for operator context
// only and is never part of the HWID hash.
type Env struct {
	Uname        string `json:"uname"`
	InDockerHint bool   `json:"in_docker_hint"`
	GPUCount     *int   `json:"gpu_count,omitempty"`
}

// Request is the license request document. The schema is stable; license
// servers parse this exact shape.
type Request struct {
	Version        int      `json:"version"`
	Timestamp      int64    `json:"timestamp"`
	Customer       string   `json:"customer"`
	Features       []string `json:"features"`
	HWIDComponents []string `json:"hwid_components"`
	HWIDSHA256     string   `json:"hwid_sha256"`
	Env            Env      `json:"env"`
}

// New assembles a request stamped with the current time. features is
// sorted; duplicates are preserved so the request reports exactly what
// was asked for (the license server is the authority on feature
// semantics). components must already be in canonical sorted order.
func New(components []string, digest string, features []string, customer string, env Env) *Request {
	sortedFeatures := append([]string(nil), features...)
	sort.Strings(sortedFeatures)
	return &Request{
		Version:        Version,
		Timestamp:      time.Now().Unix(),
		Customer:       customer,
		Features:       sortedFeatures,
		HWIDComponents: components,
		HWIDSHA256:     digest,
		Env:            env,
	}
}

// DefaultFilename derives the output filename from the first 12 hex
// characters of the HWID, so the filename itself identifies the machine.
func DefaultFilename(digest string) string {
	return fmt.Sprintf("license_request-%s.json", digest[:12])
}

// Marshal encodes the request compactly, without HTML escaping.
func (r *Request) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write serializes the request to path and prints the two-line summary
// (output path, full HWID) to out.
func (r *Request) Write(path string, out io.Writer) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write request file: %w", err)
	}
	fmt.Fprintln(out, "wrote", path)
	fmt.Fprintln(out, "HWID:", r.HWIDSHA256)
	return nil
}
