// Package hwinfo reads the Linux hardware identity sources: DMI fields,
// /proc/cpuinfo, the NVIDIA driver tree, block devices, the mount table
// and the machine-id file. Every read failure is converted to an absent
// value at the point of collection; callers decide whether absence is
// fatal.
package hwinfo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// System is the read-only view of the machine. All paths resolve under
// Root ("/" in production, a temp dir in tests); Runner executes the one
// external diagnostic command; Getenv looks up environment variables.
type System struct {
	Root   string
	Runner Runner
	Getenv func(string) string
}

// New returns a System bound to the real machine.
func New() *System {
	return &System{Root: "/", Runner: execRunner{}, Getenv: os.Getenv}
}

func (s *System) path(rel string) string {
	return filepath.Join(s.Root, rel)
}

// readFirstLine reads the first line of the file at rel under Root and
// normalizes it. Returns "" on any error.
func (s *System) readFirstLine(rel string) string {
	f, err := os.Open(s.path(rel))
	if err != nil {
		return ""
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ""
	}
	return normalize(sc.Text())
}

// readFile reads the whole file at rel under Root. Returns "" on any
// error.
func (s *System) readFile(rel string) string {
	data, err := os.ReadFile(s.path(rel))
	if err != nil {
		return ""
	}
	return string(data)
}

// normalize removes all whitespace (inner included) and lower-cases s.
// This is the canonical value form shared by every collector.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// BoardName returns the normalized DMI board name. WSL exposes no DMI
// tree, so when the field is unreadable and the environment or kernel
// release identifies WSL, the literal "wsl" is returned instead. ""
// means board identity is absent.
func (s *System) BoardName() string {
	if v := s.readFirstLine("sys/class/dmi/id/board_name"); v != "" {
		return v
	}
	if s.Getenv("WSL_DISTRO_NAME") != "" || s.Getenv("WSL_INTEROP") != "" {
		return "wsl"
	}
	if strings.Contains(strings.ToLower(s.readFile("proc/sys/kernel/osrelease")), "microsoft") {
		return "wsl"
	}
	return ""
}

// InDocker reports whether the container marker file is present under
// the root.
func (s *System) InDocker() bool {
	_, err := os.Stat(s.path(".dockerenv"))
	return err == nil
}

// Uname returns "<sysname> <release>", e.g. "Linux 6.8.0-45-generic".
// Returns "" if the syscall fails.
func Uname() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Sysname[:]) + " " + unix.ByteSliceToString(u.Release[:])
}
