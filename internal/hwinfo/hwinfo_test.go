package hwinfo

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testSystem returns a System rooted in a temp dir with no environment
// and a runner that fails every invocation. Tests override the fields
// they need.
func testSystem(t *testing.T) *System {
	t.Helper()
	return &System{
		Root:   t.TempDir(),
		Runner: stubRunner{err: os.ErrNotExist},
		Getenv: func(string) string { return "" },
	}
}

// writeSysFile creates rel (and its parents) under the system root.
func writeSysFile(t *testing.T, s *System, rel, content string) {
	t.Helper()
	path := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// stubRunner returns a canned command result.
type stubRunner struct {
	out string
	err error
}

func (r stubRunner) Run(name string, args ...string) (string, error) {
	return r.out, r.err
}

// ---------------------------------------------------------------------------
// Board identity
// ---------------------------------------------------------------------------

func TestBoardNameNormalized(t *testing.T) {
	sys := testSystem(t)
	writeSysFile(t, sys, "sys/class/dmi/id/board_name", "X570 AORUS ELITE\n")

	if got := sys.BoardName(); got != "x570aoruselite" {
		t.Fatalf("unexpected board name: %q", got)
	}
}

func TestBoardNameAbsent(t *testing.T) {
	sys := testSystem(t)
	if got := sys.BoardName(); got != "" {
		t.Fatalf("expected empty board name, got %q", got)
	}
}

func TestBoardNameWSLEnvFallback(t *testing.T) {
	sys := testSystem(t)
	sys.Getenv = func(key string) string {
		if key == "WSL_DISTRO_NAME" {
			return "Ubuntu"
		}
		return ""
	}

	if got := sys.BoardName(); got != "wsl" {
		t.Fatalf("expected wsl fallback, got %q", got)
	}
}

func TestBoardNameWSLKernelFallback(t *testing.T) {
	sys := testSystem(t)
	writeSysFile(t, sys, "proc/sys/kernel/osrelease", "5.15.167.4-microsoft-standard-WSL2\n")

	if got := sys.BoardName(); got != "wsl" {
		t.Fatalf("expected wsl fallback, got %q", got)
	}
}

func TestBoardNamePrefersDMIOverWSL(t *testing.T) {
	sys := testSystem(t)
	writeSysFile(t, sys, "sys/class/dmi/id/board_name", "Some Board\n")
	sys.Getenv = func(string) string { return "yes" }

	if got := sys.BoardName(); got != "someboard" {
		t.Fatalf("expected DMI value, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Env hints
// ---------------------------------------------------------------------------

func TestInDocker(t *testing.T) {
	sys := testSystem(t)
	if sys.InDocker() {
		t.Fatal("expected in_docker=false without marker file")
	}

	writeSysFile(t, sys, ".dockerenv", "")
	if !sys.InDocker() {
		t.Fatal("expected in_docker=true with marker file")
	}
}

func TestUnameNonEmpty(t *testing.T) {
	if Uname() == "" {
		t.Fatal("expected non-empty uname string")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"X570 AORUS ELITE": "x570aoruselite",
		"  GenuineIntel\t": "genuineintel",
		"":                 "",
		" \t ":             "",
	}
	for in, want := range cases {
		if got := normalize(in); got != want {
			t.Fatalf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
