package hwinfo

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Runner executes an external diagnostic command and returns its stdout.
// It exists so the nvidia-smi fallback can be stubbed in tests without
// spawning a real subprocess.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// commandTimeout bounds the one external invocation. The tool has no
// other timeout or retry logic; a command failure equals absence.
const commandTimeout = 5 * time.Second

type execRunner struct{}

func (execRunner) Run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}
	return string(out), nil
}
