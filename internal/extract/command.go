package extract

import (
	"context"
	"os/exec"
)

// newCommand is swapped out by tests to avoid spawning a real decoder.
var newCommand = func(ctx context.Context, binary string, args ...string) commandRunner {
	return exec.CommandContext(ctx, binary, args...)
}

type commandRunner interface {
	CombinedOutput() ([]byte, error)
}
