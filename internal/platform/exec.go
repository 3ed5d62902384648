package platform

import (
	"context"
	"os/exec"
	"time"
)

// Exec runs external commands. The process is killed when ctx is done and
// its pipes are abandoned shortly after, so a hung child cannot block the
// caller.
type Exec struct{}

func (Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = time.Second
	return cmd.Output()
}
