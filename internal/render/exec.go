// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"os/exec"
	"time"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CombinedOutput runs name in dir and returns stdout and stderr interleaved.
// The process is killed when ctx is done.
func (o *osExecutor) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = 5 * time.Second
	return cmd.CombinedOutput()
}

var defaultExec = &osExecutor{}
