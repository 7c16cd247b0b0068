package service

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/ethereum/go-ethereum/log"
)

// Trigger produces a fresh report file
type Trigger interface {
	Run(ctx context.Context) error
}

// ExecTrigger runs the driver as a subprocess and waits for it to exit.
// Its output is discarded; the report file is the only channel back.
type ExecTrigger struct {
	log    log.Logger
	binary string
	args   []string
	dir    string
}

// NewExecTrigger creates a trigger that executes binary with args in dir.
// An empty dir uses the working directory of the service.
func NewExecTrigger(logger log.Logger, binary string, dir string, args ...string) *ExecTrigger {
	return &ExecTrigger{
		log:    logger,
		binary: binary,
		args:   args,
		dir:    dir,
	}
}

// Run implements Trigger
func (t *ExecTrigger) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.binary, t.args...)
	cmd.Dir = t.dir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	t.log.Debug("Running driver", "binary", t.binary, "args", t.args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running driver %s: %w", t.binary, err)
	}
	return nil
}
