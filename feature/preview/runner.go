package preview

import (
	"bytes"
	"context"
	"os/exec"

	"go.uber.org/zap"
)

// Runner executes an external tool. Abstracted so tests can record
// invocations instead of shelling out.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner shells out via os/exec. Tool failures are surfaced to the
// caller but previews are best-effort: the generator logs them and moves on
// rather than failing the item.
type execRunner struct {
	log *zap.Logger
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner(log *zap.Logger) Runner {
	return &execRunner{log: log}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.log.Warn("External tool failed",
			zap.String("tool", name),
			zap.Strings("args", args),
			zap.String("stderr", stderr.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}
