package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// FormatFunc formats the crate whose manifest is at manifestPath.
type FormatFunc func(ctx context.Context, tool, manifestPath string) error

// CargoFmt runs `<tool> fmt --manifest-path <manifest>`.
func CargoFmt(ctx context.Context, tool, manifestPath string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	// #nosec G204 -- tool comes from the project configuration
	cmd := exec.CommandContext(ctx, tool, "fmt", "--manifest-path", manifestPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%s fmt: %s", tool, msg)
	}
	return nil
}

func runFormatter(ctx context.Context, fn FormatFunc, tool, manifestPath string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err := fn(ctx, tool, manifestPath)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s fmt timed out after %s", tool, timeout)
	}
	return err
}
