// Package spy invokes the external py-spy sampling profiler and captures its
// raw folded-stack output to a file.
package spy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ErrScriptNotFound indicates the profiled script path does not exist,
// as reported by py-spy itself.
var ErrScriptNotFound = errors.New("target script not found")

const binary = "py-spy"

// RecordArgs builds the py-spy invocation for one recording run. On Windows
// py-spy needs -s to profile the python child it spawns.
func RecordArgs(scriptPath, outputPath string, rate int) []string {
	args := []string{"record"}
	if runtime.GOOS == "windows" {
		args = append(args, "-s")
	}
	return append(args,
		"-o", outputPath,
		"--format", "raw",
		"-r", strconv.Itoa(rate),
		"--", "python", scriptPath,
	)
}

// Record profiles the given script and writes raw folded stacks to
// outputPath. The profiled program runs to completion under py-spy.
func Record(ctx context.Context, scriptPath, outputPath string, rate int) error {
	args := RecordArgs(scriptPath, outputPath, rate)
	slog.Info("recording profile", "script", scriptPath, "output", outputPath, "rate", rate)

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "No such file or directory") {
			return fmt.Errorf("%w: %s", ErrScriptNotFound, scriptPath)
		}
		return fmt.Errorf("py-spy record failed: %w: %s", err, msg)
	}
	slog.Info("profile recorded", "output", outputPath)
	return nil
}
