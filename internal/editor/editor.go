// Package editor lets the user edit text in an external editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/theburrowhub/aicommit/pkg/shellutil"
)

// FileName is the name of the file handed to the editor, as git does.
const FileName = "COMMIT_EDITMSG"

// External runs a user configured editor command on a temp file.
type External struct {
	command string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New returns an External editor. command is passed to `sh -c` with the file
// path appended, so it may carry its own flags ("code --wait").
func New(command string) *External {
	return &External{
		command: command,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Command returns the configured editor command.
func (e *External) Command() string {
	return e.command
}

// Edit writes seed to a temp file, waits for the editor to exit and returns
// the saved content. The temp directory is removed afterwards.
func (e *External) Edit(ctx context.Context, seed string) (string, error) {
	dir, err := os.MkdirTemp("", "aicommit-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", FileName, err)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", shellutil.Command(e.command, path))
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", e.command, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", FileName, err)
	}
	return string(data), nil
}
