package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/theburrowhub/aicommit/internal/git"
)

// Console prints user facing status lines.
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole writes to stdout and stderr.
func NewConsole() *Console {
	return &Console{out: os.Stdout, err: os.Stderr}
}

// NewConsoleTo writes to the given streams.
func NewConsoleTo(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// Out returns the standard stream.
func (c *Console) Out() io.Writer {
	return c.out
}

// Println prints plain text.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Info prints a bold status line.
func (c *Console) Info(format string, a ...any) {
	fmt.Fprintln(c.out, boldStyle.Render(fmt.Sprintf(format, a...)))
}

// Muted prints a dimmed status line.
func (c *Console) Muted(format string, a ...any) {
	fmt.Fprintln(c.out, mutedStyle.Render(fmt.Sprintf(format, a...)))
}

// Success prints a green status line.
func (c *Console) Success(format string, a ...any) {
	fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf(format, a...)))
}

// Error prints a red line to stderr.
func (c *Console) Error(format string, a ...any) {
	fmt.Fprintln(c.err, errorStyle.Render(fmt.Sprintf(format, a...)))
}

// Branch reports the current branch.
func (c *Console) Branch(name string) {
	c.Info("🌿 Current branch is: %s", name)
}

// DiffSize reports the size of the staged diff.
func (c *Console) DiffSize(bytes int) {
	c.Muted("🧾 Current diff is %d chars long", bytes)
}

// Generating is printed before the model call. It is a no-op until a model is
// attached with ForModel.
func (c *Console) Generating() {}

// ForModel returns a reporter that names model while generating.
func (c *Console) ForModel(model string) *ModelReporter {
	return &ModelReporter{Console: c, model: model}
}

// StagedFiles lists the staged files with their line counts.
func (c *Console) StagedFiles(files []git.StagedFile) {
	for _, f := range files {
		if f.Added < 0 {
			c.Muted("   %s (binary)", f.Path)
			continue
		}
		c.Muted("   %s +%d -%d", f.Path, f.Added, f.Deleted)
	}
}

// ModelReporter is a Console that announces generation with the model name.
type ModelReporter struct {
	*Console
	model string
}

// Generating announces the model call.
func (r *ModelReporter) Generating() {
	fmt.Fprintln(r.out, boldStyle.Render("🤖 Generating commit message using model ")+reverseStyle.Render(r.model))
}
