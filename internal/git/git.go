// Package git wraps the git commands the drafting session needs.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoStagedChanges is returned when the index has nothing to commit.
	ErrNoStagedChanges = errors.New("no staged changes to commit")
	// ErrEmptyCommitMessage is returned when Commit is given a blank message.
	ErrEmptyCommitMessage = errors.New("empty commit message")
)

// StagedFile is one file of the staged diff with its line counts.
// Binary files report -1 for both counts.
type StagedFile struct {
	Path    string
	Added   int
	Deleted int
}

// Repo runs git in a work tree.
type Repo struct {
	dir    string
	logger *log.Logger
}

// NewRepo returns a Repo rooted at dir. An empty dir means the current directory.
func NewRepo(dir string) *Repo {
	return &Repo{
		dir:    dir,
		logger: log.Default().WithPrefix("git"),
	}
}

// CurrentBranch returns the abbreviated name of HEAD.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StagedDiff returns the diff of the index against HEAD.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, "diff", "--cached")
	if err != nil {
		return "", err
	}
	diff := strings.TrimSpace(out)
	if diff == "" {
		return "", ErrNoStagedChanges
	}
	r.logger.Debug("staged diff", "bytes", len(diff))
	return diff, nil
}

// StagedFiles returns per-file line counts of the staged diff.
func (r *Repo) StagedFiles(ctx context.Context) ([]StagedFile, error) {
	out, err := r.run(ctx, nil, "diff", "--cached", "--numstat")
	if err != nil {
		return nil, err
	}
	return parseNumstat(out), nil
}

// Commit records the index with message. The message is passed on stdin so
// it reaches git byte for byte.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyCommitMessage
	}
	if _, err := r.run(ctx, strings.NewReader(message), "commit", "--cleanup=verbatim", "-F", "-"); err != nil {
		return err
	}
	r.logger.Debug("committed", "bytes", len(message))
	return nil
}

func (r *Repo) run(ctx context.Context, stdin *strings.Reader, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// parseNumstat parses git diff --numstat output.
func parseNumstat(output string) []StagedFile {
	var files []StagedFile
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// numstat format: "added\tdeleted\tpath"
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		files = append(files, StagedFile{
			Path:    parts[2],
			Added:   numstatCount(parts[0]),
			Deleted: numstatCount(parts[1]),
		})
	}
	return files
}

// numstatCount parses a numstat column; "-" marks a binary file.
func numstatCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
