// Package drafter wires the pieces of one commit drafting run together:
// read the branch and staged diff, generate a message, hand it to a
// revision session.
package drafter

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
	"github.com/theburrowhub/aicommit/internal/git"
	"github.com/theburrowhub/aicommit/internal/revision"
)

// Repository is the version control collaborator.
type Repository interface {
	CurrentBranch(ctx context.Context) (string, error)
	StagedDiff(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
}

// Generator produces a message from a staged diff.
type Generator interface {
	Generate(ctx context.Context, branch, diff string) (commitmessage.Message, error)
}

// Reporter receives progress notices for the user.
type Reporter interface {
	Branch(name string)
	DiffSize(bytes int)
	Generating()
}

// SessionRunner runs the revision workflow for a generated message.
type SessionRunner interface {
	Run(ctx context.Context, msg commitmessage.Message) (revision.Outcome, error)
}

// Drafter runs one drafting pass.
type Drafter struct {
	repo      Repository
	generator Generator
	reporter  Reporter
	logger    *log.Logger
}

// New creates a Drafter. reporter may be nil.
func New(repo Repository, generator Generator, reporter Reporter) *Drafter {
	return &Drafter{
		repo:      repo,
		generator: generator,
		reporter:  reporter,
		logger:    log.Default().WithPrefix("drafter"),
	}
}

// Draft reads the staged diff and generates a message. An empty diff fails
// with git.ErrNoStagedChanges before the generator is called.
func (d *Drafter) Draft(ctx context.Context) (commitmessage.Message, error) {
	branch, err := d.repo.CurrentBranch(ctx)
	if err != nil {
		return commitmessage.Message{}, fmt.Errorf("read branch: %w", err)
	}
	if d.reporter != nil {
		d.reporter.Branch(branch)
	}

	diff, err := d.repo.StagedDiff(ctx)
	if err != nil {
		return commitmessage.Message{}, err
	}
	if strings.TrimSpace(diff) == "" {
		return commitmessage.Message{}, git.ErrNoStagedChanges
	}
	if d.reporter != nil {
		d.reporter.DiffSize(len(diff))
		d.reporter.Generating()
	}

	msg, err := d.generator.Generate(ctx, branch, diff)
	if err != nil {
		return commitmessage.Message{}, err
	}
	d.logger.Debug("generated", "branch", branch, "type", msg.Type)
	return msg, nil
}

// Run drafts a message and drives session to its terminal state.
func (d *Drafter) Run(ctx context.Context, session SessionRunner) (revision.Outcome, error) {
	msg, err := d.Draft(ctx)
	if err != nil {
		return revision.Outcome{}, err
	}
	return session.Run(ctx, msg)
}
