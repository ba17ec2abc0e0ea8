package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theburrowhub/aicommit/internal/clipboard"
	"github.com/theburrowhub/aicommit/internal/commitgen"
	"github.com/theburrowhub/aicommit/internal/drafter"
	"github.com/theburrowhub/aicommit/internal/editor"
	"github.com/theburrowhub/aicommit/internal/git"
	"github.com/theburrowhub/aicommit/internal/ollama"
	"github.com/theburrowhub/aicommit/internal/revision"
	"github.com/theburrowhub/aicommit/internal/ui"
)

func (a *app) newCommitCmd() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message for the staged changes and review it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommit(cmd.Context(), model)
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "Ollama model to use (overrides config)")
	return cmd
}

func (a *app) runCommit(ctx context.Context, model string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if model == "" {
		model = cfg.Model
	}

	repo := git.NewRepo("")
	client := ollama.NewClient(cfg.OllamaHost)
	gen := commitgen.New(client, model,
		commitgen.WithTemperature(cfg.Temperature),
		commitgen.WithMaxDiffBytes(cfg.MaxDiffBytes),
		commitgen.WithTimeout(cfg.RequestTimeout),
	)

	a.console.Info("📝 Generating commit message...")
	if files, err := repo.StagedFiles(ctx); err == nil {
		a.console.StagedFiles(files)
	}

	prompter := ui.NewPrompter(a.console)
	session := revision.NewSession(
		prompter,
		editor.New(cfg.ResolveEditor(os.Getenv)),
		repo,
		clipboard.New(),
	)

	outcome, err := drafter.New(repo, gen, a.console.ForModel(model)).Run(ctx, session)
	switch {
	case errors.Is(err, git.ErrNoStagedChanges):
		return fmt.Errorf("%w: stage files with `git add` first", err)
	case errors.Is(err, revision.ErrEmptyMessage):
		a.console.Error("❌ Empty commit message, nothing committed")
		return nil
	case err != nil:
		return err
	}

	a.report(outcome)
	return nil
}

func (a *app) report(outcome revision.Outcome) {
	switch outcome.State {
	case revision.StateCommitted:
		a.console.Success("🎉 Commit message generated successfully!")
	case revision.StateCopied:
		a.console.Success("📋 Commit message copied to clipboard")
	case revision.StateCancelled:
		a.console.Error("❌ Canceled by user")
	}
}
