package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/theburrowhub/aicommit/internal/config"
	"github.com/theburrowhub/aicommit/internal/ui"
)

// app carries what the subcommands share.
type app struct {
	console    *ui.Console
	configPath string
	verbose    bool
}

// newRootCmd builds the aicommit command tree. Running it without a
// subcommand drafts a commit message.
func newRootCmd(console *ui.Console) *cobra.Command {
	a := &app{console: console}

	cmd := &cobra.Command{
		Use:           "aicommit",
		Short:         "Draft conventional commit messages from staged changes with a local model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommit(cmd.Context(), "")
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(a.newCommitCmd())
	cmd.AddCommand(a.newInitCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(a.newOllamaCmd())

	return cmd
}

// path returns the config file in use.
func (a *app) path() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file, falling back to defaults when absent.
func (a *app) loadConfig() (*config.Config, error) {
	path, err := a.path()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded", "path", path, "model", cfg.Model, "ollama_host", cfg.OllamaHost)
	return cfg, nil
}
