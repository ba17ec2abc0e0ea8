package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theburrowhub/aicommit/internal/ollama"
	"github.com/theburrowhub/aicommit/internal/ui"
)

func (a *app) newOllamaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ollama",
		Short: "Manage and try models on the Ollama server",
	}

	model := &cobra.Command{
		Use:   "model",
		Short: "List, inspect, pull and delete models",
	}
	model.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List local models",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.ollamaClient()
				if err != nil {
					return err
				}
				models, err := client.ListModels(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.ModelsTable(models))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <model>",
			Short: "Show model details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.ollamaClient()
				if err != nil {
					return err
				}
				info, err := client.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			},
		},
		&cobra.Command{
			Use:   "pull <model>",
			Short: "Download a model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.ollamaClient()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulling %s...\n", args[0])
				if err := client.Pull(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <model>",
			Short: "Delete a local model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.ollamaClient()
				if err != nil {
					return err
				}
				if err := client.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
	)

	var prompt string
	generate := &cobra.Command{
		Use:   "generate <model>",
		Short: "Send a single prompt to a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ollamaClient()
			if err != nil {
				return err
			}
			if prompt == "" {
				prompt, err = ui.NewPrompter(a.console).Input(cmd.Context(), "Prompt")
				if err != nil {
					return err
				}
			}
			reply, err := client.Generate(cmd.Context(), args[0], prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	generate.Flags().StringVarP(&prompt, "prompt", "p", "", "prompt text (asked interactively when empty)")

	status := &cobra.Command{
		Use:   "status",
		Short: "Check that the Ollama server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ollamaClient()
			if err != nil {
				return err
			}
			if err := client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ollama is running at %s\n", client.GetEndpoint())
			return nil
		},
	}

	cmd.AddCommand(model, generate, status)
	return cmd
}

func (a *app) ollamaClient() (*ollama.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return ollama.NewClient(cfg.OllamaHost), nil
}
