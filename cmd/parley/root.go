package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parley",
		Short: "Parley - moderated debates between language-model personas",
		Long: `Parley runs moderated debates between two language-model personas.

A chairperson opens each debate, the debaters alternate turns, and every few
turns each side pauses to rewrite a private notebook of positions and strategy.
Notebooks persist per (persona, topic), so a debate can be picked up later
where the thinking left off.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newPersonasCommand())
	cmd.AddCommand(newNotebooksCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
