package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "git-paravendor",
		Short:         "Embed full dependency histories inside a git repository",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("change-dir", "C", "", "Run as if started in <path>")
	cmd.PersistentFlags().String("git-dir", os.Getenv("GIT_DIR"), "Directory where the GIT_DIR is")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newSyncCmd(),
		newListCmd(),
		newShowRefCmd(),
		newShowRefsCmd(),
		newLogCmd(),
	)

	return cmd
}

// openRepo locates the host repository from the global flags.
func openRepo(cmd *cobra.Command) (*gitrepo.Repo, error) {
	gitDir, _ := cmd.Flags().GetString("git-dir")
	changeDir, _ := cmd.Flags().GetString("change-dir")
	return gitrepo.Open(gitDir, changeDir)
}
