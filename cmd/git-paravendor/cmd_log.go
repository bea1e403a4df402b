package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/registry"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show commits belonging to the paravendor branch",
		Args:  cobra.NoArgs,
		RunE:  runLog,
	}
}

// runLog walks the registry branch first-parent and prints one line per
// commit, newest first.
func runLog(cmd *cobra.Command, _ []string) error {
	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	head, err := registry.New(repo).Head()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	commit, err := repo.Commit(head)
	if err != nil {
		return err
	}
	for {
		subject, _, _ := strings.Cut(commit.Message, "\n")
		_, _ = fmt.Fprintf(out, "%s %s\n", commit.Hash, subject)
		if commit.NumParents() == 0 {
			return nil
		}
		commit, err = commit.Parent(0)
		if err != nil {
			return err
		}
	}
}
