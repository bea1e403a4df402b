package main

import (
	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/registry"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize paravendor in a repository",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().Bool("ignore-remote", false, "If no local 'paravendor' branch is found, don't try to get a remote one")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	ignoreRemote, _ := cmd.Flags().GetBool("ignore-remote")

	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	return registry.New(repo).Init(ignoreRemote)
}
