package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/registry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendorized dependencies",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	deps, err := registry.New(repo).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range deps {
		_, _ = fmt.Fprintf(out, "%s %s\n", d.Name, d.URL)
	}
	return nil
}
