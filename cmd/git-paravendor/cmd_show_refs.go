package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/fetch"
	"github.com/yrashk/git-paravendor/internal/registry"
)

func newShowRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-refs <name>",
		Short: "Show all refs for a vendorized dependency",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowRefs,
	}
}

func runShowRefs(cmd *cobra.Command, args []string) error {
	name := args[0]

	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	if _, err := registry.New(repo).Lookup(name); err != nil {
		return err
	}

	refs, err := fetch.New(repo).Refs(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range refs {
		_, _ = fmt.Fprintln(out, r)
	}
	return nil
}
