package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/fetch"
	"github.com/yrashk/git-paravendor/internal/registry"
)

func newShowRefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-ref <name> <ref>",
		Short: "Resolve a ref in a vendorized dependency",
		Args:  cobra.ExactArgs(2),
		RunE:  runShowRef,
	}
}

func runShowRef(cmd *cobra.Command, args []string) error {
	name, ref := args[0], args[1]

	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	if _, err := registry.New(repo).Lookup(name); err != nil {
		return err
	}

	hash, err := fetch.New(repo).Resolve(name, ref)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash.String())
	return nil
}
