package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/fetch"
	"github.com/yrashk/git-paravendor/internal/registry"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Vendorize a new dependency",
		Args:  cobra.ExactArgs(2),
		RunE:  runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, url := args[0], args[1]

	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	if err := registry.ValidateEntry(name, url); err != nil {
		return err
	}

	reg := registry.New(repo)
	deps, err := reg.List()
	if err != nil {
		return err
	}
	for _, d := range deps {
		if d.Name == name {
			return &registry.DuplicateError{Name: name}
		}
	}

	// Fetch before recording, so an unreachable URL never lands in the
	// manifest.
	eng := fetch.New(repo)
	if _, err := eng.Sync(cmd.Context(), registry.Dependency{Name: name, URL: url}); err != nil {
		return err
	}

	if err := reg.Add(name, url); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", name, url)
	return nil
}
