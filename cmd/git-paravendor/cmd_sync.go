package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yrashk/git-paravendor/internal/fetch"
	"github.com/yrashk/git-paravendor/internal/registry"
	"github.com/yrashk/git-paravendor/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [<name>...]",
		Short: "Sync vendorized dependencies",
		Long:  "Sync vendorized dependencies.\n\nIf no names are specified, all dependencies will be synced.",
		RunE:  runSync,
	}
	cmd.Flags().Int("jobs", 4, "Number of parallel fetch workers")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1 (got %d)", jobs)
	}

	repo, err := openRepo(cmd)
	if err != nil {
		return err
	}
	deps, err := registry.New(repo).List()
	if err != nil {
		return err
	}
	selected, err := selectDependencies(deps, args)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(selected))
	results := runParallelSync(cmd.Context(), fetch.New(repo), selected, jobs, progress)

	out := cmd.OutOrStdout()
	updated, failed := 0, 0
	for i, d := range selected {
		switch {
		case results[i].err != nil:
			failed++
		case results[i].updated:
			updated++
			_, _ = fmt.Fprintf(out, "Synced %s\n", d.Name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d dependencies failed to sync", failed, len(selected))
	}
	if updated == 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No updates detected")
	}
	return nil
}

type syncResult struct {
	updated bool
	err     error
}

// runParallelSync fetches each dependency with a bounded worker count.
// Every dependency writes only into its own ref namespace, so no
// cross-dependency locking is needed; one failure does not stop the
// others.
func runParallelSync(ctx context.Context, eng *fetch.Engine, deps []registry.Dependency, jobs int, progress *ui.Progress) []syncResult {
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	results := make([]syncResult, len(deps))

	for i, d := range deps {
		wg.Add(1)
		go func(i int, d registry.Dependency) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := eng.Sync(ctx, d)
			results[i] = syncResult{updated: res.Updated, err: err}
			if err != nil {
				progress.Warn("%s: %v", d.Name, err)
				return
			}
			progress.Done(d.Name)
		}(i, d)
	}

	wg.Wait()
	return results
}

// selectDependencies picks the dependencies to sync: all of them when no
// names are given, otherwise the named ones in the order given.
func selectDependencies(deps []registry.Dependency, names []string) ([]registry.Dependency, error) {
	if len(names) == 0 {
		return deps, nil
	}
	byName := make(map[string]registry.Dependency, len(deps))
	for _, d := range deps {
		byName[d.Name] = d
	}
	selected := make([]registry.Dependency, 0, len(names))
	for _, n := range names {
		d, ok := byName[n]
		if !ok {
			return nil, &registry.UnknownDependencyError{Name: n}
		}
		selected = append(selected, d)
	}
	return selected, nil
}
