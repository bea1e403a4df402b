package fetch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
	"github.com/yrashk/git-paravendor/internal/registry"
)

// Namespace is the root of the private ref region holding fetched
// dependency histories.
const Namespace = "refs/paravendor"

// RefPrefix returns the local ref prefix for a dependency's namespace,
// including the trailing separator.
func RefPrefix(name string) string {
	return Namespace + "/" + name + "/"
}

// Engine fetches dependency histories into their namespaces.
type Engine struct {
	repo *gitrepo.Repo
}

// New returns an Engine backed by the given repository.
func New(repo *gitrepo.Repo) *Engine {
	return &Engine{repo: repo}
}

// Result reports the outcome of a single dependency sync.
type Result struct {
	// Updated is true when the fetch changed at least one namespaced ref.
	Updated bool
}

// Sync fetches every ref the dependency's remote exposes into the
// dependency's namespace. The refspec mirrors refs/* and is not forced,
// and after the fetch every advertised ref is checked against its
// namespaced copy, so a rewritten remote ref (non-fast-forward) is
// reported rather than silently skipped and previously resolved commits
// stay valid. Fetches are additive and idempotent: an unchanged remote
// reports Updated=false without an error.
func (e *Engine) Sync(ctx context.Context, dep registry.Dependency) (Result, error) {
	remote := git.NewRemote(e.repo.Storer(), &config.RemoteConfig{
		Name: "anonymous",
		URLs: []string{dep.URL},
	})

	advertised, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return Result{}, fmt.Errorf("listing refs of %s from %s: %w", dep.Name, dep.URL, err)
	}

	spec := config.RefSpec(fmt.Sprintf("refs/*:%s*", RefPrefix(dep.Name)))
	log.Debug().Str("dependency", dep.Name).Str("refspec", string(spec)).Msg("fetching")

	err = remote.FetchContext(ctx, &git.FetchOptions{
		RefSpecs: []config.RefSpec{spec},
		Tags:     git.NoTags, // refs/* already covers refs/tags/*
	})
	switch {
	case err == nil:
		if err := e.checkMirrored(dep, advertised); err != nil {
			return Result{}, err
		}
		return Result{Updated: true}, nil
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		return Result{}, e.checkMirrored(dep, advertised)
	default:
		return Result{}, fmt.Errorf("fetching %s from %s: %w", dep.Name, dep.URL, err)
	}
}

// checkMirrored verifies that every hash ref the remote advertised is
// mirrored at the same hash in the dependency's namespace. go-git skips
// non-fast-forward updates of a non-forced refspec without turning them
// into a fetch error, so the divergence has to be detected here.
func (e *Engine) checkMirrored(dep registry.Dependency, advertised []*plumbing.Reference) error {
	prefix := RefPrefix(dep.Name)
	var stale []string
	for _, ref := range advertised {
		if ref.Type() != plumbing.HashReference {
			continue
		}
		suffix, ok := strings.CutPrefix(string(ref.Name()), "refs/")
		if !ok || strings.HasSuffix(suffix, "^{}") {
			continue
		}
		local, err := e.repo.Ref(plumbing.ReferenceName(prefix + suffix))
		if err != nil || local.Hash() != ref.Hash() {
			stale = append(stale, string(ref.Name()))
		}
	}
	if len(stale) == 0 {
		return nil
	}
	sort.Strings(stale)
	return fmt.Errorf("remote %s rewrote published history (non-fast-forward), refusing to update %s of %s", dep.URL, strings.Join(stale, ", "), dep.Name)
}
