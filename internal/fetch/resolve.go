package fetch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
)

// UnknownRefError is returned by Resolve when no ref in the dependency's
// namespace corresponds to the requested name.
type UnknownRefError struct {
	Dependency string
	Ref        string
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("ref %q not found for dependency %q", e.Ref, e.Dependency)
}

// Resolve maps a branch or tag name within a dependency's namespace to a
// commit hash. Lookup order mirrors git's ref shorthand: the exact ref
// path first, then heads, then tags. Annotated tags are peeled to the
// commit they point at. The ref must have been fetched by a prior sync,
// either in this repository or inherited through a clone of it.
func (e *Engine) Resolve(name, ref string) (plumbing.Hash, error) {
	prefix := RefPrefix(name)
	var candidates []string
	if suffix, ok := strings.CutPrefix(ref, "refs/"); ok {
		candidates = []string{prefix + suffix}
	} else {
		candidates = []string{
			prefix + ref,
			prefix + "heads/" + ref,
			prefix + "tags/" + ref,
		}
	}

	for _, c := range candidates {
		r, err := e.repo.Ref(plumbing.ReferenceName(c))
		if err != nil {
			if errors.Is(err, gitrepo.ErrRefNotFound) {
				continue
			}
			return plumbing.ZeroHash, err
		}
		return e.repo.PeelToCommit(r.Hash())
	}
	return plumbing.ZeroHash, &UnknownRefError{Dependency: name, Ref: ref}
}

// Refs lists all refs recorded in a dependency's namespace, named as the
// remote exposes them (refs/heads/..., refs/tags/...), sorted.
func (e *Engine) Refs(name string) ([]string, error) {
	var refs []string
	err := e.repo.ForEachRef(RefPrefix(name), func(suffix string, _ plumbing.Hash) error {
		refs = append(refs, "refs/"+suffix)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(refs)
	return refs, nil
}
