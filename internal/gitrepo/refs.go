package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage"
)

// Ref reads a reference without resolving symbolic targets.
func (r *Repo) Ref(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	ref, err := r.gr.Reference(name, false)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrRefNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return ref, nil
}

// SetRef updates name to point at hash, conditioned on old being the
// current value. old may be nil for an unconditional write (used when the
// caller has already established that the reference does not exist). A
// concurrent change of old surfaces as ErrRefConflict.
func (r *Repo) SetRef(name plumbing.ReferenceName, hash plumbing.Hash, old *plumbing.Reference) error {
	ref := plumbing.NewHashReference(name, hash)
	if err := r.gr.Storer.CheckAndSetReference(ref, old); err != nil {
		if errors.Is(err, storage.ErrReferenceHasChanged) {
			return ErrRefConflict
		}
		return fmt.Errorf("updating %s: %w", name, err)
	}
	return nil
}

// ForEachRef calls fn for every reference whose full name starts with
// prefix. fn receives the name with the prefix stripped and the hash the
// reference points at.
func (r *Repo) ForEachRef(prefix string, fn func(name string, hash plumbing.Hash) error) error {
	iter, err := r.gr.References()
	if err != nil {
		return fmt.Errorf("listing references: %w", err)
	}
	defer iter.Close()
	return iter.ForEach(func(ref *plumbing.Reference) error {
		name := string(ref.Name())
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		return fn(strings.TrimPrefix(name, prefix), ref.Hash())
	})
}
