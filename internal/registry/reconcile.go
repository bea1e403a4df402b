package registry

import (
	"errors"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
)

// reconcile makes the registry branch visible as a local ref and returns
// it. After a fresh clone the branch typically exists only as a
// remote-tracking ref; in that case the local ref is written directly at
// the same hash, deliberately bypassing any checkout machinery so that no
// tracking-setup diagnostic is ever printed. A detached HEAD is read but
// never modified. Idempotent: once the local ref exists it is returned
// as-is.
func (r *Registry) reconcile() (*plumbing.Reference, error) {
	ref, err := r.repo.Ref(branchRef)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, gitrepo.ErrRefNotFound) {
		return nil, err
	}

	remote, err := r.trackingRemote()
	if err != nil {
		return nil, err
	}
	if remote == "" {
		return nil, ErrNotInitialized
	}

	remoteRef, err := r.repo.Ref(plumbing.NewRemoteReferenceName(remote, BranchName))
	if err != nil {
		if errors.Is(err, gitrepo.ErrRefNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}

	if err := r.repo.SetRef(branchRef, remoteRef.Hash(), nil); err != nil {
		return nil, err
	}
	log.Debug().
		Str("remote", remote).
		Str("commit", remoteRef.Hash().String()).
		Msg("restored local registry branch from remote-tracking ref")
	return r.repo.Ref(branchRef)
}

// trackingRemote picks the remote whose paravendor ref should seed the
// local branch: the current branch's configured upstream when HEAD is
// attached, otherwise the repository's first remote. Empty string when
// the repository has no remotes at all.
func (r *Registry) trackingRemote() (string, error) {
	branch, err := r.repo.CurrentBranch()
	if err != nil {
		return "", err
	}
	if branch != "" {
		remote, err := r.repo.UpstreamRemote(branch)
		if err != nil {
			return "", err
		}
		if remote != "" {
			return remote, nil
		}
	}
	return r.repo.FirstRemote()
}
