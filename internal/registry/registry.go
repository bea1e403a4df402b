package registry

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
)

// BranchName is the name of the orphan branch holding the manifest.
const BranchName = "paravendor"

// branchRef is the full reference name of the registry branch.
var branchRef = plumbing.NewBranchReferenceName(BranchName)

// addRetries bounds the compare-and-swap retry loop in Add.
const addRetries = 3

// addRaceHook, when non-nil, runs between reading the manifest and
// writing the updated tip. Tests use it to interleave a competing
// writer.
var addRaceHook func()

// Registry reads and writes the dependency manifest on the registry
// branch of a host repository.
type Registry struct {
	repo *gitrepo.Repo
}

// New returns a Registry backed by the given repository.
func New(repo *gitrepo.Repo) *Registry {
	return &Registry{repo: repo}
}

// Init creates the registry branch with an empty manifest and a single
// parentless root commit. It refuses to run on a dirty working tree and
// when the branch already exists. Unless ignoreRemote is set, a
// remote-tracking "origin/paravendor" is adopted instead of creating a
// fresh root, so that clones of an initialized repository do not fork a
// second registry lineage.
func (r *Registry) Init(ignoreRemote bool) error {
	dirty, err := r.repo.IsDirty()
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyWorkingTree
	}
	if r.repo.BranchExists(BranchName) {
		return ErrAlreadyInitialized
	}

	if !ignoreRemote {
		remoteRef := plumbing.NewRemoteReferenceName("origin", BranchName)
		if ref, err := r.repo.Ref(remoteRef); err == nil {
			log.Debug().Str("ref", string(remoteRef)).Msg("adopting remote registry branch")
			return r.repo.SetRef(branchRef, ref.Hash(), nil)
		}
	}

	blob, err := r.repo.WriteBlob(FormatManifest(nil))
	if err != nil {
		return err
	}
	tree, err := r.repo.WriteFileTree(ManifestFile, blob)
	if err != nil {
		return err
	}
	commit, err := r.repo.WriteCommit("Initialize paravendor", tree)
	if err != nil {
		return err
	}
	log.Debug().Str("commit", commit.String()).Msg("created registry root commit")
	return r.repo.SetRef(branchRef, commit, nil)
}

// Head reconciles local visibility of the registry branch (see
// reconcile.go) and returns the commit hash of its tip.
func (r *Registry) Head() (plumbing.Hash, error) {
	ref, err := r.reconcile()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// List returns all dependencies in manifest order, reconciling first.
func (r *Registry) List() ([]Dependency, error) {
	ref, err := r.reconcile()
	if err != nil {
		return nil, err
	}
	return r.readManifest(ref)
}

// Lookup returns the dependency registered under name.
func (r *Registry) Lookup(name string) (Dependency, error) {
	deps, err := r.List()
	if err != nil {
		return Dependency{}, err
	}
	for _, d := range deps {
		if d.Name == name {
			return d, nil
		}
	}
	return Dependency{}, &UnknownDependencyError{Name: name}
}

// Add appends a dependency to the manifest and commits the change on top
// of the registry branch tip. The ref update is a compare-and-swap
// against the tip the manifest was read from; on a concurrent change the
// read-modify-write cycle is retried a bounded number of times.
func (r *Registry) Add(name, url string) error {
	if err := ValidateEntry(name, url); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < addRetries; attempt++ {
		ref, err := r.reconcile()
		if err != nil {
			return err
		}
		deps, err := r.readManifest(ref)
		if err != nil {
			return err
		}
		for _, d := range deps {
			if d.Name == name {
				return &DuplicateError{Name: name}
			}
		}
		deps = append(deps, Dependency{Name: name, URL: url})

		if addRaceHook != nil {
			addRaceHook()
		}

		blob, err := r.repo.WriteBlob(FormatManifest(deps))
		if err != nil {
			return err
		}
		tree, err := r.repo.WriteFileTree(ManifestFile, blob)
		if err != nil {
			return err
		}
		commit, err := r.repo.WriteCommit(fmt.Sprintf("Add %s from %s", name, url), tree, ref.Hash())
		if err != nil {
			return err
		}

		err = r.repo.SetRef(branchRef, commit, ref)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gitrepo.ErrRefConflict) {
			return err
		}
		log.Debug().Int("attempt", attempt+1).Msg("registry tip moved concurrently, retrying add")
		lastErr = err
	}
	return fmt.Errorf("adding %s: %w", name, lastErr)
}

// readManifest reads and parses the manifest blob at the given tip.
func (r *Registry) readManifest(ref *plumbing.Reference) ([]Dependency, error) {
	data, err := r.repo.FileContents(ref.Hash(), ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading registry manifest: %w", err)
	}
	return ParseManifest(data)
}
