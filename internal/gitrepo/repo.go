package gitrepo

import (
	"errors"
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage"
)

var (
	// ErrNotRepository is returned when no git repository can be found.
	ErrNotRepository = errors.New("not a git repository")

	// ErrRefNotFound is returned when a reference does not exist.
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefConflict is returned when a compare-and-swap reference update
	// loses a race against a concurrent writer.
	ErrRefConflict = errors.New("reference changed concurrently")
)

// Repo is a handle to the host repository.
type Repo struct {
	gr *git.Repository
}

// Open locates and opens the host repository. gitDir, when non-empty, is
// used directly as the repository location. Otherwise workDir (or the
// process working directory when empty) is searched upward for a .git
// directory, matching what git itself does.
func Open(gitDir, workDir string) (*Repo, error) {
	var (
		gr  *git.Repository
		err error
	)
	if gitDir != "" {
		gr, err = git.PlainOpen(gitDir)
	} else {
		path := workDir
		if path == "" {
			path = "."
		}
		gr, err = git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	}
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return &Repo{gr: gr}, nil
}

// Underlying exposes the wrapped go-git repository for operations that
// need direct access, such as anonymous-remote fetches.
func (r *Repo) Underlying() *git.Repository {
	return r.gr
}

// Storer exposes the repository's object and reference storage.
func (r *Repo) Storer() storage.Storer {
	return r.gr.Storer
}

// IsDirty returns true if the working tree has uncommitted changes,
// including untracked files. Bare repositories are never dirty.
func (r *Repo) IsDirty() (bool, error) {
	w, err := r.gr.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return false, nil
		}
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	st, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}
	return !st.IsClean(), nil
}

// CurrentBranch returns the short name of the branch HEAD points at, or
// empty string when HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.gr.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", nil // detached
	}
	return head.Target().Short(), nil
}

// BranchExists reports whether a local branch with the given short name
// exists.
func (r *Repo) BranchExists(name string) bool {
	_, err := r.gr.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

// UpstreamRemote returns the remote the given branch is configured to
// track, or empty string if no upstream is set.
func (r *Repo) UpstreamRemote(branch string) (string, error) {
	cfg, err := r.gr.Config()
	if err != nil {
		return "", fmt.Errorf("reading repository config: %w", err)
	}
	if b, ok := cfg.Branches[branch]; ok && b.Remote != "" {
		return b.Remote, nil
	}
	return "", nil
}

// FirstRemote returns the name of a configured remote, preferring
// "origin" and falling back to the lexicographically first one. Returns
// empty string when the repository has no remotes.
func (r *Repo) FirstRemote() (string, error) {
	cfg, err := r.gr.Config()
	if err != nil {
		return "", fmt.Errorf("reading repository config: %w", err)
	}
	if _, ok := cfg.Remotes[git.DefaultRemoteName]; ok {
		return git.DefaultRemoteName, nil
	}
	names := make([]string, 0, len(cfg.Remotes))
	for name := range cfg.Remotes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], nil
}
