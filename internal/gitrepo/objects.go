package gitrepo

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Fallback identity for repositories without user.name/user.email set.
const (
	fallbackName  = "paravendor"
	fallbackEmail = "paravendor@localhost"
)

// Signature builds a commit signature from git config, falling back to a
// fixed tool identity when none is configured.
func (r *Repo) Signature() object.Signature {
	sig := object.Signature{Name: fallbackName, Email: fallbackEmail, When: time.Now()}
	cfg, err := r.gr.ConfigScoped(config.SystemScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// WriteBlob stores data as a blob object and returns its hash.
func (r *Repo) WriteBlob(data []byte) (plumbing.Hash, error) {
	obj := r.gr.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("writing blob: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return plumbing.ZeroHash, fmt.Errorf("writing blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("writing blob: %w", err)
	}
	return r.gr.Storer.SetEncodedObject(obj)
}

// WriteFileTree stores a tree holding a single regular file and returns
// the tree's hash.
func (r *Repo) WriteFileTree(name string, blob plumbing.Hash) (plumbing.Hash, error) {
	tree := &object.Tree{Entries: []object.TreeEntry{
		{Name: name, Mode: filemode.Regular, Hash: blob},
	}}
	obj := r.gr.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encoding tree: %w", err)
	}
	return r.gr.Storer.SetEncodedObject(obj)
}

// WriteCommit stores a commit object with the given tree and parents.
func (r *Repo) WriteCommit(message string, tree plumbing.Hash, parents ...plumbing.Hash) (plumbing.Hash, error) {
	sig := r.Signature()
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     tree,
		ParentHashes: parents,
	}
	obj := r.gr.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encoding commit: %w", err)
	}
	return r.gr.Storer.SetEncodedObject(obj)
}

// Commit reads the commit object at hash.
func (r *Repo) Commit(hash plumbing.Hash) (*object.Commit, error) {
	c, err := r.gr.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return c, nil
}

// FileContents reads a file from the tree of the commit at hash.
func (r *Repo) FileContents(hash plumbing.Hash, path string) (string, error) {
	c, err := r.Commit(hash)
	if err != nil {
		return "", err
	}
	tree, err := c.Tree()
	if err != nil {
		return "", fmt.Errorf("reading tree of %s: %w", hash, err)
	}
	f, err := tree.File(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from %s: %w", path, hash, err)
	}
	return f.Contents()
}

// PeelToCommit resolves hash to a commit, dereferencing annotated tags.
func (r *Repo) PeelToCommit(hash plumbing.Hash) (plumbing.Hash, error) {
	if tag, err := r.gr.TagObject(hash); err == nil {
		c, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("peeling tag %s: %w", hash, err)
		}
		return c.Hash, nil
	} else if !errors.Is(err, plumbing.ErrObjectNotFound) {
		return plumbing.ZeroHash, fmt.Errorf("reading object %s: %w", hash, err)
	}
	return hash, nil
}
