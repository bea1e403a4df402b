package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDirtyWorkingTree is returned by Init when the working tree has
	// uncommitted changes.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes, commit or stash them first")

	// ErrAlreadyInitialized is returned by Init when the registry branch
	// already exists.
	ErrAlreadyInitialized = errors.New("'paravendor' branch already exists")

	// ErrNotInitialized is returned by read operations when no registry
	// branch can be found locally or on any remote.
	ErrNotInitialized = errors.New("paravendor is not initialized, run 'git paravendor init'")
)

// DuplicateError is returned by Add when the name is already registered,
// regardless of whether the URL matches.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s has been already added, aborting", e.Name)
}

// UnknownDependencyError is returned when a name is not in the registry.
type UnknownDependencyError struct {
	Name string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("dependency %q not found", e.Name)
}
