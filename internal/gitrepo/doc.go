// Package gitrepo wraps go-git with the repository operations used by
// git-paravendor: discovery from the working directory or GIT_DIR,
// working-tree and HEAD probing, object construction through the storer,
// and atomic compare-and-swap reference updates.
package gitrepo
