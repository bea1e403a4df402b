// Package fetch pulls a dependency's remote history into the host
// repository's object store under a private ref namespace
// (refs/paravendor/<name>/*), and resolves branch or tag names within
// such a namespace to commit hashes.
package fetch
