// Package registry stores dependency name/URL pairs on the orphan
// "paravendor" branch. The branch carries a single plain-text manifest
// file and a linear, append-only commit history that never shares
// ancestry with the repository's own branches.
package registry
