package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Test commit identity.
var sig = &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(1700000000, 0)}

// InitRepo creates an empty repository in a temp directory with a test
// user configured, and adds one initial commit on master.
func InitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	cfg, err := r.Config()
	if err != nil {
		t.Fatal(err)
	}
	cfg.User.Name = sig.Name
	cfg.User.Email = sig.Email
	if err := r.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	CommitFile(t, dir, "README.md", "# test\n", "initial commit")
	return dir
}

// CommitFile writes a file and commits it, returning the new head hash.
func CommitFile(t *testing.T, dir, name, content, msg string) string {
	t.Helper()
	w := worktree(t, dir)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatalf("git add %s: %v", name, err)
	}
	hash, err := w.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return hash.String()
}

// WriteFile writes an uncommitted file, leaving the working tree dirty.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// Head returns the full hash of the repository's HEAD commit.
func Head(t *testing.T, dir string) string {
	t.Helper()
	r := open(t, dir)
	head, err := r.Head()
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	return head.Hash().String()
}

// Tag creates a lightweight tag at HEAD.
func Tag(t *testing.T, dir, name string) {
	t.Helper()
	r := open(t, dir)
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.CreateTag(name, head.Hash(), nil); err != nil {
		t.Fatalf("creating tag %s: %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag at HEAD.
func AnnotatedTag(t *testing.T, dir, name, message string) {
	t.Helper()
	r := open(t, dir)
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.CreateTag(name, head.Hash(), &git.CreateTagOptions{Tagger: sig, Message: message}); err != nil {
		t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// Branch creates a branch pointing at HEAD.
func Branch(t *testing.T, dir, name string) {
	t.Helper()
	r := open(t, dir)
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.Storer.SetReference(ref); err != nil {
		t.Fatalf("creating branch %s: %v", name, err)
	}
}

// ForceBranch moves a branch to an arbitrary commit, bypassing
// fast-forward checks. Used to simulate remote history rewrites.
func ForceBranch(t *testing.T, dir, branch, hash string) {
	t.Helper()
	r := open(t, dir)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), plumbing.NewHash(hash))
	if err := r.Storer.SetReference(ref); err != nil {
		t.Fatalf("moving branch %s: %v", branch, err)
	}
}

// Clone clones src into a temp directory the way a network clone would:
// branch heads become remote-tracking refs under origin.
func Clone(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainClone(dir, false, &git.CloneOptions{URL: src}); err != nil {
		t.Fatalf("cloning %s: %v", src, err)
	}
	return dir
}

// CopyRepo copies the whole repository directory. This mirrors git's
// local-path clone optimization, which transfers the entire object store
// wholesale, so objects reachable only from private ref namespaces come
// along.
func CopyRepo(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.CopyFS(dir, os.DirFS(src)); err != nil {
		t.Fatalf("copying repository: %v", err)
	}
	return dir
}

// DetachHead checks out the repository's current HEAD commit directly,
// leaving HEAD detached.
func DetachHead(t *testing.T, dir string) string {
	t.Helper()
	r := open(t, dir)
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	w, err := r.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Checkout(&git.CheckoutOptions{Hash: head.Hash()}); err != nil {
		t.Fatalf("detaching HEAD: %v", err)
	}
	return head.Hash().String()
}

func open(t *testing.T, dir string) *git.Repository {
	t.Helper()
	r, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("opening %s: %v", dir, err)
	}
	return r
}

func worktree(t *testing.T, dir string) *git.Worktree {
	t.Helper()
	w, err := open(t, dir).Worktree()
	if err != nil {
		t.Fatalf("opening worktree: %v", err)
	}
	return w
}
