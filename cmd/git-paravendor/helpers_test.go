package main

import (
	"bytes"
	"testing"

	"github.com/yrashk/git-paravendor/internal/gitrepo"
	"github.com/yrashk/git-paravendor/internal/testutil"
)

// runCmd executes the CLI against the repository in dir and captures its
// output streams.
func runCmd(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"-C", dir}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// hostRepo creates a host repository with paravendor initialized.
func hostRepo(t *testing.T) string {
	t.Helper()
	dir := testutil.InitRepo(t)
	if _, _, err := runCmd(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	return dir
}

// addDependency registers an upstream repository under name and returns
// the upstream's path.
func addDependency(t *testing.T, host, name string) string {
	t.Helper()
	upstream := testutil.InitRepo(t)
	if _, _, err := runCmd(t, host, "add", name, "file://"+upstream); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return upstream
}

func openRepoDir(t *testing.T, dir string) *gitrepo.Repo {
	t.Helper()
	repo, err := gitrepo.Open("", dir)
	if err != nil {
		t.Fatalf("opening %s: %v", dir, err)
	}
	return repo
}
