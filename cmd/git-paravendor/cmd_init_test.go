package main

import (
	"strings"
	"testing"

	"github.com/yrashk/git-paravendor/internal/registry"
	"github.com/yrashk/git-paravendor/internal/testutil"
)

func TestInitCmd(t *testing.T) {
	dir := testutil.InitRepo(t)

	if _, _, err := runCmd(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}

	repo := openRepoDir(t, dir)
	if !repo.BranchExists(registry.BranchName) {
		t.Fatal("paravendor branch not created")
	}
	head, err := registry.New(repo).Head()
	if err != nil {
		t.Fatal(err)
	}
	c, err := repo.Commit(head)
	if err != nil {
		t.Fatal(err)
	}
	if c.NumParents() != 0 {
		t.Errorf("root commit has %d parents, want 0", c.NumParents())
	}
	if c.Message != "Initialize paravendor" {
		t.Errorf("commit message = %q", c.Message)
	}
}

func TestInitCmd_dirtyWorkingTree(t *testing.T) {
	dir := testutil.InitRepo(t)
	testutil.WriteFile(t, dir, "dirty.txt", "x\n")

	_, _, err := runCmd(t, dir, "init")
	if err == nil {
		t.Fatal("expected error on dirty working tree")
	}
	if !strings.Contains(err.Error(), "uncommitted") {
		t.Errorf("err = %v", err)
	}
	if openRepoDir(t, dir).BranchExists(registry.BranchName) {
		t.Error("failed init must not create the branch")
	}
}

func TestInitCmd_alreadyInitialized(t *testing.T) {
	dir := hostRepo(t)

	_, _, err := runCmd(t, dir, "init")
	if err == nil {
		t.Fatal("expected error on second init")
	}
	if got, want := err.Error(), "'paravendor' branch already exists"; got != want {
		t.Errorf("err = %q, want %q", got, want)
	}
}

func TestInitCmd_adoptsRemoteBranch(t *testing.T) {
	origin := hostRepo(t)
	originHead, err := registry.New(openRepoDir(t, origin)).Head()
	if err != nil {
		t.Fatal(err)
	}

	clone := testutil.Clone(t, origin)
	if _, _, err := runCmd(t, clone, "init"); err != nil {
		t.Fatalf("init in clone: %v", err)
	}

	cloneHead, err := registry.New(openRepoDir(t, clone)).Head()
	if err != nil {
		t.Fatal(err)
	}
	if cloneHead != originHead {
		t.Errorf("clone tip = %s, want origin's %s", cloneHead, originHead)
	}
}

func TestInitCmd_ignoreRemote(t *testing.T) {
	origin := hostRepo(t)
	addDependency(t, origin, "dep")
	clone := testutil.Clone(t, origin)

	if _, _, err := runCmd(t, clone, "init", "--ignore-remote"); err != nil {
		t.Fatalf("init --ignore-remote: %v", err)
	}

	stdout, _, err := runCmd(t, clone, "list")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("list = %q, ignore-remote must start a fresh registry", stdout)
	}

	repo := openRepoDir(t, clone)
	head, err := registry.New(repo).Head()
	if err != nil {
		t.Fatal(err)
	}
	c, err := repo.Commit(head)
	if err != nil {
		t.Fatal(err)
	}
	if c.NumParents() != 0 {
		t.Errorf("fresh root has %d parents, want 0", c.NumParents())
	}
}
