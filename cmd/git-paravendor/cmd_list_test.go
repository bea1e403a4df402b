package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yrashk/git-paravendor/internal/registry"
	"github.com/yrashk/git-paravendor/internal/testutil"
)

func TestListCmd_insertionOrder(t *testing.T) {
	host := hostRepo(t)
	zeta := addDependency(t, host, "zeta")
	alpha := addDependency(t, host, "alpha")

	stdout, _, err := runCmd(t, host, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := fmt.Sprintf("zeta file://%s\nalpha file://%s\n", zeta, alpha)
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestListCmd_empty(t *testing.T) {
	host := hostRepo(t)

	stdout, _, err := runCmd(t, host, "list")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestListCmd_freshClone(t *testing.T) {
	origin := hostRepo(t)
	addDependency(t, origin, "dep")
	originOut, _, err := runCmd(t, origin, "list")
	if err != nil {
		t.Fatal(err)
	}

	clone := testutil.Clone(t, origin)
	stdout, stderr, err := runCmd(t, clone, "list")
	if err != nil {
		t.Fatalf("list in clone: %v", err)
	}
	if stdout != originOut {
		t.Errorf("clone list = %q, want %q", stdout, originOut)
	}
	for _, s := range []string{stdout, stderr} {
		if strings.Contains(s, "track") {
			t.Errorf("output %q must not mention branch tracking", s)
		}
	}

	if !openRepoDir(t, clone).BranchExists(registry.BranchName) {
		t.Error("list in a clone must materialize the local branch")
	}
}

func TestListCmd_detachedHead(t *testing.T) {
	origin := hostRepo(t)
	addDependency(t, origin, "dep")

	clone := testutil.Clone(t, origin)
	detached := testutil.DetachHead(t, clone)

	stdout, _, err := runCmd(t, clone, "list")
	if err != nil {
		t.Fatalf("list with detached HEAD: %v", err)
	}
	if !strings.HasPrefix(stdout, "dep ") {
		t.Errorf("stdout = %q", stdout)
	}
	if testutil.Head(t, clone) != detached {
		t.Error("list must not move a detached HEAD")
	}
}

func TestListCmd_notInitialized(t *testing.T) {
	dir := testutil.InitRepo(t)

	_, _, err := runCmd(t, dir, "list")
	if err == nil {
		t.Fatal("expected error in uninitialized repository")
	}
	if got, want := err.Error(), "paravendor is not initialized, run 'git paravendor init'"; got != want {
		t.Errorf("err = %q, want %q", got, want)
	}
}
