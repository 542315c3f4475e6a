package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/wg/internal/manifest"
	"github.com/fbkclanna/wg/internal/testutil"
	"github.com/fbkclanna/wg/internal/ui"
	"github.com/fbkclanna/wg/internal/workspace"
)

// setupEnv isolates the user config and points WG_CARGO at a fake cargo.
func setupEnv(t *testing.T) *testutil.FakeCargo {
	t.Helper()
	fake := testutil.NewFakeCargo(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("WG_CARGO", fake.Path)
	for _, key := range []string{"WG_EDITION", "WG_TOOLCHAIN", "WG_INIT_GIT"} {
		t.Setenv(key, "")
	}
	return fake
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func readMembers(t *testing.T, root string) []string {
	t.Helper()
	m, err := manifest.Load(filepath.Join(root, manifest.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if m.Workspace == nil {
		t.Fatal("workspace table missing")
	}
	return m.Workspace.Members
}

func TestRunNew_createsWorkspace(t *testing.T) {
	fake := setupEnv(t)
	dir := filepath.Join(t.TempDir(), "demo")

	stdout, stderr, err := execute(t, "new", dir, "--lib", "corelib", "--bin", "applib")
	if err != nil {
		t.Fatalf("new failed: %v\nstderr: %s", err, stderr)
	}

	want := "workspace created at " + dir + "\nmembers: corelib, applib\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "[1/2] created library corelib") {
		t.Errorf("stderr missing progress: %q", stderr)
	}
	if got := strings.Join(readMembers(t, dir), ","); got != "corelib,applib" {
		t.Errorf("members = %q", got)
	}
	if len(fake.Calls(t)) != 2 {
		t.Errorf("cargo calls = %q", fake.Calls(t))
	}
}

func TestRunNew_noMembers(t *testing.T) {
	setupEnv(t)
	dir := filepath.Join(t.TempDir(), "empty")

	stdout, _, err := execute(t, "new", dir)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if stdout != "workspace created at "+dir+"\n" {
		t.Errorf("stdout = %q, want no members line", stdout)
	}
}

func TestRunNew_notEmpty(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "some_file.txt"), []byte("hello"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	_, _, err := execute(t, "new", dir, "--lib", "corelib")
	if !errors.Is(err, workspace.ErrDirectoryNotEmpty) {
		t.Fatalf("error = %v, want ErrDirectoryNotEmpty", err)
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("unexpected message: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); !os.IsNotExist(err) {
		t.Error("Cargo.toml must not be written")
	}

	if _, _, err := execute(t, "new", dir, "--lib", "corelib", "--force"); err != nil {
		t.Fatalf("new --force failed: %v", err)
	}
}

func TestRunNew_duplicateMember(t *testing.T) {
	fake := setupEnv(t)
	dir := filepath.Join(t.TempDir(), "demo")

	_, _, err := execute(t, "new", dir, "--lib", "core", "--bin", "core")
	if !errors.Is(err, workspace.ErrDuplicateMember) {
		t.Fatalf("error = %v, want ErrDuplicateMember", err)
	}
	if len(fake.Calls(t)) != 0 {
		t.Error("cargo must not run")
	}
}

func TestRunNew_toolchainOverwrite(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, workspace.ToolchainFile)
	if err := os.WriteFile(path, []byte("[toolchain]\nchannel = \"stable\"\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	if _, _, err := execute(t, "new", dir, "--toolchain", "nightly", "--force"); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[toolchain]\nchannel = \"nightly\"\n" {
		t.Errorf("rust-toolchain.toml = %q", data)
	}
}

func TestRunNew_emptyToolchain(t *testing.T) {
	fake := setupEnv(t)
	dir := filepath.Join(t.TempDir(), "demo")

	for _, channel := range []string{"", "  "} {
		_, _, err := execute(t, "new", dir, "--lib", "core", "--toolchain", channel)
		if err == nil || !strings.Contains(err.Error(), "--toolchain requires a channel") {
			t.Fatalf("--toolchain %q: error = %v", channel, err)
		}
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("target directory must not be created")
	}
	if len(fake.Calls(t)) != 0 {
		t.Error("cargo must not run")
	}
}

func TestRunNew_fromPlan(t *testing.T) {
	setupEnv(t)
	base := t.TempDir()
	planPath := filepath.Join(base, "plan.yaml")
	data := []byte("libs: [core]\nbins: [app]\ntoolchain: beta\n")
	if err := os.WriteFile(planPath, data, 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	dir := filepath.Join(base, "demo")

	stdout, _, err := execute(t, "new", dir, "--from", planPath, "--lib", "extra")
	if err != nil {
		t.Fatalf("new --from failed: %v", err)
	}
	if !strings.Contains(stdout, "members: core, extra, app") {
		t.Errorf("stdout = %q", stdout)
	}
	toolchain, err := os.ReadFile(filepath.Join(dir, workspace.ToolchainFile)) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(toolchain), `"beta"`) {
		t.Errorf("toolchain = %q, want plan channel", toolchain)
	}
}

func TestRunNew_fromPlanInvalid(t *testing.T) {
	setupEnv(t)
	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(planPath, []byte("lib: [core]\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	_, _, err := execute(t, "new", filepath.Join(t.TempDir(), "demo"), "--from", planPath)
	if err == nil || !strings.Contains(err.Error(), "--from") {
		t.Fatalf("error = %v, want --from failure", err)
	}
}

func TestRunNew_configFile(t *testing.T) {
	setupEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("toolchain = \"stable\"\nedition = \"2021\"\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "demo")

	if _, _, err := execute(t, "--config", cfgPath, "new", dir, "--lib", "core"); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, workspace.ToolchainFile)); err != nil {
		t.Errorf("configured toolchain not written: %v", err)
	}
}

func TestRunNew_cargoFailure(t *testing.T) {
	setupEnv(t)
	t.Setenv("WG_CARGO", testutil.FailingCargo(t, 101).Path)

	_, _, err := execute(t, "new", t.TempDir(), "--lib", "corelib")
	var cmdErr *workspace.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %v, want *CommandError", err)
	}
	if !strings.Contains(err.Error(), "corelib") || !strings.Contains(err.Error(), "101") {
		t.Errorf("error should name member and exit status: %v", err)
	}
}

func TestRunNew_verbose(t *testing.T) {
	setupEnv(t)

	_, stderr, err := execute(t, "-v", "new", t.TempDir(), "--lib", "core")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if !strings.Contains(stderr, "wrote workspace manifest") {
		t.Errorf("verbose stderr missing debug log: %q", stderr)
	}
}

func TestRunNew_quietByDefault(t *testing.T) {
	setupEnv(t)

	_, stderr, err := execute(t, "new", t.TempDir(), "--lib", "core")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if strings.Contains(stderr, "wrote workspace manifest") {
		t.Errorf("debug log shown without -v: %q", stderr)
	}
}

func TestRunNew_interactiveRequiresTTY(t *testing.T) {
	if ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}
	setupEnv(t)

	_, _, err := execute(t, "new", t.TempDir(), "-i")
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Fatalf("error = %v, want TTY requirement", err)
	}
}

func TestRunNew_requiresPath(t *testing.T) {
	setupEnv(t)
	if _, _, err := execute(t, "new"); err == nil {
		t.Fatal("expected error without a path argument")
	}
}
