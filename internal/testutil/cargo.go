package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeCargo is a shell script standing in for cargo. `new NAME ...` creates
// NAME/Cargo.toml and NAME/src in the working directory, `--version` reports
// 1.86.0, and every invocation's arguments are appended to a log.
type FakeCargo struct {
	Path string
	log  string
}

// NewFakeCargo creates a working fake cargo in a temp directory.
func NewFakeCargo(t *testing.T) *FakeCargo {
	t.Helper()
	return writeFakeCargo(t, 0)
}

// FailingCargo creates a fake cargo whose `new` exits with code.
func FailingCargo(t *testing.T, code int) *FakeCargo {
	t.Helper()
	return writeFakeCargo(t, code)
}

func writeFakeCargo(t *testing.T, failCode int) *FakeCargo {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a POSIX shell script")
	}
	dir := t.TempDir()
	fc := &FakeCargo{
		Path: filepath.Join(dir, "cargo"),
		log:  filepath.Join(dir, "calls.log"),
	}
	script := fmt.Sprintf(`#!/bin/sh
echo "$*" >> '%s'
if [ "$1" = "--version" ]; then
  echo "cargo 1.86.0 (adf9b6ad1 2025-02-28)"
  exit 0
fi
if [ "$1" != "new" ]; then
  echo "error: unsupported subcommand $1" >&2
  exit 1
fi
if [ %d -ne 0 ]; then
  echo "error: simulated failure" >&2
  exit %d
fi
mkdir "$2" && mkdir "$2/src" || exit 1
printf '[package]\nname = "%%s"\n' "$2" > "$2/Cargo.toml"
`, fc.log, failCode, failCode)

	if err := os.WriteFile(fc.Path, []byte(script), 0755); err != nil { //nolint:gosec // test script must be executable
		t.Fatal(err)
	}
	return fc
}

// Calls returns the argument lists of every invocation so far.
func (fc *FakeCargo) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(fc.log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
