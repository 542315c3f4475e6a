package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fbkclanna/wg/internal/manifest"
)

const (
	GitignoreFile = ".gitignore"
	ToolchainFile = "rust-toolchain.toml"
)

// gitignoreContent ignores cargo's build output and the lockfile.
const gitignoreContent = "/target\nCargo.lock\n"

// WriteGitignore creates root/.gitignore. An existing file is left as is and
// reported through the returned bool.
func WriteGitignore(root string) (created bool, err error) {
	path := filepath.Join(root, GitignoreFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644) //nolint:gosec // .gitignore needs to be readable
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(gitignoreContent); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// WriteToolchain pins channel in root/rust-toolchain.toml, replacing any
// existing file.
func WriteToolchain(root, channel string) error {
	path := filepath.Join(root, ToolchainFile)
	content := "[toolchain]\nchannel = " + manifest.Quote(channel) + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // toolchain file needs to be readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
