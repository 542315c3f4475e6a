package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ResolvePath returns p unchanged when absolute, otherwise p joined onto the
// current working directory. The result must be valid UTF-8, and an
// unreadable working directory is reported as ErrInvalidPath.
func ResolvePath(p string) (string, error) {
	if !utf8.ValidString(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: reading current directory: %w", ErrInvalidPath, err)
	}
	resolved := filepath.Join(cwd, p)
	if !utf8.ValidString(resolved) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, resolved)
	}
	return resolved, nil
}

// EnsureTargetDir creates path if it is missing. An existing directory is
// accepted when empty, or when force is set; its contents are never removed.
func EnsureTargetDir(path string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(path, 0755); err != nil { //nolint:gosec // workspace dir needs to be world-readable
			return fmt.Errorf("creating workspace directory %s: %w", path, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("inspecting %s: %w", path, err)
	case !info.IsDir():
		return fmt.Errorf("%s exists and is %w", path, ErrNotADirectory)
	case force:
		return nil
	}

	empty, err := isEmptyDir(path)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("directory %s is %w (use --force to override)", path, ErrDirectoryNotEmpty)
	}
	return nil
}

func isEmptyDir(path string) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided target directory
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return false, nil
}
