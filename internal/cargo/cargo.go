package cargo

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultEdition is passed to cargo new unless configured otherwise.
const DefaultEdition = "2024"

// MinVersion is the first cargo release that supports edition 2024 and
// workspace resolver 3.
var MinVersion = semver.MustParse("1.85.0")

// Client runs a cargo executable.
type Client struct {
	bin string
}

// NewClient returns a client for the given executable, "cargo" when empty.
func NewClient(bin string) *Client {
	if bin == "" {
		bin = "cargo"
	}
	return &Client{bin: bin}
}

// Bin returns the configured executable name or path.
func (c *Client) Bin() string {
	return c.bin
}

// PackageOpts configures cargo new.
type PackageOpts struct {
	Edition string
	Binary  bool
}

// NewPackage runs `cargo new` for name inside dir. Version control is left
// to the workspace, and output is limited to errors.
func (c *Client) NewPackage(dir, name string, opts PackageOpts) error {
	return c.runQuiet(dir, newArgs(name, opts)...)
}

func newArgs(name string, opts PackageOpts) []string {
	edition := opts.Edition
	if edition == "" {
		edition = DefaultEdition
	}
	args := []string{"new", name, "--edition", edition, "--vcs", "none", "--quiet"}
	if opts.Binary {
		return append(args, "--bin")
	}
	return append(args, "--lib")
}

// LookPath resolves the executable on PATH.
func (c *Client) LookPath() (string, error) {
	return exec.LookPath(c.bin)
}

// Version runs `cargo --version` and parses the release number.
func (c *Client) Version() (*semver.Version, error) {
	out, err := c.outputQuiet(".", "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

// ParseVersion extracts the version from `cargo --version` output such as
// "cargo 1.86.0 (adf9b6ad1 2025-02-28)".
func ParseVersion(out string) (*semver.Version, error) {
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[0] != "cargo" {
		return nil, fmt.Errorf("unexpected cargo --version output: %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parsing cargo version %q: %w", fields[1], err)
	}
	return v, nil
}

// Supports reports whether v is at least MinVersion. Nightly and beta builds
// of the minimum release count as supported.
func Supports(v *semver.Version) bool {
	core, err := v.SetPrerelease("")
	if err != nil {
		return false
	}
	return !core.LessThan(MinVersion)
}

// runQuiet executes cargo without printing stdout.
// Stderr is captured and included in the error message on failure.
func (c *Client) runQuiet(dir string, args ...string) error {
	cmd := exec.Command(c.bin, args...) //nolint:gosec // binary comes from user configuration
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *Client) outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command(c.bin, args...) //nolint:gosec // binary comes from user configuration
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cargo %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
