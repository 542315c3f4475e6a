package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/wg/internal/cargo"
	"github.com/fbkclanna/wg/internal/git"
	"github.com/fbkclanna/wg/internal/manifest"
	"github.com/fbkclanna/wg/internal/ui"
)

// PackageCreator creates one member package inside a directory.
type PackageCreator interface {
	NewPackage(dir, name string, opts cargo.PackageOpts) error
}

// Creator runs the workspace creation steps in order. A zero Creator is not
// usable; Cargo must be set.
type Creator struct {
	Cargo    PackageCreator
	InitRepo func(dir string) error // git.Init when nil
	Edition  string                 // cargo.DefaultEdition when empty
	Log      *log.Logger
	Out      io.Writer // per-member progress lines
}

// Result describes the workspace on disk after a successful run.
type Result struct {
	Root    string
	Members []string
}

// Create builds the workspace described by req. It stops at the first
// failure and leaves whatever was already written in place.
func (c *Creator) Create(req Request) (*Result, error) {
	if err := CheckDuplicates(req.Libs, req.Bins); err != nil {
		return nil, err
	}
	root, err := ResolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	if err := EnsureTargetDir(root, req.Force); err != nil {
		return nil, err
	}
	logger := c.logger()
	logger.Debug("target directory ready", "path", root, "force", req.Force)

	// cargo new reads the enclosing workspace manifest, so it must exist
	// and be valid before any member is created.
	if err := manifest.WriteWorkspace(root, nil); err != nil {
		return nil, err
	}
	created, err := WriteGitignore(root)
	if err != nil {
		return nil, err
	}
	if !created {
		logger.Debug("keeping existing file", "file", GitignoreFile)
	}
	if req.Toolchain != "" {
		if err := WriteToolchain(root, req.Toolchain); err != nil {
			return nil, err
		}
		logger.Debug("pinned toolchain", "channel", req.Toolchain)
	}
	if req.Git {
		if err := c.initRepo(root); err != nil {
			return nil, err
		}
		logger.Debug("initialized git repository", "path", root)
	}

	progress := ui.NewProgress(c.out(), len(req.Libs)+len(req.Bins))
	if err := c.scaffold(root, req.Libs, Library, progress); err != nil {
		return nil, err
	}
	if err := c.scaffold(root, req.Bins, Binary, progress); err != nil {
		return nil, err
	}

	members := req.Members()
	if err := manifest.WriteWorkspace(root, members); err != nil {
		return nil, err
	}
	logger.Debug("wrote workspace manifest", "members", members)
	return &Result{Root: root, Members: members}, nil
}

// Add scaffolds one more member into the workspace at path and appends it
// to workspace.members after the existing entries.
func (c *Creator) Add(path, name string, kind MemberKind) (*Result, error) {
	root, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(root, manifest.FileName)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if m.Workspace == nil {
		return nil, fmt.Errorf("%s has no [workspace] table: %w", manifestPath, manifest.ErrShape)
	}
	if m.Workspace.HasMember(name) {
		return nil, fmt.Errorf("member %s %w", name, ErrDuplicateMember)
	}

	if err := c.scaffold(root, []string{name}, kind, ui.NewProgress(c.out(), 1)); err != nil {
		return nil, err
	}
	members := append(slices.Clone(m.Workspace.Members), name)
	if err := manifest.WriteWorkspace(root, members); err != nil {
		return nil, err
	}
	return &Result{Root: root, Members: members}, nil
}

// scaffold creates each named member in order. An existing entry with a
// member's name stops the run before cargo is invoked for it.
func (c *Creator) scaffold(root string, names []string, kind MemberKind, progress *ui.Progress) error {
	opts := cargo.PackageOpts{Edition: c.Edition, Binary: kind == Binary}
	for _, name := range names {
		dir := filepath.Join(root, name)
		if _, err := os.Lstat(dir); err == nil {
			return fmt.Errorf("member %s %w at %s", name, ErrMemberExists, dir)
		}
		c.logger().Debug("running cargo new", "member", name, "kind", kind)
		if err := c.Cargo.NewPackage(root, name, opts); err != nil {
			return newCommandError("cargo new", name, err)
		}
		progress.Done(fmt.Sprintf("created %s %s", kind, name))
	}
	return nil
}

func (c *Creator) initRepo(root string) error {
	initRepo := c.InitRepo
	if initRepo == nil {
		initRepo = git.Init
	}
	if err := initRepo(root); err != nil {
		return newCommandError("git init", "", err)
	}
	return nil
}

func (c *Creator) logger() *log.Logger {
	if c.Log == nil {
		return log.New(io.Discard)
	}
	return c.Log
}

func (c *Creator) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}
