package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// LoadDocument reads the manifest at path, or returns a fresh document
// when the file does not exist.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace manifest
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// WriteWorkspace reads or creates root/Cargo.toml, pins the resolver and
// replaces the members list with members, then writes the file back.
// Other content of an existing manifest is kept as written.
func WriteWorkspace(root string, members []string) error {
	path := filepath.Join(root, FileName)
	doc, err := LoadDocument(path)
	if err != nil {
		return err
	}
	if err := doc.SetResolver(ResolverVersion); err != nil {
		return fmt.Errorf("editing %s: %w", path, err)
	}
	if err := doc.SetMembers(members); err != nil {
		return fmt.Errorf("editing %s: %w", path, err)
	}
	if err := verify(doc.Bytes(), members); err != nil {
		return fmt.Errorf("editing %s: %w", path, err)
	}
	if err := os.WriteFile(path, doc.Bytes(), 0644); err != nil { //nolint:gosec // manifest needs to be readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// verify decodes edited output and checks the workspace fields came out as
// requested. A members or resolver key defined as a sub-table cannot be
// replaced in place and is caught here.
func verify(data []byte, members []string) error {
	m, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%w: edited manifest does not decode: %w", ErrShape, err)
	}
	if m.Workspace == nil || m.Workspace.Resolver != ResolverVersion || !slices.Equal(m.Workspace.Members, members) {
		return fmt.Errorf("%w: workspace fields did not take the written values", ErrShape)
	}
	return nil
}
