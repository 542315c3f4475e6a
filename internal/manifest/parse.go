package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrParse is returned for manifests that are not valid TOML.
	ErrParse = errors.New("malformed manifest")
	// ErrShape is returned when the workspace key exists but is not a table.
	ErrShape = errors.New("unexpected manifest shape")
)

// Load reads and decodes a Cargo.toml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace manifest
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes Cargo.toml content after checking the workspace key is a table.
func Parse(data []byte) (*Manifest, error) {
	if _, err := ParseDocument(data); err != nil {
		return nil, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	return &m, nil
}

// decodeError classifies a go-toml failure as ErrParse, keeping the
// line and column the decoder reported.
func decodeError(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("%w: line %d, column %d: %w", ErrParse, row, col, derr)
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// checkShape rejects a workspace key that is anything other than a standard
// or dotted table.
func checkShape(tree map[string]any, entries []entry) error {
	v, ok := tree["workspace"]
	if !ok {
		return nil
	}
	if _, isTable := v.(map[string]any); !isTable {
		return fmt.Errorf("%w: workspace must be a table, found %s", ErrShape, describe(v))
	}
	for _, e := range entries {
		if e.kind == entryKeyValue && keyEqual(e.path(), "workspace") {
			return fmt.Errorf("%w: workspace must be a table, found an inline table", ErrShape)
		}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case []any, []map[string]any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int64, float64:
		return "a number"
	default:
		return fmt.Sprintf("a %T", v)
	}
}
