package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided --from path
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return Parse(data)
}

// Parse parses plan content. Unknown keys are rejected so typos such as
// "lib:" do not silently drop members.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing plan YAML: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func validate(p *Plan) error {
	for field, names := range map[string][]string{"libs": p.Libs, "bins": p.Bins} {
		for i, name := range names {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("plan: %s[%d] is empty", field, i)
			}
		}
	}
	return nil
}
