package manifest

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Document is a Cargo.toml held as source text. Setters rewrite only the
// value they own and leave every other byte in place.
type Document struct {
	src []byte
}

// NewDocument returns a manifest containing an empty [workspace] table.
func NewDocument() *Document {
	return &Document{src: []byte("[workspace]\n")}
}

// ParseDocument validates data as TOML and checks that any workspace key is
// a table.
func ParseDocument(data []byte) (*Document, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, decodeError(err)
	}
	entries, err := statements(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := checkShape(tree, entries); err != nil {
		return nil, err
	}
	return &Document{src: append([]byte(nil), data...)}, nil
}

// Bytes returns the current document text.
func (d *Document) Bytes() []byte {
	return d.src
}

// SetResolver sets workspace.resolver, replacing any previous value.
func (d *Document) SetResolver(version string) error {
	return d.setWorkspaceKey("resolver", Quote(version))
}

// SetMembers replaces workspace.members with the given names in order.
func (d *Document) SetMembers(members []string) error {
	return d.setWorkspaceKey("members", stringArray(members))
}

// setWorkspaceKey writes workspace.<name> = value. An existing definition
// has its value replaced in place; otherwise the key is added where the
// workspace table is defined, or a new [workspace] table is created.
func (d *Document) setWorkspaceKey(name, value string) error {
	entries, err := statements(d.src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	header, lastInTable, lastDotted, firstSub := -1, -1, -1, -1
	for i, e := range entries {
		switch e.kind {
		case entryTable, entryArrayTable:
			if e.kind == entryTable && keyEqual(e.key, "workspace") {
				header = i
			}
			if firstSub < 0 && len(e.key) > 1 && e.key[0] == "workspace" {
				firstSub = i
			}
		case entryKeyValue:
			if keyEqual(e.path(), "workspace", name) {
				d.splice(e.valStart, e.valEnd, value)
				return nil
			}
			if keyEqual(e.table, "workspace") {
				lastInTable = i
			}
			if e.table == nil && e.key[0] == "workspace" {
				lastDotted = i
			}
		}
	}

	line := name + " = " + value + "\n"
	switch {
	case header >= 0:
		at := entries[header].end
		if lastInTable >= 0 {
			at = entries[lastInTable].end
		}
		d.insert(at, line)
	case lastDotted >= 0:
		d.insert(entries[lastDotted].end, "workspace."+line)
	case firstSub >= 0:
		d.insert(entries[firstSub].start, "[workspace]\n"+line+"\n")
	default:
		d.appendBlock("[workspace]\n" + line)
	}
	return nil
}

func (d *Document) splice(start, end int, text string) {
	out := make([]byte, 0, len(d.src)-(end-start)+len(text))
	out = append(out, d.src[:start]...)
	out = append(out, text...)
	d.src = append(out, d.src[end:]...)
}

// insert places text at offset at, first terminating an unterminated last line.
func (d *Document) insert(at int, text string) {
	if at > 0 && d.src[at-1] != '\n' {
		text = "\n" + text
	}
	d.splice(at, at, text)
}

func (d *Document) appendBlock(block string) {
	if len(d.src) > 0 {
		if d.src[len(d.src)-1] != '\n' {
			d.src = append(d.src, '\n')
		}
		if len(d.src) < 2 || d.src[len(d.src)-2] != '\n' {
			d.src = append(d.src, '\n')
		}
	}
	d.src = append(d.src, block...)
}

// Quote formats s as a TOML basic string.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func stringArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
