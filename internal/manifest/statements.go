package manifest

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2/unstable"
)

type entryKind int

const (
	entryTable entryKind = iota
	entryArrayTable
	entryKeyValue
)

// entry is one top-level statement of a TOML document: a table header or a
// key/value pair. Offsets index into the parsed source.
type entry struct {
	kind  entryKind
	table []string // enclosing header key; nil at the root
	key   []string

	start int // beginning of the statement's line
	end   int // just past the statement's line terminator

	valStart int
	valEnd   int
}

// path returns the absolute key path of the statement.
func (e entry) path() []string {
	if e.kind != entryKeyValue {
		return e.key
	}
	p := make([]string, 0, len(e.table)+len(e.key))
	p = append(p, e.table...)
	return append(p, e.key...)
}

func keyEqual(key []string, want ...string) bool {
	if len(key) != len(want) {
		return false
	}
	for i := range key {
		if key[i] != want[i] {
			return false
		}
	}
	return true
}

// statements indexes the headers and key/values of src in document order.
// Key nodes carry byte ranges; a value ends at the last non-blank byte
// before the next top-level expression or its trailing comment.
func statements(src []byte) ([]entry, error) {
	p := unstable.Parser{KeepComments: true}
	p.Reset(src)

	var (
		entries []entry
		table   []string
		pending = -1
	)
	closeValue := func(bound int) {
		if pending < 0 {
			return
		}
		e := &entries[pending]
		e.valEnd = e.valStart + len(bytes.TrimRight(src[e.valStart:bound], " \t\r\n"))
		e.end = lineEnd(src, e.valEnd)
		pending = -1
	}

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Comment:
			closeValue(int(expr.Raw.Offset))
		case unstable.Table, unstable.ArrayTable:
			key, first, last := keyOf(expr)
			start := lineStart(src, first)
			closeValue(start)
			e := entry{kind: entryTable, key: key, start: start, end: lineEnd(src, last)}
			if expr.Kind == unstable.ArrayTable {
				e.kind = entryArrayTable
			}
			table = key
			entries = append(entries, e)
		case unstable.KeyValue:
			key, first, last := keyOf(expr)
			start := lineStart(src, first)
			closeValue(start)
			valStart, err := valueStart(src, last)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{
				kind:     entryKeyValue,
				table:    table,
				key:      key,
				start:    start,
				valStart: valStart,
			})
			pending = len(entries) - 1
			if c := expr.Next(); c != nil && c.Kind == unstable.Comment {
				closeValue(int(c.Raw.Offset))
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	closeValue(len(src))
	return entries, nil
}

// keyOf returns the decoded key parts of a header or key/value with the
// offsets where the key text begins and ends.
func keyOf(expr *unstable.Node) (key []string, first, last int) {
	it := expr.Key()
	for it.Next() {
		n := it.Node()
		if key == nil {
			first = int(n.Raw.Offset)
		}
		key = append(key, string(n.Data))
		last = int(n.Raw.Offset + n.Raw.Length)
	}
	return key, first, last
}

// valueStart skips the separator between a key ending at off and its value.
func valueStart(src []byte, off int) (int, error) {
	i := skipBlank(src, off)
	if i >= len(src) || src[i] != '=' {
		return 0, fmt.Errorf("line %d: expected '=' after key", bytes.Count(src[:off], []byte("\n"))+1)
	}
	return skipBlank(src, i+1), nil
}

func skipBlank(src []byte, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

func lineStart(src []byte, off int) int {
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func lineEnd(src []byte, off int) int {
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i + 1
	}
	return len(src)
}
