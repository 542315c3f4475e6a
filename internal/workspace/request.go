package workspace

import "fmt"

// MemberKind selects the package flavor passed to cargo new.
type MemberKind int

const (
	Library MemberKind = iota
	Binary
)

func (k MemberKind) String() string {
	if k == Binary {
		return "binary"
	}
	return "library"
}

// Request describes one workspace to create.
type Request struct {
	Path      string
	Libs      []string
	Bins      []string
	Git       bool
	Force     bool
	Toolchain string // empty means no rust-toolchain.toml
}

// Members returns libraries followed by binaries, each in request order.
// This is the order written to workspace.members.
func (r Request) Members() []string {
	combined := make([]string, 0, len(r.Libs)+len(r.Bins))
	combined = append(combined, r.Libs...)
	return append(combined, r.Bins...)
}

// CheckDuplicates fails if any name appears more than once across libs and
// bins. Comparison is exact and case-sensitive.
func CheckDuplicates(libs, bins []string) error {
	seen := make(map[string]bool, len(libs)+len(bins))
	for _, list := range [][]string{libs, bins} {
		for _, name := range list {
			if seen[name] {
				return fmt.Errorf("member %s %w", name, ErrDuplicateMember)
			}
			seen[name] = true
		}
	}
	return nil
}
