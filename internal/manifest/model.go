package manifest

const (
	// FileName is the root manifest written into every workspace.
	FileName = "Cargo.toml"

	// ResolverVersion is the workspace dependency resolver pinned on every write.
	ResolverVersion = "3"
)

// Manifest is the decoded view of a Cargo.toml. Only the fields this tool
// owns are mapped; everything else is ignored on decode.
type Manifest struct {
	Workspace *Workspace `toml:"workspace"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Resolver string   `toml:"resolver"`
	Members  []string `toml:"members"`
}

// HasMember reports whether name is listed in members.
func (w *Workspace) HasMember(name string) bool {
	if w == nil {
		return false
	}
	for _, m := range w.Members {
		if m == name {
			return true
		}
	}
	return false
}
