// Package manifest reads and edits the root Cargo.toml of a workspace.
// Edits are spliced into the original text so sections, keys and comments
// this tool does not own survive every rewrite unchanged.
package manifest
