// Package workspace creates Cargo workspaces on disk. It validates the
// requested member names, prepares the target directory, writes the root
// manifest and auxiliary files, and scaffolds members through cargo.
package workspace
