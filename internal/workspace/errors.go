package workspace

import (
	"errors"
	"fmt"
	"os/exec"
)

// Sentinel errors. They are phrased to read naturally inside the wrapping
// message, e.g. "directory /tmp/demo is not empty".
var (
	ErrDuplicateMember   = errors.New("declared multiple times")
	ErrInvalidPath       = errors.New("target path is not valid UTF-8")
	ErrNotADirectory     = errors.New("not a directory")
	ErrDirectoryNotEmpty = errors.New("not empty")
	ErrMemberExists      = errors.New("already exists")
	ErrCommandFailed     = errors.New("external command failed")
)

// CommandError reports an external tool that could not be started or
// exited with a non-zero status.
type CommandError struct {
	Command  string // e.g. "git init"
	Member   string // set for member scaffolding
	ExitCode int    // -1 when the process never ran to completion
	Err      error
}

func newCommandError(command, member string, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{Command: command, Member: member, ExitCode: code, Err: err}
}

func (e *CommandError) Error() string {
	subject := e.Command
	if e.Member != "" {
		subject = fmt.Sprintf("%s for %s", e.Command, e.Member)
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("failed to run %s: %v", subject, e.Err)
	}
	return fmt.Sprintf("%s failed with exit status %d: %v", subject, e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is makes every CommandError match ErrCommandFailed.
func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }
