package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/wg/internal/cargo"
	"github.com/fbkclanna/wg/internal/git"
	"github.com/fbkclanna/wg/internal/ui"
)

const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "FAIL"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that cargo and git are usable",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type check struct {
	name   string
	status string
	detail string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	checks := checkCargo(cargo.NewClient(cfg.Cargo))
	checks = append(checks, checkGit())

	out := cmd.OutOrStdout()
	p := ui.NewPainter(out)
	tbl := ui.NewTable(out, "CHECK", "STATUS", "DETAIL")
	failed := false
	for _, c := range checks {
		status := c.status
		switch c.status {
		case statusOK:
			status = p.OK(status)
		case statusFail:
			failed = true
			status = p.Error(status)
		}
		logger.Debug("doctor check", "check", c.name, "status", c.status)
		tbl.Row(c.name, status, c.detail)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if failed {
		return fmt.Errorf("doctor checks failed")
	}
	return nil
}

// checkCargo reports whether cargo is on PATH and new enough for edition
// 2024 workspaces.
func checkCargo(c *cargo.Client) []check {
	path, err := c.LookPath()
	if err != nil {
		return []check{{"cargo", statusFail, fmt.Sprintf("%s not found; install Rust from https://rustup.rs/", c.Bin())}}
	}
	checks := []check{{"cargo", statusOK, path}}

	v, err := c.Version()
	switch {
	case err != nil:
		checks = append(checks, check{"cargo version", statusFail, err.Error()})
	case !cargo.Supports(v):
		checks = append(checks, check{"cargo version", statusFail,
			fmt.Sprintf("%s is older than %s; run rustup update", v, cargo.MinVersion)})
	default:
		checks = append(checks, check{"cargo version", statusOK, v.String()})
	}
	return checks
}

// checkGit only warns: git is needed for --git alone.
func checkGit() check {
	if !git.IsGitInstalled() {
		return check{"git", statusWarn, "not found; --git will fail"}
	}
	v, err := git.Version()
	if err != nil {
		return check{"git", statusWarn, err.Error()}
	}
	return check{"git", statusOK, v}
}
