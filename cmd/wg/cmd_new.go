package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/wg/internal/cargo"
	"github.com/fbkclanna/wg/internal/plan"
	"github.com/fbkclanna/wg/internal/ui"
	"github.com/fbkclanna/wg/internal/workspace"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a Cargo workspace with library and binary members",
		Args:  cobra.ExactArgs(1),
		RunE:  runNew,
	}
	cmd.Flags().StringArray("lib", nil, "Library member to create (repeatable)")
	cmd.Flags().StringArray("bin", nil, "Binary member to create (repeatable)")
	cmd.Flags().Bool("git", false, "Initialize a git repository in the workspace")
	cmd.Flags().Bool("force", false, "Allow a non-empty target directory")
	cmd.Flags().String("toolchain", "", "Pin a toolchain channel in rust-toolchain.toml")
	cmd.Flags().String("from", "", "Read members and settings from a YAML plan file")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for member names")
	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	libs, _ := cmd.Flags().GetStringArray("lib")
	bins, _ := cmd.Flags().GetStringArray("bin")
	force, _ := cmd.Flags().GetBool("force")
	from, _ := cmd.Flags().GetString("from")
	interactive, _ := cmd.Flags().GetBool("interactive")

	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	req := workspace.Request{
		Path:      args[0],
		Force:     force,
		Git:       cfg.InitGit,
		Toolchain: cfg.Toolchain,
	}

	if from != "" {
		p, err := plan.Load(from)
		if err != nil {
			return fmt.Errorf("reading --from %s: %w", from, err)
		}
		req.Libs = append(req.Libs, p.Libs...)
		req.Bins = append(req.Bins, p.Bins...)
		req.Git = p.InitGit(req.Git)
		if p.Toolchain != "" {
			req.Toolchain = p.Toolchain
		}
		logger.Debug("loaded plan", "path", from, "libs", len(p.Libs), "bins", len(p.Bins))
	}
	req.Libs = append(req.Libs, libs...)
	req.Bins = append(req.Bins, bins...)
	if cmd.Flags().Changed("git") {
		req.Git, _ = cmd.Flags().GetBool("git")
	}
	if cmd.Flags().Changed("toolchain") {
		req.Toolchain, _ = cmd.Flags().GetString("toolchain")
		if strings.TrimSpace(req.Toolchain) == "" {
			return fmt.Errorf("--toolchain requires a channel name, e.g. stable or nightly")
		}
	}

	if interactive {
		if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
			return fmt.Errorf("interactive mode requires a TTY; use --lib/--bin or --from instead")
		}
		req, err = promptRequest(req)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
	}

	creator := &workspace.Creator{
		Cargo:   cargo.NewClient(cfg.Cargo),
		Edition: cfg.Edition,
		Log:     logger,
		Out:     cmd.ErrOrStderr(),
	}
	res, err := creator.Create(req)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), fmt.Sprintf("workspace created at %s", res.Root), res.Members)
	return nil
}

func printSummary(out io.Writer, headline string, members []string) {
	p := ui.NewPainter(out)
	_, _ = fmt.Fprintln(out, p.OK(headline))
	if len(members) > 0 {
		_, _ = fmt.Fprintf(out, "members: %s\n", strings.Join(members, ", "))
	}
}
