package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/wg/internal/cargo"
	"github.com/fbkclanna/wg/internal/workspace"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a member to an existing workspace",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	cmd.Flags().Bool("bin", false, "Create a binary instead of a library")
	cmd.Flags().String("root", ".", "Workspace root directory")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	isBin, _ := cmd.Flags().GetBool("bin")
	root, _ := cmd.Flags().GetString("root")

	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	kind := workspace.Library
	if isBin {
		kind = workspace.Binary
	}

	creator := &workspace.Creator{
		Cargo:   cargo.NewClient(cfg.Cargo),
		Edition: cfg.Edition,
		Log:     logger,
		Out:     cmd.ErrOrStderr(),
	}
	res, err := creator.Add(root, name, kind)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), fmt.Sprintf("added %s %s to %s", kind, name, res.Root), res.Members)
	return nil
}
