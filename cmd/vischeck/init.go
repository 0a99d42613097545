package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vischeck/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a vischeck.toml with the default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return fmt.Errorf("failed to get force flag: %w", err)
		}
		path, err := project.WriteDefault(dir, force)
		if errors.Is(err, project.ErrManifestExists) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing vischeck.toml")
}
