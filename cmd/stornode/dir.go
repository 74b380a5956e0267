package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stornode/stornode"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir path",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		return c.CreateDirectory(ctx, args[0])
	}),
}

var rmdirRecursive bool

var rmdirCmd = &cobra.Command{
	Use:   "rmdir path",
	Short: "Delete a directory",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		return c.DeleteDirectory(ctx, args[0], rmdirRecursive)
	}),
}

var mvdirCmd = &cobra.Command{
	Use:   "mvdir path newname",
	Short: "Rename a directory",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		return c.RenameDirectory(ctx, args[0], args[1])
	}),
}

func init() {
	rmdirCmd.Flags().BoolVarP(&rmdirRecursive, "recursive", "r", false, "delete the directory contents too")
	rootCmd.AddCommand(mkdirCmd, rmdirCmd, mvdirCmd)
}
