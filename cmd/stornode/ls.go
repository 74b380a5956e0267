package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/stornode/stornode"
	"github.com/stornode/stornode/api"
)

var (
	listStart int64
	listEnd   int64
)

// listRange builds the pagination range from the --start/--end flags
func listRange() *api.Range {
	if listStart < 0 && listEnd < 0 {
		return nil
	}
	return &api.Range{Start: listStart, End: listEnd}
}

func printEntities(entities []api.Entity) {
	for _, e := range entities {
		size := humanize.Bytes(uint64(e.Size))
		if e.IsDir {
			size = "-"
		}
		fmt.Printf("%10s %s %s\n", size, e.ModTime().Format(time.RFC3339), e.Name)
	}
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List files in the bucket, or the entries of a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		var entities []api.Entity
		var err error
		if len(args) == 0 {
			entities, err = c.ListFiles(ctx, listRange())
		} else {
			entities, err = c.ListDirectory(ctx, args[0], listRange())
		}
		if err != nil {
			return err
		}
		printEntities(entities)
		return nil
	}),
}

var lsdCmd = &cobra.Command{
	Use:   "lsd",
	Short: "List directories in the bucket",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		entities, err := c.ListDirectories(ctx, listRange())
		if err != nil {
			return err
		}
		printEntities(entities)
		return nil
	}),
}

var statCmd = &cobra.Command{
	Use:   "stat path",
	Short: "Describe a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		e, err := c.Stat(ctx, args[0])
		if err != nil {
			return err
		}
		kind := "file"
		if e.IsDir {
			kind = "directory"
		}
		fmt.Printf("%s: %s, %s, modified %s\n", e.Name, kind, humanize.Bytes(uint64(e.Size)), e.ModTime().Format(time.RFC3339))
		return nil
	}),
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show bucket quota and usage",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		b, err := c.BucketInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Bucket:   %s (%s/%s)\n", b.Name, b.AppID, b.BucketID)
		fmt.Printf("Files:    %d\n", b.FileCount)
		fmt.Printf("Used:     %s of %s\n", humanize.Bytes(uint64(b.SpaceTaken)), humanize.Bytes(uint64(b.Quota)))
		fmt.Printf("Features: encryption=%v atomic_upload=%v\n", b.Encryption, b.AtomicUpload)
		return nil
	}),
}

func init() {
	for _, cmd := range []*cobra.Command{lsCmd, lsdCmd} {
		cmd.Flags().Int64Var(&listStart, "start", -1, "first entry to list")
		cmd.Flags().Int64Var(&listEnd, "end", -1, "last entry to list")
	}
	rootCmd.AddCommand(lsCmd, lsdCmd, statCmd, infoCmd)
}
