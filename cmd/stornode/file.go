package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stornode/stornode"
	"github.com/stornode/stornode/api"
)

var getCmd = &cobra.Command{
	Use:   "get path [local]",
	Short: "Download a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		file, err := c.DownloadFile(ctx, args[0], nil)
		if err != nil {
			return err
		}
		defer file.Close()
		local := path.Base(args[0])
		if len(args) == 2 {
			local = args[1]
		} else if file.Name != "" {
			local = file.Name
		}
		out, err := os.Create(local)
		if err != nil {
			return err
		}
		defer out.Close()
		n, err := io.Copy(out, file.Body)
		if err != nil {
			return err
		}
		logrus.Debugf("downloaded %s (%s)", local, humanize.Bytes(uint64(n)))
		return nil
	}),
}

var (
	putChunkSize int64
	putSession   string
)

var putCmd = &cobra.Command{
	Use:   "put local path",
	Short: "Upload a file",
	Long: `Upload a local file to the given path in the bucket.

By default the file goes up in a single exchange. With --chunk-size the
upload runs over a durable session in chunks of that many bytes and can
be continued after an interruption by passing the printed session code
back with --session.`,
	Args: cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()
		fi, err := in.Stat()
		if err != nil {
			return err
		}
		size := fi.Size()

		if putChunkSize <= 0 && putSession == "" {
			return c.UploadFile(ctx, args[1], in, size)
		}
		if putChunkSize <= 0 {
			putChunkSize = 8 << 20
		}

		session := putSession
		offset := int64(0)
		if session == "" {
			info, err := c.StartUploadSession(ctx, args[1], size)
			if err != nil {
				return err
			}
			session = info.Code
			fmt.Printf("session %s (valid %ds)\n", info.Code, info.Validity)
		} else {
			offset, err = c.ResumeUploadSession(ctx, session)
			if err != nil {
				return err
			}
			if _, err := in.Seek(offset, io.SeekStart); err != nil {
				return err
			}
			logrus.Debugf("resuming session %s at offset %d", session, offset)
		}

		for offset < size {
			n := putChunkSize
			if remaining := size - offset; remaining < n {
				n = remaining
			}
			if err := c.PutFile(ctx, session, io.LimitReader(in, n), n); err != nil {
				return err
			}
			offset += n
		}
		return nil
	}),
}

var mvCmd = &cobra.Command{
	Use:   "mv path newname",
	Short: "Rename a file",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		return c.RenameFile(ctx, args[0], args[1])
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm path",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		return c.DeleteFile(ctx, args[0])
	}),
}

var catCmd = &cobra.Command{
	Use:   "cat path",
	Short: "Write a file, or a byte range of it, to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, c *stornode.Connector, args []string) error {
		var rng *api.Range
		if catStart >= 0 || catEnd >= 0 {
			rng = &api.Range{Start: catStart, End: catEnd}
		}
		file, err := c.DownloadFile(ctx, args[0], rng)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(os.Stdout, file.Body)
		return err
	}),
}

var (
	catStart int64
	catEnd   int64
)

func init() {
	putCmd.Flags().Int64Var(&putChunkSize, "chunk-size", 0, "upload in chunks of this many bytes over a durable session")
	putCmd.Flags().StringVar(&putSession, "session", "", "continue an interrupted chunked upload with this session code")
	catCmd.Flags().Int64Var(&catStart, "start", -1, "first byte to fetch")
	catCmd.Flags().Int64Var(&catEnd, "end", -1, "last byte to fetch")
	rootCmd.AddCommand(getCmd, putCmd, mvCmd, rmCmd, catCmd)
}
