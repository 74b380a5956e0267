// Command stornode is a command line client for a storage node.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stornode/stornode"
)

var rootCmd = &cobra.Command{
	Use:   "stornode",
	Short: "Client for a storage node",
	Long: `stornode talks to a remote storage node service and lets you
upload, download, list and manage files and directories inside one
application/bucket scope.

Connection settings come from flags or from STORNODE_* environment
variables (STORNODE_TOKEN, STORNODE_APP, STORNODE_BUCKET,
STORNODE_HOST, STORNODE_HTTPS).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// newConnector builds a Connector from the resolved configuration
func newConnector() (*stornode.Connector, error) {
	opt := stornode.Config{
		Token:    viper.GetString("token"),
		App:      viper.GetString("app"),
		Bucket:   viper.GetString("bucket"),
		Host:     viper.GetString("host"),
		UseHTTPS: viper.GetBool("https"),
	}
	if opt.Host == "" {
		return nil, fmt.Errorf("no storage node host configured (--host or STORNODE_HOST)")
	}
	if opt.App == "" || opt.Bucket == "" {
		return nil, fmt.Errorf("application and bucket must be configured (--app/--bucket or STORNODE_APP/STORNODE_BUCKET)")
	}
	return stornode.New(opt), nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("host", "", "host[:port] of the storage node")
	flags.String("app", "", "application identifier")
	flags.String("bucket", "", "bucket identifier")
	flags.String("token", "", "bearer access token")
	flags.Bool("https", false, "use TLS when talking to the node")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	for _, name := range []string{"host", "app", "bucket", "token", "https", "verbose"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("stornode")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run wraps a command body with the shared Connector setup
func run(body func(ctx context.Context, c *stornode.Connector, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newConnector()
		if err != nil {
			return err
		}
		return body(cmd.Context(), c, args)
	}
}
