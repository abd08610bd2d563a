// Package cli provides the command-line interface for pullcaps.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullcaps/pushshift-client/pkg/logging"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	flagUserAgent string
	flagRedis     string
	flagVerbose   bool
	flagPretty    bool
)

var rootCmd = &cobra.Command{
	Use:   "pullcaps",
	Short: "Fetch Reddit posts and comments from the PushShift archive",
	Long: "pullcaps streams historical Reddit content from the PushShift API,\n" +
		"handling pagination, rate limiting, and retries. Results are written\n" +
		"to stdout as newline-delimited JSON.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := logging.LevelWarn
		if flagVerbose {
			level = logging.LevelDebug
		}
		logging.Setup(logging.Config{Level: level, Pretty: flagPretty})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("pullcaps %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", os.Getenv("PULLCAPS_USER_AGENT"),
		"User-Agent header sent to PushShift (env: PULLCAPS_USER_AGENT)")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", os.Getenv("PULLCAPS_REDIS_ADDR"),
		"Redis address for response caching, e.g. localhost:6379 (env: PULLCAPS_REDIS_ADDR)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", false, "human-readable log output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
