// Command plantasks converts a free-form paragraph into task titles with the
// same generator the API server uses, without a database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd(defaultGeneratorFactory).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd(newGenerator generatorFactory) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "plantasks",
		Short:         "Turn a paragraph into a list of tasks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(convertCmd(opts, newGenerator))
	rootCmd.AddCommand(checkCmd(opts, newGenerator))

	return rootCmd
}
