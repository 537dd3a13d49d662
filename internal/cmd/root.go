/*
Package cmd provides the CLI commands for the mailtrap tool.
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mailtrap "github.com/mailtrap/mailtrap-go"
)

var (
	verbose      bool
	debug        bool
	bulk         bool
	sandboxInbox int64
	defaultsFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mailtrap",
	Short: "Send email through the Mailtrap API",
	Long: `mailtrap sends transactional and bulk email through the Mailtrap API.

The API key is read from the MAILTRAP_API_KEY environment variable.
Messages are described in YAML files; a defaults file can supply shared
fields such as the sender address.

Example:
  mailtrap send message.yaml
  mailtrap send --defaults team.yaml message.yaml
  mailtrap batch --bulk campaign.yaml
  mailtrap send --sandbox-inbox 42 message.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&bulk, "bulk", false, "use the bulk sending stream")
	rootCmd.PersistentFlags().Int64Var(&sandboxInbox, "sandbox-inbox", 0, "send to the sandbox inbox with this ID instead of real recipients")
	rootCmd.PersistentFlags().StringVarP(&defaultsFile, "defaults", "d", "", "YAML file with default message fields")

	// Add subcommands
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// newClient builds a client from the environment and the global flags.
func newClient() (*mailtrap.Client, error) {
	opts := []mailtrap.Option{mailtrap.WithLogger(log.Default())}
	if bulk {
		opts = append(opts, mailtrap.WithBulk())
	}
	if sandboxInbox != 0 {
		opts = append(opts, mailtrap.WithSandbox(sandboxInbox))
	}

	client, err := mailtrap.NewFromEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("configure client: %w", err)
	}
	return client, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mailtrap", mailtrap.Version)
	},
}
