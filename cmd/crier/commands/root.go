// Package commands implements the CLI commands for crier.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/crier/internal/app"
	"go.trai.ch/crier/internal/build"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes the environment variables that back the command line flags.
const EnvPrefix = "CRIER"

// Application represents the application logic interface.
type Application interface {
	Published(ctx context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error)
	Clean(ctx context.Context) error
}

// FormatSwitcher switches log output between pretty and JSON.
type FormatSwitcher interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for crier.
type CLI struct {
	app       Application
	logFormat FormatSwitcher
	rootCmd   *cobra.Command
	settings  *viper.Viper
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "crier",
		Short:         "Report the published state of the packages in a Cargo workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("config", "", "Read the configuration from this file instead of searching for crier.yaml")
	rootCmd.PersistentFlags().String("trace-file", "", "Write the spans of the run to this file as JSON")

	settings := viper.New()
	settings.SetEnvPrefix(EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	c := &CLI{
		app:      a,
		rootCmd:  rootCmd,
		settings: settings,
	}

	rootCmd.AddCommand(c.newPublishedCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetLogFormat registers the logger that follows the --json flag.
func (c *CLI) SetLogFormat(l FormatSwitcher) {
	c.logFormat = l
}

// bindFlags makes every flag of cmd readable through settings, with CRIER_<FLAG>
// environment variables as fallback.
func (c *CLI) bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if err := c.settings.BindPFlag(f.Name, f); err != nil {
			bindErr = zerr.With(zerr.Wrap(err, "failed to bind flag"), "flag", f.Name)
		}
	})
	return bindErr
}
