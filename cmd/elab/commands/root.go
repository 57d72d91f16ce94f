// Package commands implements the CLI commands for the elab tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/elab/internal/app"
	"go.trai.ch/elab/internal/build"
)

// CLI represents the command line interface for elab.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	logger  jsonLogger
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Theories(ctx context.Context, dir string) error
}

// jsonLogger is a logger that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "elab",
		Short:         "Elaborate and validate notebook model documents",
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

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Directory to search for elab.yaml from")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logger == nil {
			return
		}
		jsonLogs, _ := cmd.Flags().GetBool("json")
		c.logger.SetJSON(jsonLogs)
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newTheoriesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// SetLogger lets the --json flag switch the format of the given logger.
// Loggers without JSON support are ignored.
func (c *CLI) SetLogger(l any) {
	if jl, ok := l.(jsonLogger); ok {
		c.logger = jl
	}
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

func dirFlag(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("dir")
	return dir
}
