package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/radarmap/cmd/radarmap/cmd/update"
)

// Execute runs the radarmap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "radarmap",
		Short:   "Weather radar station table generator",
		Version: a.version,
		Long: `Radarmap keeps the radar station location table of a weather viewer
current. It merges the NCEI station list, the previous table and the
NOMADS availability listing into a regenerated C source file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Defaults come from the loaded config so flags only override what they set
	c := a.config
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.radarmap.yaml)")
	flags.BoolP("verbose", "v", c.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", c.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", c.NoColor, "disable colored output")
	flags.String("format", c.Format, "output format: table, json, yaml")
	flags.String("log-level", c.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("radarmap {{.Version}}\n")

	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit config file replaces the one found at startup
	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	c := a.config
	c.UpdateFromFlags(
		boolFlag(cmd, "verbose", c.Verbose),
		boolFlag(cmd, "quiet", c.Quiet),
		boolFlag(cmd, "no-color", c.NoColor),
		stringFlag(cmd, "format", c.Format),
		stringFlag(cmd, "log-level", c.LogLevel),
	)
	if cmd.Name() != "version" {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	logger := NewLogger(c)
	a.logger = &logger

	return nil
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("radarmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// boolFlag returns the flag value if it was set on the command line, else fallback.
func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	return mustGetBool(cmd, name)
}

// stringFlag returns the flag value if it was set on the command line, else fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	return mustGetString(cmd, name)
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
