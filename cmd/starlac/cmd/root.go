// Package cmd implements the starlac command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/starla/internal/config"
	"github.com/you-not-fish/starla/internal/driver"
)

// errFailed reports that diagnostics were already printed.
var errFailed = errors.New("failed")

// app holds the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	drv     *driver.Driver
}

// Execute runs starlac with the process arguments and returns its exit
// status.
func Execute() int {
	return run(newRootCmd(), os.Args[1:])
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(root.ErrOrStderr(), driver.ErrorStyle.Render("error: "+err.Error()))
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "starlac",
		Short: "Starla syntax front end",
		Long: `starlac tokenizes, parses and formats Starla source files.

Configuration is read from --config, $STARLA_CONFIG, ./starla.toml or
~/.config/starla/config.toml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: search STARLA_CONFIG, ./starla.toml, ~/.config/starla)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newTokensCmd(a),
		newASTCmd(a),
		newFmtCmd(a),
		newCheckCmd(a),
		newREPLCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the driver.
func (a *app) setup(cmd *cobra.Command) error {
	var cfg *config.Config
	var err error
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := cfg.General.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := driver.NewLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	a.drv = driver.New(cfg, logger)
	logger.Debug("configured", "level", level, "format", cfg.AST.Format)
	return nil
}
