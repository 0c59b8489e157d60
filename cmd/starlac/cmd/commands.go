package cmd

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/starla/internal/config"
	"github.com/you-not-fish/starla/internal/driver"
	"github.com/you-not-fish/starla/internal/repl"
	"github.com/you-not-fish/starla/internal/syntax"
)

// Version information
var (
	Version   = "0.1.0-dev"
	GitCommit = "development"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, errs, err := a.drv.TokenizeFile(args[0])
			if err != nil {
				return err
			}
			driver.WriteTokens(cmd.OutOrStdout(), toks)
			if driver.Report(cmd.ErrOrStderr(), &driver.Result{Diagnostics: errs}, nil) > 0 {
				return errFailed
			}
			return nil
		},
	}
}

func newASTCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast FILE",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.drv.Config().AST.Format
			}
			if !slices.Contains(config.Formats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(config.Formats, ", "))
			}

			res, err := a.drv.ParseFile(args[0])
			if res == nil {
				return err
			}
			failed := driver.Report(cmd.ErrOrStderr(), res, err) > 0
			if err != nil {
				return errFailed
			}
			if err := driver.WriteAST(cmd.OutOrStdout(), res.Module, format); err != nil {
				return err
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, yaml or source (default from config)")
	return cmd
}

func newFmtCmd(a *app) *cobra.Command {
	var check, write bool
	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Print files in canonical form",
		Long: `fmt prints each file in canonical form. With --check it lists the files
whose formatting differs and fails if there are any; with --write it
rewrites them in place.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check && write {
				return fmt.Errorf("--check and --write are mutually exclusive")
			}

			failed := false
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				res, err := a.drv.ParseSource(path, src)
				if driver.Report(cmd.ErrOrStderr(), res, err) > 0 {
					failed = true
					continue
				}

				out := syntax.FormatString(res.Module)
				changed := out != string(src)

				switch {
				case check:
					if changed {
						fmt.Fprintln(cmd.OutOrStdout(), path)
						failed = true
					}
				case write:
					if changed {
						if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
							return err
						}
						a.drv.Logger().Info("formatted", "file", path)
					}
				default:
					fmt.Fprint(cmd.OutOrStdout(), out)
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "list files whose formatting differs; exit 1 if any")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors without printing trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, path := range args {
				res, err := a.drv.ParseFile(path)
				if res == nil {
					return err
				}
				if driver.Report(cmd.ErrOrStderr(), res, err) > 0 {
					bad++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), driver.SuccessStyle.Render("ok")+"  "+path)
			}
			if bad > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), driver.HeaderStyle.Render(fmt.Sprintf("%d of %d files have errors", bad, len(args))))
				return errFailed
			}
			return nil
		},
	}
}

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive parsing session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Start(a.drv)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The root's config loading does not apply.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "starlac version %s\n", Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
