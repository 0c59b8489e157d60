// Package repl implements the interactive Starla session: each entry is
// parsed and its tree printed back.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/you-not-fish/starla/internal/config"
	"github.com/you-not-fish/starla/internal/driver"
	"github.com/you-not-fish/starla/internal/syntax"
)

const banner = `Starla syntax REPL. Type :help for commands, :quit to exit.`

const help = `Commands:
  :help              show this text
  :quit              leave the session
  :format [FORMAT]   show or set the tree format (text, json, yaml, source)
  :tokens SOURCE     print the tokens of SOURCE
Input continues on the next line while it is incomplete.`

// LineReader reads prompted lines. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPL is an interactive session over a LineReader.
type REPL struct {
	drv    *driver.Driver
	in     LineReader
	out    io.Writer
	errOut io.Writer

	format string
	prompt string
	cont   string
}

// New returns a session reading from in. Trees go to out, diagnostics to
// errOut.
func New(drv *driver.Driver, in LineReader, out, errOut io.Writer) *REPL {
	cfg := drv.Config()
	return &REPL{
		drv:    drv,
		in:     in,
		out:    out,
		errOut: errOut,
		format: cfg.AST.Format,
		prompt: cfg.REPL.Prompt,
		cont:   cfg.REPL.ContinuePrompt,
	}
}

// Start runs a terminal session with line editing and persistent history.
func Start(drv *driver.Driver) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := drv.Config().REPL.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case <-sigc:
			saveHistory(drv, ln, histPath)
			ln.Close()
			os.Exit(130)
		case <-done:
		}
	}()
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()

	fmt.Println(driver.MutedStyle.Render(banner))
	err := New(drv, ln, os.Stdout, os.Stderr).Run()
	saveHistory(drv, ln, histPath)
	return err
}

// historyWriter is the part of *liner.State that saves history.
type historyWriter interface {
	WriteHistory(w io.Writer) (int, error)
}

// saveHistory writes the session history to path. An empty path disables
// history.
func saveHistory(drv *driver.Driver, h historyWriter, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		drv.Logger().Warn("cannot save history", "file", path, "err", err)
		return
	}
	defer f.Close()
	if _, err := h.WriteHistory(f); err != nil {
		drv.Logger().Warn("cannot save history", "file", path, "err", err)
	}
}

// Run reads entries until end of input or :quit.
func (r *REPL) Run() error {
	for {
		src, err := r.read()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if r.command(trimmed) {
				return nil
			}
		default:
			r.eval(src)
		}
		r.in.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// read collects lines until they parse or fail with something other than
// an early end of input. An aborted prompt discards the pending entry.
func (r *REPL) read() (string, error) {
	var b strings.Builder
	for {
		prompt := r.prompt
		if b.Len() > 0 {
			prompt = r.cont
		}
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", err
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, nil
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := syntax.ParseString(src); syntax.IsIncomplete(err) {
			continue
		}
		return src, nil
	}
}

// command runs a :command. It reports whether the session should end.
func (r *REPL) command(line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case ":quit", ":q", ":exit":
		return true

	case ":help", ":h":
		fmt.Fprintln(r.out, help)

	case ":format":
		if arg == "" {
			fmt.Fprintf(r.out, "format: %s\n", r.format)
			break
		}
		if !slices.Contains(config.Formats, arg) {
			fmt.Fprintln(r.errOut, driver.ErrorStyle.Render(
				fmt.Sprintf("unknown format %q (want one of %s)", arg, strings.Join(config.Formats, ", "))))
			break
		}
		r.format = arg

	case ":tokens":
		toks, errs := syntax.Tokenize("<stdin>", arg)
		driver.WriteTokens(r.out, toks)
		driver.Report(r.errOut, &driver.Result{Diagnostics: errs}, nil)

	default:
		fmt.Fprintf(r.errOut, "unknown command %s. Type :help for a list.\n", name)
	}
	return false
}

// eval parses src and prints its tree in the current format.
func (r *REPL) eval(src string) {
	res, err := r.drv.ParseSource("<stdin>", []byte(src))
	driver.Report(r.errOut, res, err)
	if err != nil {
		return
	}
	if err := driver.WriteAST(r.out, res.Module, r.format); err != nil {
		fmt.Fprintln(r.errOut, driver.ErrorStyle.Render(err.Error()))
	}
}
