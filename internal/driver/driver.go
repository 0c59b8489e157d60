// Package driver runs the Starla front end over files and reports the
// results the way starlac and the REPL present them.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/you-not-fish/starla/internal/config"
	"github.com/you-not-fish/starla/internal/syntax"
)

// Driver bundles the settings and logger shared by front-end runs.
type Driver struct {
	cfg *config.Config
	log *log.Logger
}

// Timing records how long each phase of a run took.
type Timing struct {
	Read  time.Duration
	Parse time.Duration
}

// Total returns the time spent in all phases.
func (t Timing) Total() time.Duration {
	return t.Read + t.Parse
}

// Result is the outcome of parsing one source.
type Result struct {
	Filename    string
	Module      *syntax.Module     // nil if parsing failed
	Diagnostics []*syntax.LexError // illegal characters, in source order
	Timing      Timing
}

// New returns a Driver. A nil cfg selects config.Default and a nil logger
// discards all output.
func New(cfg *config.Config, logger *log.Logger) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{cfg: cfg, log: logger}
}

// NewLogger returns a logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "starlac",
	}), nil
}

// Config returns the driver's configuration.
func (d *Driver) Config() *config.Config { return d.cfg }

// Logger returns the driver's logger.
func (d *Driver) Logger() *log.Logger { return d.log }

// ParseFile reads and parses the file at path.
//
// On a syntax error the returned Result is still non-nil and carries the
// lexical diagnostics collected before the parse stopped.
func (d *Driver) ParseFile(path string) (*Result, error) {
	start := time.Now()
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	read := time.Since(start)

	res, err := d.ParseSource(path, src)
	if res != nil {
		res.Timing.Read = read
		d.trace(res)
	}
	return res, err
}

// ParseSource parses src, reporting positions against name.
func (d *Driver) ParseSource(name string, src []byte) (*Result, error) {
	res := &Result{Filename: name}
	var diag syntax.Diagnostics

	start := time.Now()
	mod, err := syntax.Parse(name, bytes.NewReader(src), &diag)
	res.Timing.Parse = time.Since(start)
	res.Diagnostics = diag.Errors()

	for _, e := range res.Diagnostics {
		d.log.Debug("illegal character", "pos", e.Pos, "char", string(e.Char))
	}
	if err != nil {
		var serr *syntax.SyntaxError
		if errors.As(err, &serr) {
			d.log.Debug("syntax error", "pos", serr.Pos(), "token", serr.Token, "eof", serr.AtEOF())
		}
		return res, err
	}

	res.Module = mod
	d.log.Debug("parsed", "file", name, "items", len(mod.Body))
	return res, nil
}

// trace logs the phase timings of res; at info level when tracing is
// enabled, otherwise at debug level.
func (d *Driver) trace(res *Result) {
	logf := d.log.Debug
	if d.cfg.General.Trace {
		logf = d.log.Info
	}
	logf("timing", "file", res.Filename,
		"read", res.Timing.Read,
		"parse", res.Timing.Parse,
		"total", res.Timing.Total())
}

// TokenizeFile reads the file at path and returns its tokens without the
// final EOF, along with any illegal characters.
func (d *Driver) TokenizeFile(path string) ([]syntax.Token, []*syntax.LexError, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	toks, errs := syntax.Tokenize(path, string(src))
	for _, e := range errs {
		d.log.Debug("illegal character", "pos", e.Pos, "char", string(e.Char))
	}
	d.log.Debug("tokenized", "file", path, "tokens", len(toks))
	return toks, errs, nil
}

// WriteTokens prints toks as a table of position, kind and text.
func WriteTokens(w io.Writer, toks []syntax.Token) {
	fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		fmt.Fprintf(w, "%-20s %-12s %s\n", tok.Pos, tok.Kind, formatLiteral(tok.Text))
	}
}

// formatLiteral shows token text with control characters escaped.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// WriteAST prints node in one of config.Formats.
func WriteAST(w io.Writer, node syntax.Node, format string) error {
	switch format {
	case "text", "":
		syntax.Fprint(w, node)
		return nil
	case "json":
		return syntax.FprintJSON(w, node)
	case "yaml":
		return syntax.FprintYAML(w, node)
	case "source":
		return syntax.Format(w, node)
	}
	return fmt.Errorf("unknown AST format %q (want one of %s)", format, strings.Join(config.Formats, ", "))
}
