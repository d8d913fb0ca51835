package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "vdom",
		Short: "Diff, patch and render virtual DOM trees",
		Long: `vdom inspects the reconciliation engine from the command line.

Trees are read from HTML files with a single root element; "-" reads
standard input. Commands:

  diff      Print the patches that turn one tree into another
  render    Serialize a tree back to HTML
  version   Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: vdom.json or vdom.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		diffCmd(a),
		renderCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads and validates the configuration and builds the logger.
func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Logger(a.stderr)
	a.logger.Debug("configuration loaded", "path", cfg.Path())
	return nil
}

// readTree parses the single-root HTML document at path, or standard input
// when path is "-".
func readTree(stdin io.Reader, path string) (*vdom.VNode, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.New("E140").
				WithLocation(path, 0).
				WithSuggestion("Check that the file exists and is readable").
				Wrap(err)
		}
		defer f.Close()
		r = f
	}

	v, err := vdom.ParseHTML(r)
	if err != nil {
		return nil, errors.New("E130").
			WithLocation(path, 0).
			WithSuggestion("Wrap the markup in one element, e.g. <div>...</div>").
			Wrap(err)
	}
	return v, nil
}

// success formats a success line, coloured when w is a terminal.
func success(w io.Writer, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "\033[32m✓\033[0m " + msg
	}
	return "✓ " + msg
}
