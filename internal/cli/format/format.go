// Package format implements the getver-format command line application.
package format

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/getver-format/internal/core/ansi"
	"github.com/nightconcept/getver-format/internal/core/config"
	"github.com/nightconcept/getver-format/internal/core/crate"
	"github.com/nightconcept/getver-format/internal/core/gate"
	"github.com/nightconcept/getver-format/internal/core/reconcile"
	"github.com/nightconcept/getver-format/internal/core/runner"
	"github.com/nightconcept/getver-format/internal/core/toolpath"
	"github.com/nightconcept/getver-format/internal/core/view"
)

// AppName is used for the binary name and as the prefix of error messages.
const AppName = "getver-format"

// Deps are the process-level collaborators of the application.
type Deps struct {
	Runner    runner.Runner
	LookupEnv toolpath.LookupFunc
}

func init() {
	// argparse-style -V instead of urfave's default -v.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version and exit",
	}
}

// NewApp builds the cli.App. Output goes to app.Writer and app.ErrWriter,
// which default to os.Stdout and os.Stderr.
func NewApp(version string, deps Deps) *cli.App {
	if deps.Runner == nil {
		deps.Runner = runner.Exec{}
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}

	return &cli.App{
		Name:                   AppName,
		Usage:                  "Format the latest versions of Rust crates for a Cargo manifest, using getver",
		UsageText:              AppName + " [options] CRATE [CRATE...]",
		Version:                version,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "getver-path",
				Aliases: []string{"g"},
				Usage:   "path to getver, optionally followed by extra arguments (overrides $" + toolpath.EnvVar + ")",
			},
			&cli.BoolFlag{
				Name:    "show-patch",
				Aliases: []string{"p"},
				Usage:   "show semver patch versions",
			},
			&cli.BoolFlag{
				Name:    "no-missing-crates",
				Aliases: []string{"n"},
				Usage:   "do not list crates that were not found",
			},
			&cli.BoolFlag{
				Name:    "sort-alphabet",
				Aliases: []string{"a"},
				Usage:   "sort found crates alphabetically instead of input order",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "settings file (default: <user config dir>/" + config.DirName + "/" + config.FileName + ")",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print diagnostics to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, deps)
		},
	}
}

func run(c *cli.Context, deps Deps) error {
	errOut := c.App.ErrWriter

	crates, done, err := crateArgs(c)
	if err != nil {
		return cli.Exit(errorLine(errOut, err.Error()), 2)
	}
	if done {
		return nil
	}
	set := crate.NewInputSet(crates)
	if set.Len() == 0 {
		_ = cli.ShowAppHelp(c)
		return cli.Exit(errorLine(errOut, "the following arguments are required: CRATE"), 2)
	}

	logger := log.NewWithOptions(errOut, log.Options{Prefix: AppName, Level: log.WarnLevel})
	if c.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	settings, err := loadSettings(c.String("config"), logger)
	if err != nil {
		return cli.Exit(errorLine(errOut, err.Error()), 1)
	}

	invocation := toolpath.Resolve(c.String("getver-path"), deps.LookupEnv, settings.GetverPath)
	cmd, err := toolpath.Split(invocation)
	if err != nil {
		return cli.Exit(errorLine(errOut, fmt.Errorf("%w: %v", gate.ErrToolNotFound, err).Error()), 1)
	}

	stripper := ansi.NewStripper()
	getverVersion, err := gate.Check(c.Context, deps.Runner, stripper, cmd)
	if err != nil {
		return cli.Exit(errorLine(errOut, err.Error()), 1)
	}
	logger.Debug("using getver", "command", cmd.String(), "version", getverVersion)

	res, err := deps.Runner.Run(c.Context, cmd.Name, cmd.With(set.Names()...)...)
	if err != nil {
		return cli.Exit(errorLine(errOut, err.Error()), 1)
	}
	if res.ExitCode != 0 {
		logger.Debug("getver exited with non-zero status", "code", res.ExitCode, "stderr", strings.TrimSpace(res.Stderr))
	}

	rec := reconcile.Reconcile(set, stripper.Strip(res.Stdout))
	for _, line := range rec.Skipped {
		logger.Debug("ignoring unrecognized getver output", "line", line)
	}
	for _, name := range rec.Unresolved {
		logger.Debug("getver reported nothing for crate", "crate", set.Requested(name))
	}

	opts := view.Options{
		ShowPatch:          c.Bool("show-patch") || settings.ShowPatch,
		SortAlphabetically: c.Bool("sort-alphabet") || settings.SortAlphabet,
	}
	found, ok := view.Render(rec.Found, opts)
	if ok {
		_, _ = fmt.Fprintln(c.App.Writer, view.ManifestLines(found))
	}

	if c.Bool("no-missing-crates") || settings.NoMissingCrates || len(rec.NotFound) == 0 {
		return nil
	}
	if ok {
		_, _ = fmt.Fprintln(errOut)
	}
	header := styleFor(errOut, color.FgYellow, color.Bold).Sprint(view.MissingHeader)
	_, _ = fmt.Fprintln(errOut, view.MissingReport(header, rec.NotFound))
	return nil
}

// loadSettings reads the settings file. An explicit path must exist; the
// default location is optional.
func loadSettings(path string, logger *log.Logger) (*config.Settings, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			logger.Debug("no user config directory, using built-in defaults", "err", err)
			return &config.Settings{}, nil
		}
	}

	settings, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logger.Debug("no settings file", "path", path)
			return &config.Settings{}, nil
		}
		return nil, err
	}
	logger.Debug("loaded settings", "path", path)
	return settings, nil
}

// errorLine formats a fatal error the way it is printed on w.
func errorLine(w io.Writer, detail string) string {
	return fmt.Sprintf("%s: %s %s", AppName, styleFor(w, color.FgRed, color.Bold).Sprint("error:"), detail)
}

// styleFor returns a color that stays plain unless w is a terminal.
// color.NoColor only looks at stdout, which says nothing about a redirected stderr.
func styleFor(w io.Writer, attrs ...color.Attribute) *color.Color {
	style := color.New(attrs...)
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		style.DisableColor()
	}
	return style
}
