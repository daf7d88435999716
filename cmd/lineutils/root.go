// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/lineutils/lineutils/internal/config"
	"github.com/lineutils/lineutils/internal/textutil"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App wires the CLI to its services. Every command handler receives it.
	App struct {
		Config    config.Provider
		Registry  *textutil.Registry
		Fs        afero.Fs
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		LookupEnv func(string) (string, bool)
		// Dir is the working directory relative paths are resolved against.
		Dir string
		// ConfigDir overrides the platform config directory when set.
		ConfigDir string
	}

	// Dependencies defines the injection points for building an App. Nil or
	// empty fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Registry  *textutil.Registry
		Fs        afero.Fs
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		LookupEnv func(string) (string, bool)
		Dir       string
		ConfigDir string
	}

	// globalOptions holds the root persistent flags.
	globalOptions struct {
		verbose    bool
		configPath string
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Registry:  deps.Registry,
		Fs:        deps.Fs,
		Stdin:     deps.Stdin,
		Stdout:    deps.Stdout,
		Stderr:    deps.Stderr,
		LookupEnv: deps.LookupEnv,
		Dir:       deps.Dir,
		ConfigDir: deps.ConfigDir,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Registry == nil {
		app.Registry = textutil.DefaultRegistry
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.LookupEnv == nil {
		app.LookupEnv = os.LookupEnv
	}
	if app.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			app.Dir = wd
		} else {
			app.Dir = "."
		}
	}
	return app
}

// newRootCommand builds the command tree for app.
func newRootCommand(app *App, opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Classic UNIX text utilities in one binary",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - classic UNIX text utilities in one binary") + `

Every utility is available as a subcommand, or directly when the binary is
invoked through a link named after it.

` + SubtitleStyle.Render("Examples:") + `
  lineutils tail -n 4 app.log      Print the last four lines
  lineutils tail -n +2 data.csv    Print everything after the header line
  lineutils grep -rn TODO .        Search a tree recursively
  ln -s lineutils tail             Install tail as a link
  lineutils list                   List the utilities and their flags
  lineutils config show            Show the current configuration`,
	}

	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging and detailed error guidance")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/lineutils/config.cue)")

	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app, opts))
	for _, name := range app.Registry.Names() {
		rootCmd.AddCommand(newUtilityCommand(app, opts, name))
	}

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(NewApp(Dependencies{}).Execute(context.Background(), os.Args))
}

// Execute runs argv (including the program name) and returns the exit code.
func (a *App) Execute(ctx context.Context, argv []string) int {
	opts := &globalOptions{}
	rootCmd := newRootCommand(a, opts)
	rootCmd.SetArgs(commandArgs(a.Registry, argv))

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(a.errorHandler(opts)),
	)
	return exitCode(err)
}

// commandArgs returns the arguments for the root command. When the program
// is invoked through a link named after a registered utility, that utility
// becomes the subcommand.
func commandArgs(reg *textutil.Registry, argv []string) []string {
	if len(argv) == 0 {
		return []string{}
	}
	name := strings.TrimSuffix(filepath.Base(argv[0]), ".exe")
	if name != config.AppName {
		if _, ok := reg.Lookup(name); ok {
			return append([]string{name}, argv[1:]...)
		}
	}
	return argv[1:]
}

// loadConfig loads the configuration for opts. A broken config file is
// reported as a warning and the built-in defaults apply.
func (a *App) loadConfig(ctx context.Context, opts *globalOptions) *config.Config {
	cfg, _, err := a.Config.Load(ctx, a.loadOptions(opts))
	if err != nil {
		fmt.Fprintln(a.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, opts.verbose))
		if opts.verbose {
			a.renderIssue(err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

func (a *App) loadOptions(opts *globalOptions) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: opts.configPath,
		ConfigDirPath:  a.ConfigDir,
		Fs:             a.Fs,
	}
}

// newLogger returns the stderr logger: debug level when verbose, warn otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
