// Package cmd implements the modekit command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/modekit/internal/builtin"
	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/log"
	"github.com/zjrosen/modekit/internal/paths"
	"github.com/zjrosen/modekit/internal/presentation"
	"github.com/zjrosen/modekit/internal/resolver"
	"github.com/zjrosen/modekit/internal/scope"
	"github.com/zjrosen/modekit/internal/tracing"
	"github.com/zjrosen/modekit/internal/ui/styles"
)

func init() {
	// Query the terminal background before any picker starts so the OSC
	// response cannot race with the picker's input loop.
	_ = lipgloss.HasDarkBackground()
}

// Persistent flag names. Each is also read from MODEKIT_<NAME> with dashes
// replaced by underscores.
const (
	flagProjectDir     = "project-dir"
	flagGlobalDir      = "global-dir"
	flagNonInteractive = "non-interactive"
	flagDebug          = "debug"
	flagTraceFile      = "trace-file"
	flagJSON           = "json"

	envPrefix = "MODEKIT"
)

var (
	// ErrNoMatch is returned when a query matches no component.
	ErrNoMatch = errors.New("no matching component")
	// ErrAmbiguous is returned when a non-interactive query has no clear winner.
	ErrAmbiguous = errors.New("ambiguous query, be more specific")
	// ErrCancelled is returned when the user dismisses the picker.
	ErrCancelled = errors.New("selection cancelled")
)

var version = "dev"

// app carries the dependencies shared by every subcommand.
type app struct {
	fs      afero.Fs
	builtin resolver.Source
	cwd     string
	home    string

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	isTerminal func(io.Reader) bool

	v        *viper.Viper
	resolver *resolver.Resolver
	tracer   trace.Tracer
	cleanups []func()
}

func newApp() *app {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &app{
		fs:         afero.NewOsFs(),
		builtin:    builtin.New(),
		cwd:        cwd,
		home:       paths.HomeDir(),
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		isTerminal: fileIsTerminal,
	}
}

func newRootCmd(a *app) *cobra.Command {
	a.v = viper.New()

	root := &cobra.Command{
		Use:   "modekit",
		Short: "Resolve modes, workflows and other components across scopes",
		Long: `modekit finds components (modes, workflows, scripts, hooks, agents,
commands and templates) across three scopes: the project (.modekit in the
current repository), the global scope (~/.modekit) and the built-in set.
When a name exists in more than one scope, project wins over global and
global wins over builtin.

Components can be looked up by an approximate name: "eng" finds "engineer",
"apm" finds "autonomous-project-manager".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringP(flagProjectDir, "p", "", "project directory or .modekit root (default: nearest .modekit above cwd)")
	flags.String(flagGlobalDir, "", "global scope root (default: ~/.modekit)")
	flags.Bool(flagNonInteractive, false, "never prompt; ambiguous queries fail instead")
	flags.String(flagDebug, "", "write debug logs to this file")
	flags.String(flagTraceFile, "", "append OpenTelemetry spans to this JSONL file")
	flags.Bool(flagJSON, false, "print JSON instead of tables")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newListCmd(a),
		newFindCmd(a),
		newResolveCmd(a),
		newShowCmd(a),
		newConflictsCmd(a),
		newSuggestCmd(a),
		newConfigCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup resolves the scope roots and wires logging, tracing and styling. It
// runs before every subcommand.
func (a *app) setup(_ *cobra.Command) error {
	globalRoot := paths.ResolveGlobalDir(a.v.GetString(flagGlobalDir), a.home)
	projectRoot := paths.ResolveProjectDir(a.fs, a.v.GetString(flagProjectDir), a.cwd, globalRoot)

	if err := loadDotEnv(a.fs, filepath.Join(filepath.Dir(projectRoot), ".env")); err != nil {
		return err
	}

	if logPath := a.v.GetString(flagDebug); logPath != "" {
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		a.cleanups = append(a.cleanups, cleanup)
		log.Info(log.CatCLI, "modekit starting", "version", version, "project", projectRoot, "global", globalRoot)
	}

	a.resolver = resolver.New(
		scope.New(a.fs, projectRoot, false),
		scope.New(a.fs, globalRoot, true),
		a.builtin,
	)

	traceCfg := tracing.Config{}
	if path := a.v.GetString(flagTraceFile); path != "" {
		traceCfg = tracing.FileConfig(path)
	}
	provider, err := tracing.NewProvider(traceCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracer = provider.Tracer()
	a.cleanups = append(a.cleanups, func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatCLI, "shutting down tracing", err)
		}
	})

	// Config errors are reported by the config commands.
	cfg, err := a.resolver.Config()
	if err != nil {
		log.ErrorErr(log.CatConfig, "reading effective config", err)
		return nil
	}
	styles.SetColorEnabled(cfg.ColorOutputEnabled())
	if cfg.VerboseLoggingEnabled() {
		log.SetMinLevel(log.LevelDebug)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// run executes fn inside the command's trace span.
func (a *app) run(cmd *cobra.Command, args []string, fn func(ctx context.Context) error) error {
	return tracing.RunCommand(cmd.Context(), a.tracer, cmd.Name(), args, fn)
}

func (a *app) formatter() *presentation.Formatter {
	return presentation.NewFormatter(a.out, presentation.WithJSON(a.v.GetBool(flagJSON)))
}

func (a *app) interactive() bool {
	return !a.v.GetBool(flagNonInteractive) && a.isTerminal(a.in)
}

// loadDotEnv exports the variables of a .env file without overwriting
// variables that are already set. A missing file is not an error.
func loadDotEnv(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for key, value := range env {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
	}
	log.Debug(log.CatConfig, "loaded .env", "path", path, "count", len(env))
	return nil
}

func fileIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// parseTypeFlag turns an optional --type value into a filter. An empty value
// means every type.
func parseTypeFlag(s string) (*component.Type, error) {
	if s == "" {
		return nil, nil
	}
	typ, err := component.ParseType(s)
	if err != nil {
		return nil, err
	}
	return &typ, nil
}

// Execute runs the root command
func Execute() error {
	a := newApp()
	defer a.close()
	return newRootCmd(a).Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
