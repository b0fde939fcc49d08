// Package cli implements the art command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	artpack "github.com/albertocavalcante/go-artpack"
	"github.com/albertocavalcante/go-artpack/config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	cwd      string
	config   string
	envFile  string
	logLevel string
	modules  []string
	environ  []string
}

// app carries per-invocation state to the commands.
type app struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRootCommand builds the art command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newRootCommand(&app{stdout: stdout, stderr: stderr})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "art",
		Short:         "Resolve bundler entries for an art front-end project",
		Long:          "art turns the entry manifest of a front-end project and a set of module filters into bundler entries, output settings and HTML page plans.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(a.flags.logLevel)
			if err != nil {
				return err
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.cwd, "cwd", ".", "project root")
	pf.StringVar(&a.flags.config, "config", "", "project config file (default: art.config.{json,yaml,yml,bzl} in --cwd)")
	pf.StringVar(&a.flags.envFile, "env-file", "", "environment file (default: .env in --cwd)")
	pf.StringVar(&a.flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringSliceVarP(&a.flags.modules, "modules", "m", nil, "module filters, e.g. -m pages/home (overrides "+config.ModulesKey+")")

	root.AddCommand(
		newEntriesCommand(a),
		newOutputCommand(a),
		newPlanCommand(a),
		newGraphCommand(a),
		newExplainCommand(a),
		newOwnersCommand(a),
		newPagesCommand(a),
		newURLsCommand(a),
		newWatchCommand(a),
	)
	return root
}

// ExecuteContext runs the art command with args and returns the process
// exit code. Long-running commands stop when ctx is done.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(stderr, "Error: %v\n", err)
		if config.IsMissingKey(err) {
			warnColor.Fprintln(stderr, "Set the key in the project config file, .env or the environment (write \":\" as \""+config.EnvSeparator+"\" in variable names).")
		}
		return 1
	}
	return 0
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return level, nil
}

// configOptions translates the global flags into config.Load options.
func (a *app) configOptions(cmd *cobra.Command) []config.Option {
	opts := []config.Option{
		config.WithWorkDir(a.flags.cwd),
		config.WithConfigFile(a.flags.config),
		config.WithEnvFile(a.flags.envFile),
		config.WithLogger(a.logger),
	}
	if cmd.Flags().Changed("modules") {
		opts = append(opts, config.WithModules(a.flags.modules))
	}
	if a.flags.environ != nil {
		opts = append(opts, config.WithEnviron(a.flags.environ))
	}
	return opts
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(a.configOptions(cmd)...)
}

// resolverOptions are the artpack options every command resolves with.
func (a *app) resolverOptions(extra ...artpack.Option) []artpack.Option {
	return append([]artpack.Option{artpack.WithLogger(a.logger)}, extra...)
}

func (a *app) resolver(extra ...artpack.Option) (*artpack.Resolver, error) {
	return artpack.NewResolver(append(artpack.DefaultOptions(), a.resolverOptions(extra...)...)...)
}
