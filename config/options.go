package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Option configures Load.
type Option func(*loadOptions) error

type loadOptions struct {
	workDir    string
	configFile string
	envFile    string
	env        []string
	envSet     bool
	modules    []string
	logger     *slog.Logger
}

// WithWorkDir sets the project root. Defaults to the current directory.
func WithWorkDir(dir string) Option {
	return func(o *loadOptions) error {
		if dir == "" {
			return errors.New("work dir must not be empty")
		}
		o.workDir = dir
		return nil
	}
}

// WithConfigFile loads the given project config file instead of searching
// for one of ConfigFileNames. Relative paths are resolved against the
// work dir.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) error {
		o.configFile = path
		return nil
	}
}

// WithEnvFile loads the given .env file instead of <workdir>/.env.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) error {
		o.envFile = path
		return nil
	}
}

// WithEnviron replaces the process environment with env, given as
// "KEY=value" pairs.
func WithEnviron(env []string) Option {
	return func(o *loadOptions) error {
		o.env = append([]string(nil), env...)
		o.envSet = true
		return nil
	}
}

// WithModules sets the module filters, overriding ART_MODULES.
func WithModules(filters []string) Option {
	return func(o *loadOptions) error {
		if filters == nil {
			filters = []string{}
		}
		o.modules = filters
		return nil
	}
}

// WithLogger sets a structured logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) error {
		o.logger = l
		return nil
	}
}

func newLoadOptions(opts ...Option) (*loadOptions, error) {
	o := &loadOptions{workDir: "."}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *loadOptions) environ() map[string]string {
	env := o.env
	if !o.envSet {
		env = os.Environ()
	}
	out := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func (o *loadOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
