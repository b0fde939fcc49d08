// Package config loads the layered project configuration of an art
// project into an immutable Config.
//
// Layers, lowest to highest precedence:
//
//  1. built-in defaults (see Defaults)
//  2. the project config file: art.config.json, art.config.yaml,
//     art.config.yml or art.config.bzl
//  3. the .env file next to it (github.com/joho/godotenv)
//  4. the process environment
//
// Keys are colon-delimited paths such as "art:webpack:entry". Load reads
// every layer once; the returned Config is never modified and is passed
// explicitly to the resolver and output deriver.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"

	artpack "github.com/albertocavalcante/go-artpack"
)

// Well-known configuration keys.
const (
	KeyNodeEnv            = "NODE_ENV"
	KeyBuildEnv           = "BUILD_ENV"
	KeyEntry              = "art:webpack:entry"
	KeyOutput             = "art:webpack:output"
	KeyVersion            = "art:version"
	KeyBundleHashName     = "art:enableBundleHashName"
	KeyProjectVirtualPath = "art:projectVirtualPath"
	KeyDevHostPrefix      = "devHost"
	KeyDevPortPrefix      = "devPort"

	publicPathSuffix = "PublicPath"
)

// DotEnvFile is the default environment file name.
const DotEnvFile = ".env"

// Defaults returns the built-in defaults layer.
func Defaults() *Object {
	o := NewObject()
	o.SetPath(KeyNodeEnv, string(artpack.ModeDevelopment))
	o.SetPath(KeyBuildEnv, "dev")
	for _, env := range []artpack.Mode{artpack.ModeDevelopment, artpack.ModeProduction} {
		o.SetPath(KeyDevHostPrefix+KeySeparator+string(env), "http://localhost")
		o.SetPath(KeyDevPortPrefix+KeySeparator+string(env), int64(3000))
	}
	o.SetPath(KeyProjectVirtualPath, "")
	o.SetPath(KeyBundleHashName, false)
	return o
}

// Config is the resolved, read-only project configuration.
type Config struct {
	// WorkDir is the absolute project root.
	WorkDir string

	// File is the project config file that was loaded, or "".
	File string

	// EnvFile is the .env file that was loaded, or "".
	EnvFile string

	// Manifest is art:webpack:entry in declaration order.
	Manifest artpack.Manifest

	// Modules are the module filters (CLI flag or ART_MODULES).
	Modules []string

	// ProjectVirtualPath is stripped from entry names when locating
	// module directories under client/.
	ProjectVirtualPath string

	settings artpack.BuildSettings
	store    *Store
}

// BuildSettings returns a copy of the build environment.
func (c *Config) BuildSettings() artpack.BuildSettings {
	s := c.settings
	s.PublicPaths = maps.Clone(c.settings.PublicPaths)
	return s
}

// Lookup returns the raw value of a key from the layered store.
func (c *Config) Lookup(key string) (any, bool) {
	return c.store.Lookup(key)
}

// ClientDir returns the absolute client source directory.
func (c *Config) ClientDir() string {
	return filepath.Join(c.WorkDir, artpack.ClientDir)
}

// Sources returns the files the configuration was read from.
func (c *Config) Sources() []string {
	var out []string
	for _, f := range []string{c.File, c.EnvFile} {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Load reads the configuration of the project rooted at the working
// directory (WithWorkDir, default ".").
func Load(opts ...Option) (*Config, error) {
	o, err := newLoadOptions(opts...)
	if err != nil {
		return nil, err
	}
	log := o.log()

	workDir, err := filepath.Abs(o.workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve work dir: %w", err)
	}

	cfg := &Config{WorkDir: workDir}

	file, fileObj, err := loadConfigFile(workDir, o.configFile)
	if err != nil {
		return nil, err
	}
	cfg.File = file
	if file == "" {
		log.Debug("no project config file found", "dir", workDir)
	} else {
		log.Debug("loaded project config", "file", file, "keys", fileObj.Len())
	}

	envFile, dotenv, err := loadEnvFile(workDir, o.envFile)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile

	cfg.store = NewStore(o.environ(), dotenv, fileObj, Defaults())

	if cfg.Manifest, err = manifestFrom(cfg.store); err != nil {
		return nil, err
	}
	if len(cfg.Manifest) == 0 {
		log.Warn("no modules declared", "key", KeyEntry)
	}

	if o.modules != nil {
		cfg.Modules = append([]string(nil), o.modules...)
	} else {
		raw, _ := cfg.store.Lookup(ModulesKey)
		if cfg.Modules, err = ParseModules(raw); err != nil {
			return nil, err
		}
	}

	if cfg.ProjectVirtualPath, _, err = cfg.store.String(KeyProjectVirtualPath); err != nil {
		return nil, err
	}

	if cfg.settings, err = settingsFrom(cfg.store, workDir); err != nil {
		return nil, err
	}
	checkVersion(log, cfg.settings.Version)

	return cfg, nil
}

func loadConfigFile(workDir, explicit string) (string, *Object, error) {
	file := explicit
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(workDir, file)
	}
	if file == "" {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(workDir, name)
			if fileExists(candidate) {
				file = candidate
				break
			}
		}
	}
	if file == "" {
		return "", NewObject(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	obj, err := Decode(file, data)
	if err != nil {
		return "", nil, err
	}
	return file, obj, nil
}

func loadEnvFile(workDir, explicit string) (string, map[string]string, error) {
	file := explicit
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(workDir, file)
	}
	if file == "" {
		candidate := filepath.Join(workDir, DotEnvFile)
		if !fileExists(candidate) {
			return "", nil, nil
		}
		file = candidate
	}
	env, err := godotenv.Read(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return file, env, nil
}

func manifestFrom(s *Store) (artpack.Manifest, error) {
	obj, err := s.Object(KeyEntry)
	if err != nil || obj == nil {
		return nil, err
	}
	entries := make([]artpack.ManifestEntry, 0, obj.Len())
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		paths, err := stringList(v)
		if err != nil {
			return nil, &Error{Key: KeyEntry + KeySeparator + key, Err: err}
		}
		entries = append(entries, artpack.ManifestEntry{Key: key, Paths: paths})
	}
	return artpack.NewManifest(entries...)
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: path %v is not a string", ErrInvalidValue, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: want path or list of paths, got %T", ErrInvalidValue, v)
}

func settingsFrom(s *Store, workDir string) (artpack.BuildSettings, error) {
	st := artpack.BuildSettings{WorkDir: workDir}

	nodeEnv, _, err := s.String(KeyNodeEnv)
	if err != nil {
		return st, err
	}
	st.Mode = artpack.ParseMode(nodeEnv)
	if st.Tier, _, err = s.String(KeyBuildEnv); err != nil {
		return st, err
	}

	// devHost/devPort are keyed by the raw NODE_ENV value.
	envName := strings.TrimSpace(nodeEnv)
	if envName == "" {
		envName = string(st.Mode)
	}
	hostKey := KeyDevHostPrefix + KeySeparator + envName
	portKey := KeyDevPortPrefix + KeySeparator + envName
	var hostOK, portOK bool
	if st.DevHost, hostOK, err = s.String(hostKey); err != nil {
		return st, err
	}
	if st.DevPort, portOK, err = s.Int(portKey); err != nil {
		return st, err
	}
	if !st.Mode.IsProduction() {
		if !hostOK {
			return st, &Error{Key: hostKey, Err: ErrMissingKey}
		}
		if !portOK {
			return st, &Error{Key: portKey, Err: ErrMissingKey}
		}
	}

	if st.Version, _, err = s.String(KeyVersion); err != nil {
		return st, err
	}
	if st.EnableBundleHashName, err = s.Bool(KeyBundleHashName); err != nil {
		return st, err
	}
	if st.PublicPaths, err = publicPathsFrom(s, st.Tier); err != nil {
		return st, err
	}
	return st, nil
}

// publicPathsFrom collects art:webpack:output:<tier>PublicPath for every
// tier the config file names, plus the current tier from any layer.
func publicPathsFrom(s *Store, tier string) (map[string]string, error) {
	paths := make(map[string]string)
	out, err := s.Object(KeyOutput)
	if err != nil {
		return nil, err
	}
	for _, key := range out.Keys() {
		name, ok := strings.CutSuffix(key, publicPathSuffix)
		if !ok || name == "" {
			continue
		}
		v, _, err := s.String(KeyOutput + KeySeparator + key)
		if err != nil {
			return nil, err
		}
		paths[name] = v
	}
	if tier != "" {
		v, ok, err := s.String(KeyOutput + KeySeparator + tier + publicPathSuffix)
		if err != nil {
			return nil, err
		}
		if ok {
			paths[tier] = v
		}
	}
	return paths, nil
}

func checkVersion(log *slog.Logger, version string) {
	if version == "" {
		return
	}
	if _, err := semver.NewVersion(version); err != nil {
		log.Warn("art:version is not a semantic version; bundle query strings use it verbatim",
			"version", version,
			"error", err)
	}
}

// IsMissingKey reports whether err names an unset required key.
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}
