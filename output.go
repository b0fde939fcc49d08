package artpack

import (
	"fmt"
	"path/filepath"
)

// ChunkFilenamePattern names split chunks in every environment.
const ChunkFilenamePattern = "[id].[chunkhash].js"

// Output directories relative to the working root.
const (
	DebugDir  = "debug"
	PublicDir = "public"
)

// BundleFilename returns the bundle file name for an entry directory,
// e.g. "bundle.js", "bundle[chunkhash].js" or "bundle.js?1.2.3".
func BundleFilename(s BuildSettings, suffix string) string {
	if suffix == "" {
		suffix = ".js"
	}
	switch {
	case !s.Mode.IsProduction():
		return "bundle" + suffix
	case s.EnableBundleHashName:
		return "bundle[chunkhash]" + suffix
	default:
		return "bundle" + suffix + "?" + s.Version
	}
}

// OutputDir returns the directory bundles are written to: public/ for the
// prod tier and debug/ otherwise, joined to the working root.
func OutputDir(s BuildSettings) string {
	dir := DebugDir
	if s.Tier == TierProd {
		dir = PublicDir
	}
	root := s.WorkDir
	if root == "" {
		root = "."
	}
	return filepath.Join(root, dir)
}

// DevPublicPath returns the URL the dev server serves bundles from.
func DevPublicPath(host string, port int) string {
	return fmt.Sprintf("%s:%d/%s/", trimSlash(host), port, PublicDir)
}

// DeriveOutput computes the bundler output section from the build settings.
//
// Production builds take their public path from PublicPaths[Tier] and
// fail with ErrMissingPublicPath when it is not configured. Other builds
// are served by the dev server.
func DeriveOutput(s BuildSettings) (OutputDescriptor, error) {
	publicPath := DevPublicPath(s.DevHost, s.DevPort)
	if s.Mode.IsProduction() {
		p, ok := s.PublicPath()
		if !ok {
			return OutputDescriptor{}, fmt.Errorf("%w for tier %q (art:webpack:output:%sPublicPath)",
				ErrMissingPublicPath, s.Tier, s.Tier)
		}
		publicPath = p
	}

	return OutputDescriptor{
		Filename:      "[name]/" + BundleFilename(s, ".js"),
		ChunkFilename: ChunkFilenamePattern,
		Path:          OutputDir(s),
		PublicPath:    publicPath,
	}, nil
}
