package artpack

import "errors"

// Sentinel errors for entry resolution and output derivation.
var (
	// ErrDuplicateKey indicates a manifest declares the same module key twice.
	ErrDuplicateKey = errors.New("duplicate manifest key")

	// ErrInvalidFilter indicates a module filter does not compile to a valid glob.
	// The resolver never returns it; invalid filters match nothing.
	ErrInvalidFilter = errors.New("invalid module filter")

	// ErrMissingPublicPath indicates a production build has no public path
	// configured for its deployment tier.
	ErrMissingPublicPath = errors.New("missing public path")

	// ErrMissingTemplate indicates an entry has no index.template.ejs in its
	// module directory.
	ErrMissingTemplate = errors.New("missing page template")
)
