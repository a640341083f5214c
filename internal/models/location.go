package models

import (
	"fmt"
	"strings"
)

// SchemeAsset is the build-internal addressing scheme. Asset locations are
// rooted at the build filesystem and are not importable by themselves.
const SchemeAsset = "asset"

// PublicRoot is the directory segment that marks the public portion of a
// package. An asset path whose second segment is the public root is portably
// importable despite its filesystem-rooted form.
const PublicRoot = "lib"

// Location identifies the compilation unit a symbol is defined in.
//
// Two scheme families exist: the build-internal "asset:" scheme
// (asset:<package>/<root>/<path>) and stable logical schemes where the scheme
// itself is the package name (<package>:<path>). A nil *Location denotes a
// universally-visible symbol that needs no import.
type Location struct {
	Scheme string // addressing scheme: "asset" or a package name
	Path   string // slash-separated path within the scheme
}

// ParseLocation parses a location of the form "scheme:path".
func ParseLocation(s string) (*Location, error) {
	scheme, path, ok := strings.Cut(s, ":")
	if !ok || scheme == "" || path == "" {
		return nil, fmt.Errorf("invalid location %q: expected scheme:path", s)
	}
	return &Location{Scheme: scheme, Path: strings.TrimPrefix(path, "/")}, nil
}

// MustParseLocation parses a location and panics on malformed input. Intended
// for fixtures and compile-time constants.
func MustParseLocation(s string) *Location {
	loc, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return loc
}

// String returns the canonical "scheme:path" form.
func (l *Location) String() string {
	return l.Scheme + ":" + l.Path
}

// IsAsset reports whether the location uses the build-internal scheme.
func (l *Location) IsAsset() bool {
	return l.Scheme == SchemeAsset
}

// Segments returns the path split on "/".
func (l *Location) Segments() []string {
	return strings.Split(l.Path, "/")
}

// Package returns the top-level package segment of an asset location, or the
// scheme itself for logical locations.
func (l *Location) Package() string {
	if !l.IsAsset() {
		return l.Scheme
	}
	return l.Segments()[0]
}

// Equal reports value equality of two locations, treating nil as a distinct
// universally-visible location.
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Scheme == other.Scheme && l.Path == other.Path
}
