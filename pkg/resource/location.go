// SPDX-License-Identifier: MPL-2.0

// Package resource defines the Location value type: an immutable Minecraft
// resource location ("namespaced ID") with validation, path derivation,
// private-path rewriting, and symbol-name projection.
//
// This package is a leaf dependency: it imports only the standard library and
// pkg/version. Domain packages import it; it never imports domain packages.
package resource

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"packmill/pkg/version"
)

// PrivatePath is the reserved path prefix inserted in front of private
// resource locations. The name is chosen so that in-game tab completion sorts
// it last and players are warned off running anything under it.
const PrivatePath = "zz/do_not_run_or_packs_may_break"

var (
	// validName is the permissive tier: every name Minecraft itself accepts.
	validName = regexp.MustCompile(`^[a-z0-9_.-]+$`)

	// conventionalName is the strict tier enforced on locations owned by this
	// project: lowercase snake_case with no dots, dashes, or stray underscores.
	conventionalName = regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)*$`)

	privateSegments = strings.Split(PrivatePath, "/")
)

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid resource name")

// ErrUnknownSymbol is the sentinel error wrapped by UnknownSymbolError.
var ErrUnknownSymbol = errors.New("unknown symbol key")

type (
	// InvalidNameError is returned when a namespace or path segment fails
	// name validation.
	InvalidNameError struct {
		// Name is the offending namespace or path segment.
		Name string
		// Unconventional is true when the name is accepted by Minecraft but
		// violates this project's naming convention. Such names are only
		// allowed on locations marked external.
		Unconventional bool
	}

	// UnknownSymbolError is returned by Location.Symbol when the requested
	// key does not match the conventional name grammar.
	UnknownSymbolError struct {
		Key string
	}
)

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	if e.Unconventional {
		return fmt.Sprintf("the following name is unconventional: %q", e.Name)
	}
	return fmt.Sprintf("the following name is invalid: %q", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface for UnknownSymbolError.
func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("resource location has no symbol %q", e.Key)
}

// Unwrap returns ErrUnknownSymbol for errors.Is() compatibility.
func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// Location is an immutable resource location of the form "namespace" or
// "namespace:path". The zero value is not valid; construct with New.
//
// Two locations are equal iff their rendered string forms are equal
// (see Equal); version, title, and the external flag do not participate.
// Use String() as the key when storing locations in a map.
type Location struct {
	namespace string

	// abstractPath is the path exactly as given by the caller, before the
	// private-path rewrite. It may carry a leading-underscore shorthand on
	// its last segment. hasPath distinguishes "no path" from an empty path.
	abstractPath string
	hasPath      bool

	version  *version.Version
	title    string
	external bool

	// segments and path are derived from abstractPath at construction time.
	segments []string
	path     string
}

// Option configures optional metadata on a Location under construction.
type Option func(*Location)

// WithVersion attaches a version tag. The version is passthrough metadata:
// it does not affect rendering, equality, or derivation.
func WithVersion(v *version.Version) Option {
	return func(l *Location) { l.version = v }
}

// WithTitle attaches a display title. Passthrough metadata, like WithVersion.
func WithTitle(title string) Option {
	return func(l *Location) { l.title = title }
}

// WithExternal marks the location as not owned by this project's convention.
// External locations skip the conventional-name check and the private-path
// rewrite; the permissive name check still applies.
func WithExternal(external bool) Option {
	return func(l *Location) { l.external = external }
}

// New constructs a Location from "namespace" or "namespace:path". The path,
// if present, is split on "/", subjected to the private-path rewrite, and
// every resulting segment is validated along with the namespace.
//
// New returns an InvalidNameError if any name fails validation.
func New(base string, opts ...Option) (Location, error) {
	loc := Location{}
	for _, opt := range opts {
		opt(&loc)
	}

	namespace, path, found := strings.Cut(base, ":")
	loc.namespace = namespace
	if found {
		loc.abstractPath = path
		loc.hasPath = true
	}

	if err := checkName(namespace, loc.external); err != nil {
		return Location{}, err
	}

	segments, err := deriveSegments(loc.abstractPath, loc.hasPath, loc.external)
	if err != nil {
		return Location{}, err
	}
	loc.segments = segments
	loc.path = strings.Join(segments, "/")

	return loc, nil
}

// MustNew is like New but panics on error. Use it for package-level
// well-known locations whose validity is guaranteed by inspection.
func MustNew(base string, opts ...Option) Location {
	loc, err := New(base, opts...)
	if err != nil {
		panic(err)
	}
	return loc
}

// checkName applies the two-tier name check. Failing the permissive tier is
// always an error; failing the conventional tier is an error unless the
// location is external.
func checkName(name string, external bool) error {
	if !validName.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	if !conventionalName.MatchString(name) && !external {
		return &InvalidNameError{Name: name, Unconventional: true}
	}
	return nil
}

// deriveSegments splits the abstract path, applies the private-path rewrite,
// and validates every resulting segment.
//
// The rewrite only ever consults the last segment, so that whether a location
// is private must be declared explicitly at each derivation step rather than
// stored in a parent location and then forgotten about. A stale "_"-marked
// segment left in the middle of a derived path fails the conventional check.
func deriveSegments(abstractPath string, hasPath, external bool) ([]string, error) {
	if !hasPath {
		return nil, nil
	}

	segments := strings.Split(abstractPath, "/")

	if !external {
		if last := segments[len(segments)-1]; strings.HasPrefix(last, "_") {
			rewritten := make([]string, 0, len(privateSegments)+len(segments))
			rewritten = append(rewritten, privateSegments...)
			rewritten = append(rewritten, segments[:len(segments)-1]...)
			// A bare "_" marks the private root itself: the prefix is kept
			// and no further segment is appended.
			if stripped := strings.TrimPrefix(last, "_"); stripped != "" {
				rewritten = append(rewritten, stripped)
			}
			segments = rewritten
		}
	}

	for _, segment := range segments {
		if err := checkName(segment, external); err != nil {
			return nil, err
		}
	}

	return segments, nil
}

// Namespace returns the location's namespace.
func (l Location) Namespace() string { return l.namespace }

// AbstractPath returns the raw path as given by the caller, before the
// private-path rewrite. The second return value is false when the location
// was constructed without a path.
func (l Location) AbstractPath() (string, bool) { return l.abstractPath, l.hasPath }

// Version returns the attached version tag, or nil.
func (l Location) Version() *version.Version { return l.version }

// Title returns the attached display title, or "".
func (l Location) Title() string { return l.title }

// External reports whether the location is marked external.
func (l Location) External() bool { return l.external }

// Path returns the actual (post-rewrite) path. The second return value is
// false when the location has no path segments.
func (l Location) Path() (string, bool) { return l.path, len(l.segments) > 0 }

// Segments returns a copy of the actual path segments.
func (l Location) Segments() []string { return slices.Clone(l.segments) }

// Join derives a child location by extending the abstract path with suffix,
// which may itself contain "/"-separated segments. The namespace and external
// flag carry over; version and title do not, so each derived location starts
// metadata-less. The receiver is not modified.
//
// The result is re-validated from scratch, so Join returns an
// InvalidNameError under the same conditions as New.
func (l Location) Join(suffix string) (Location, error) {
	abstract := suffix
	if l.hasPath {
		abstract = l.abstractPath + "/" + suffix
	}
	return New(l.namespace+":"+abstract, WithExternal(l.external))
}

// Symbol projects the location onto a dotted symbol name:
// "namespace.segment1...segmentN.key". The key must match the conventional
// name grammar; anything else returns an UnknownSymbolError. This is how the
// type distinguishes structural lookups from ordinary data access.
func (l Location) Symbol(key string) (string, error) {
	if !conventionalName.MatchString(key) {
		return "", &UnknownSymbolError{Key: key}
	}

	parts := make([]string, 0, len(l.segments)+2)
	parts = append(parts, l.namespace)
	parts = append(parts, l.segments...)
	parts = append(parts, key)
	return strings.Join(parts, "."), nil
}

// Field provides string-keyed read access to the location's components, for
// callers that need raw parts rather than the rendered string. Recognized
// keys are "namespace", "abstract_path", "version", "title", "external",
// "path", and "path_segments". The second return value is false for
// unrecognized keys and for absent optional components.
func (l Location) Field(key string) (any, bool) {
	switch key {
	case "namespace":
		return l.namespace, true
	case "abstract_path":
		if !l.hasPath {
			return nil, false
		}
		return l.abstractPath, true
	case "version":
		if l.version == nil {
			return nil, false
		}
		return l.version, true
	case "title":
		return l.title, true
	case "external":
		return l.external, true
	case "path":
		if len(l.segments) == 0 {
			return nil, false
		}
		return l.path, true
	case "path_segments":
		return slices.Clone(l.segments), true
	default:
		return nil, false
	}
}

// String renders the location as "namespace" or "namespace:path", using the
// actual (post-rewrite) path.
func (l Location) String() string {
	if len(l.segments) == 0 {
		return l.namespace
	}
	return l.namespace + ":" + l.path
}

// Equal reports whether two locations render to the same string. Version,
// title, and the external flag do not participate in equality.
func (l Location) Equal(other Location) bool {
	return l.String() == other.String()
}
