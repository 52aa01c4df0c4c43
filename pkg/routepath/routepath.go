// Package routepath provides helpers for decomposing browser-visible URL
// paths into the parts the router cares about: pathname, query string, and
// fragment. All functions are pure string manipulation with no allocation
// beyond the returned slices.
package routepath

import "strings"

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// SplitPathAndFragment splits an observable path (pathname + hash) into the
// pathname and the fragment. The fragment is returned without the leading
// "#". A path with no "#" has an empty fragment.
func SplitPathAndFragment(input string) (path, fragment string) {
	path, fragment, _ = strings.Cut(input, "#")
	return path, fragment
}

// RouteTarget selects the part of an observable path that routing should
// match against. Fragments that begin with "/" are fragment-mode route
// paths and take precedence; any other fragment is an in-page anchor and
// is ignored. The query string is always stripped.
func RouteTarget(input string) string {
	path, fragment := SplitPathAndFragment(input)
	if strings.HasPrefix(fragment, "/") {
		path = fragment
	}
	path, _ = SplitPathAndQuery(path)
	return path
}

// Segments splits a path into its segments. The root path "/" and the
// empty path both yield no segments.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
