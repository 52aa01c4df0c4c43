// Package pattern implements the URL pattern language used by the router.
//
// A pattern is compiled from a path template with named parameter slots:
//
//	p := pattern.Compile("/users/:id")
//	p.Matches("/users/42")              // true
//	p.Parse("/users/42")                // ["42"], true
//	p.Expand([]string{"42"}, false)     // "/users/42"
//	p.Expand([]string{"42"}, true)      // "#/users/42"
//
// Matching is fragment-aware: when the observed path carries a fragment that
// begins with "/" (the shape fragment-mode navigation produces), the fragment
// is matched instead of the pathname. Query strings and in-page anchors are
// ignored. All operations are deterministic and side-effect-free.
package pattern

import (
	"fmt"
	"strings"

	"github.com/gurugeek/m4d-router/pkg/routepath"
)

// Pattern is a compiled path template. It is immutable after Compile.
type Pattern struct {
	source   string
	segments []segment
	params   []string
}

// segment is one path segment: either a literal or a named parameter slot.
type segment struct {
	literal string
	param   bool
}

// Compile parses a path template into a Pattern. Segments beginning with
// ":" are parameter slots; everything else is matched literally. Compile
// never fails: a bare ":" is treated as a literal.
func Compile(path string) *Pattern {
	p := &Pattern{source: path}
	for _, seg := range routepath.Segments(path) {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			p.segments = append(p.segments, segment{param: true})
			p.params = append(p.params, seg[1:])
			continue
		}
		p.segments = append(p.segments, segment{literal: seg})
	}
	return p
}

// String returns the source template. Patterns with equal sources are
// interchangeable as registry keys.
func (p *Pattern) String() string {
	return p.source
}

// ParamNames returns the parameter names in slot order.
func (p *Pattern) ParamNames() []string {
	names := make([]string, len(p.params))
	copy(names, p.params)
	return names
}

// NumParams returns the number of parameter slots.
func (p *Pattern) NumParams() int {
	return len(p.params)
}

// Matches reports whether the observable path matches this pattern.
func (p *Pattern) Matches(path string) bool {
	_, ok := p.match(path)
	return ok
}

// Parse extracts the ordered parameter values from a matching path.
// The second return is false when the path does not match.
func (p *Pattern) Parse(path string) ([]string, bool) {
	return p.match(path)
}

// Expand reconstructs a concrete path from ordered parameter values.
// In fragment form the path is prefixed with "#" so that assigning it to a
// location touches only the URL fragment. It fails when the number of
// values does not match the number of parameter slots.
func (p *Pattern) Expand(params []string, fragment bool) (string, error) {
	if len(params) != len(p.params) {
		return "", fmt.Errorf("pattern: expand %q: got %d params, want %d",
			p.source, len(params), len(p.params))
	}

	var b strings.Builder
	if fragment {
		b.WriteByte('#')
	}
	if len(p.segments) == 0 {
		b.WriteByte('/')
		return b.String(), nil
	}

	next := 0
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.param {
			b.WriteString(params[next])
			next++
		} else {
			b.WriteString(seg.literal)
		}
	}
	return b.String(), nil
}

// match walks the route target's segments against the compiled template.
func (p *Pattern) match(path string) ([]string, bool) {
	segs := routepath.Segments(routepath.RouteTarget(path))
	if len(segs) != len(p.segments) {
		return nil, false
	}

	var params []string
	for i, seg := range p.segments {
		if seg.param {
			if segs[i] == "" {
				return nil, false
			}
			params = append(params, segs[i])
			continue
		}
		if segs[i] != seg.literal {
			return nil, false
		}
	}
	return params, true
}
