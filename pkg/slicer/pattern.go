// Package slicer classifies class nodes into named slices.
//
// A slicing is a named, ordered list of patterns. Patterns use a glob-like
// grammar over dot-separated class names: `*` matches a single name segment,
// `**` matches any number of segments including the separating dots, a
// single `(...)` group captures the slice label, and a trailing `=name`
// assigns an explicit label to the whole match. The categorizer composes
// slicings and maps each class to its slice node (or nodes).
package slicer

import (
	"fmt"
	"regexp"
	"strings"

	derrors "github.com/obqo/decycle/pkg/errors"
)

// Pattern is a compiled class-name pattern. Compile patterns with
// [ParsePattern]; the zero value matches nothing.
type Pattern struct {
	source string
	re     *regexp.Regexp
	// group is the index of the capture group that yields the slice label,
	// or -1 when the whole match is the label.
	group int
	// name is the explicit label from a trailing `=name`, if any.
	name string
}

// ParsePattern compiles a pattern string.
//
// It returns an error for an empty pattern, more than one capture group, an
// explicit `=name` combined with a capture group, or a run of more than two
// consecutive stars.
func ParsePattern(s string) (*Pattern, error) {
	source := s
	name := ""
	if i := strings.IndexByte(s, '='); i >= 0 {
		name = s[i+1:]
		s = s[:i]
		if name == "" {
			return nil, derrors.New(derrors.ErrCodeInvalidPattern, "pattern %q has an empty name after '='", source)
		}
		if strings.ContainsRune(s, '(') {
			return nil, derrors.New(derrors.ErrCodeInvalidPattern, "pattern %q combines '=%s' with a capture group", source, name)
		}
	}
	if s == "" {
		return nil, derrors.New(derrors.ErrCodeInvalidPattern, "empty pattern")
	}

	expr, groups, err := compile(s)
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidPattern, err, "pattern %q", source)
	}

	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidPattern, err, "pattern %q", source)
	}

	group := -1
	if groups == 1 {
		group = 1
	}
	return &Pattern{source: source, re: re, group: group, name: name}, nil
}

// MustParsePattern is like [ParsePattern] but panics on error. Intended for
// patterns known valid at compile time.
func MustParsePattern(s string) *Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// compile translates the glob grammar into a regular expression and returns
// the expression together with the number of capture groups seen.
func compile(s string) (string, int, error) {
	var b strings.Builder
	groups := 0
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '.':
			if n := starRun(s, i+1); n == 2 {
				// `.**` consumes the boundary dot: zero or more trailing segments.
				b.WriteString(`(?:\.[^.]+)*`)
				i += 3
				continue
			} else if n > 2 {
				return "", 0, fmt.Errorf("more than two consecutive stars")
			}
			b.WriteString(`\.`)
			i++
		case '*':
			switch n := starRun(s, i); {
			case n > 2:
				return "", 0, fmt.Errorf("more than two consecutive stars")
			case n == 2:
				if i+2 < len(s) && s[i+2] == '.' {
					// `**.` consumes the boundary dot: zero or more leading segments.
					b.WriteString(`(?:[^.]+\.)*`)
					i += 3
					continue
				}
				b.WriteString(`.*`)
				i += 2
			default:
				b.WriteString(`[^.]*`)
				i++
			}
		case '(':
			groups++
			if groups > 1 {
				return "", 0, fmt.Errorf("more than one capture group")
			}
			b.WriteByte('(')
			i++
		case ')':
			b.WriteByte(')')
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String(), groups, nil
}

// starRun returns the length of the run of '*' starting at position i.
func starRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '*' {
		n++
	}
	return n
}

// Match applies the pattern to a fully qualified class name. On success it
// returns the slice label: the explicit name if one was given, else the
// captured group, else the entire class name.
func (p *Pattern) Match(className string) (string, bool) {
	if p.re == nil {
		return "", false
	}
	m := p.re.FindStringSubmatch(className)
	if m == nil {
		return "", false
	}
	if p.name != "" {
		return p.name, true
	}
	if p.group > 0 {
		return m[p.group], true
	}
	return m[0], true
}

// Matches reports whether the pattern accepts the class name.
func (p *Pattern) Matches(className string) bool {
	return p.re != nil && p.re.MatchString(className)
}

// String returns the original pattern source.
func (p *Pattern) String() string { return p.source }

// ParsePatterns compiles a list of pattern strings, failing on the first
// invalid one.
func ParsePatterns(specs []string) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(specs))
	for _, s := range specs {
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
