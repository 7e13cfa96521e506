package model

import (
	"strings"
)

// mangleMarker is the token spliced in where a template argument list was
// flattened. Stripping everything from the first marker recovers the
// un-templated base name.
const mangleMarker = "Templated"

// MangleTemplates flattens template argument lists into a legal identifier:
// "zList<zCVob *>" becomes "zListTemplatedzCVobPtr". Nested lists are
// flattened innermost-first. A '<' with no matching '>' is an operator token
// (e.g. "operator<"), not a template open, and leaves the input untouched.
// The result contains no '<', so a second pass is a no-op.
func MangleTemplates(name string) string {
	for {
		open, closing, ok := matchBracket(name)
		if !ok {
			return name
		}
		inner := MangleTemplates(name[open+1 : closing])
		name = name[:open] + mangleMarker + flattenArguments(inner) + name[closing+1:]
	}
}

// matchBracket finds the first '<' and its matching '>' by depth counting.
// ok is false when there is no '<', or when the bracket never closes before
// end of input.
func matchBracket(s string) (open, closing int, ok bool) {
	open = strings.IndexByte(s, '<')
	if open < 0 {
		return 0, 0, false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return open, i, true
			}
		}
	}
	return 0, 0, false
}

// flattenArguments rewrites one already-mangled argument list into identifier
// characters: '*' -> Ptr, '&' -> Ref, spaces and commas dropped.
func flattenArguments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*':
			b.WriteString("Ptr")
		case '&':
			b.WriteString("Ref")
		case ' ', ',':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func indexOfMangleMarker(name string) int {
	return strings.Index(name, mangleMarker)
}
