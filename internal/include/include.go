// Package include collects the #include directives a generated header needs:
// headers requested explicitly by the declarations, plus standard headers
// switched on by capability flags during analysis.
package include

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the delimiter of an #include directive.
type Kind int

const (
	// Quoted renders `#include "path"`.
	Quoted Kind = iota
	// Bracketed renders `#include <path>`.
	Bracketed
)

func (k Kind) String() string {
	switch k {
	case Quoted:
		return "quoted"
	case Bracketed:
		return "bracketed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Include is a header to #include. Paths are emitted as written; nothing
// checks that they exist.
type Include struct {
	// Path excludes the surrounding quotes or angle brackets.
	Path string
	Kind Kind
}

// ParseInclude reads the declaration syntax for an include: `<path>` is
// bracketed, anything else is quoted.
func ParseInclude(s string) (Include, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		if !strings.HasSuffix(s, ">") || len(s) < 3 {
			return Include{}, fmt.Errorf("invalid bracketed include %q", s)
		}
		return Include{Path: s[1 : len(s)-1], Kind: Bracketed}, nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
	if s == "" {
		return Include{}, errors.New("include path cannot be empty")
	}
	return Include{Path: s, Kind: Quoted}, nil
}

// Directive renders the #include line without its trailing newline.
func (inc Include) Directive() string {
	if inc.Kind == Bracketed {
		return "#include <" + inc.Path + ">"
	}
	return "#include \"" + escape(inc.Path) + "\""
}

// escape applies C string-literal escaping to a quoted include path.
// Control bytes become three-digit octal escapes, which cannot absorb a
// following digit. Bytes of 0x80 and above, i.e. UTF-8 paths, pass through
// unchanged.
func escape(path string) string {
	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		switch c := path[i]; {
		case c == '\\' || c == '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&sb, "\\%03o", c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
