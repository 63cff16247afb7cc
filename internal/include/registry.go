package include

import (
	"fmt"
	"strings"
)

// Includes is the include set of one generation run. The zero value is
// ready to use. It is not safe for concurrent use; every run owns its own.
type Includes struct {
	custom []Include
	flags  [numCapabilities]bool
}

// New returns an empty include set.
func New() *Includes {
	return &Includes{}
}

// Insert appends a custom include. Duplicates are kept.
func (in *Includes) Insert(inc Include) {
	in.custom = append(in.custom, inc)
}

// Extend appends custom includes in order.
func (in *Includes) Extend(incs ...Include) {
	in.custom = append(in.custom, incs...)
}

// Set switches a capability on. Flags never switch back off.
func (in *Includes) Set(caps ...Capability) {
	for _, c := range caps {
		if !c.valid() {
			panic(fmt.Sprintf("include: invalid capability %d", int(c)))
		}
		in.flags[c] = true
	}
}

// Has reports whether a capability has been set.
func (in *Includes) Has(c Capability) bool {
	return c.valid() && in.flags[c]
}

// Custom returns a copy of the custom includes in insertion order.
func (in *Includes) Custom() []Include {
	return append([]Include(nil), in.custom...)
}

// Render serializes the set: custom includes first, in insertion order,
// then one line per set capability in declaration order.
func (in *Includes) Render() string {
	var sb strings.Builder
	for _, inc := range in.custom {
		sb.WriteString(inc.Directive())
		sb.WriteByte('\n')
	}
	for c, entry := range capabilities {
		if !in.flags[c] {
			continue
		}
		if entry.cond != "" {
			fmt.Fprintf(&sb, "#if %s\n", entry.cond)
		}
		fmt.Fprintf(&sb, "#include <%s>\n", entry.header)
		if entry.cond != "" {
			sb.WriteString("#endif\n")
		}
	}
	return sb.String()
}

// String implements fmt.Stringer with Render.
func (in *Includes) String() string {
	return in.Render()
}
