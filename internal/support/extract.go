package support

import (
	"strings"

	"github.com/vk/bridgegen/internal/out"
)

const (
	ifndefPrefix = "#ifndef "
	definePrefix = "#define "
	endifPrefix  = "#endif // "
	commentStart = "//"
)

// Extract is Write into a fresh buffer. It returns "" when the guard is
// present but not needed.
func Extract(text, guard string, needed bool) (string, error) {
	o := out.New()
	if err := NewHeader(text).Write(o, guard, needed); err != nil {
		return "", err
	}
	return o.String(), nil
}

// Write appends every block of guard to o, or nothing when needed is false.
// The guard must exist in the header even when it is not needed; a missing
// guard yields a *MissingGuardError and nothing is written.
func (h *Header) Write(o *out.OutFile, guard string, needed bool) error {
	ifndef := ifndefPrefix + guard
	define := definePrefix + guard
	endif := endifPrefix + guard

	offset := 0
	for {
		begin, beginOK := h.findLine(offset, ifndef)
		end, endOK := h.findLine(offset, endif)
		if !beginOK || !endOK {
			if offset == 0 {
				return h.missingGuard(guard)
			}
			o.Writeln(endif)
			return nil
		}

		if !needed {
			return nil
		}
		o.NextSection()
		if offset == 0 {
			o.Writeln(ifndef)
			o.Writeln(define)
		}
		body := ""
		if bodyStart := begin + len(ifndef); bodyStart < end {
			body = strings.TrimSpace(h.text[bodyStart:end])
		}
		for _, line := range splitLines(body) {
			if line == define || strings.HasPrefix(strings.TrimLeft(line, " \t"), commentStart) {
				continue
			}
			o.Writeln(line)
		}
		offset = end + len(endif)
	}
}

// findLine returns the offset of the first occurrence of line at or after
// offset that starts a line of the header and is immediately followed by a
// line break.
func (h *Header) findLine(offset int, line string) (int, bool) {
	for offset <= len(h.text) {
		idx := strings.Index(h.text[offset:], line)
		if idx < 0 {
			return 0, false
		}
		pos := offset + idx
		rest := h.text[pos+len(line):]
		atLineStart := pos == 0 || h.text[pos-1] == '\n'
		if atLineStart && (strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r")) {
			return pos, true
		}
		offset = pos + len(line)
	}
	return 0, false
}

// splitLines splits on "\n" and drops a trailing "\r" from each line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
