// Package out provides the text buffer a generation run writes into.
package out

import (
	"bytes"
	"fmt"
)

// OutFile accumulates generated text. Sections are separated by a single
// blank line, emitted lazily so that an empty section leaves no trace.
type OutFile struct {
	content        bytes.Buffer
	sectionPending bool
}

// New returns an empty OutFile.
func New() *OutFile {
	return &OutFile{}
}

// NextSection starts a new section. The separator is written before the
// next non-empty write, and only if something was written before.
func (o *OutFile) NextSection() {
	o.sectionPending = true
}

// Write implements io.Writer.
func (o *OutFile) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if o.sectionPending {
		if o.content.Len() > 0 && !bytes.HasSuffix(o.content.Bytes(), []byte("\n\n")) {
			o.content.WriteByte('\n')
		}
		o.sectionPending = false
	}
	return o.content.Write(p)
}

// Writeln writes s followed by a newline.
func (o *OutFile) Writeln(s string) {
	_, _ = o.Write([]byte(s + "\n"))
}

// Writef writes a formatted string.
func (o *OutFile) Writef(format string, args ...any) {
	_, _ = fmt.Fprintf(o, format, args...)
}

// Len reports the number of bytes written so far.
func (o *OutFile) Len() int {
	return o.content.Len()
}

// Bytes returns the accumulated content.
func (o *OutFile) Bytes() []byte {
	return o.content.Bytes()
}

// String returns the accumulated content.
func (o *OutFile) String() string {
	return o.content.String()
}
