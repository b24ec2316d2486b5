package generator

import (
	"bytes"
	"fmt"
	"strings"
)

// indentUnit is one indentation level of the emitted Python source.
const indentUnit = "    "

// Builder accumulates output lines at a tracked indentation level.
type Builder struct {
	buf  bytes.Buffer
	tabs int
}

// Indent increases the indentation level for following lines.
func (b *Builder) Indent() {
	b.tabs++
}

// Dedent decreases the indentation level, stopping at zero.
func (b *Builder) Dedent() {
	if b.tabs > 0 {
		b.tabs--
	}
}

// Level returns the current indentation level.
func (b *Builder) Level() int {
	return b.tabs
}

// Line writes one indented, newline-terminated line.
func (b *Builder) Line(format string, args ...interface{}) {
	b.buf.WriteString(strings.Repeat(indentUnit, b.tabs))
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
}

// Blank writes an empty line with no indentation.
func (b *Builder) Blank() {
	b.buf.WriteByte('\n')
}

// String returns everything written so far.
func (b *Builder) String() string {
	return b.buf.String()
}
