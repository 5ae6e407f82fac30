package structfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type jsonSection struct {
	size    int
	isArray bool
}

// JSONFormatter renders the section tree as a JSON document. In pretty mode
// every token starts on its own line, indented two spaces per nesting level;
// compact mode emits no whitespace at all. The zero value is not usable;
// construct with [NewJSONFormatter].
type JSONFormatter struct {
	pretty      bool
	buf         bytes.Buffer
	stack       []jsonSection
	pending     bytes.Buffer
	pendingOpen bool
}

// NewJSONFormatter returns a JSON renderer, indented when pretty is true.
func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{pretty: pretty}
}

var _ Formatter = (*JSONFormatter)(nil)

func (f *JSONFormatter) indent() {
	f.buf.WriteString(strings.Repeat("  ", len(f.stack)))
}

// printName writes the separator owed to the enclosing section, then the
// quoted key when that section is an object. Dumping at top level, with no
// section open, writes the value bare.
func (f *JSONFormatter) printName(name string) {
	if len(f.stack) == 0 {
		return
	}
	top := &f.stack[len(f.stack)-1]
	if top.size > 0 {
		f.buf.WriteByte(',')
	}
	if f.pretty {
		f.buf.WriteByte('\n')
		f.indent()
	}
	if !top.isArray {
		f.buf.WriteString(quoteJSON(name))
		f.buf.WriteByte(':')
		if f.pretty {
			f.buf.WriteByte(' ')
		}
	}
	top.size++
}

func (f *JSONFormatter) openSection(name string, isArray bool) {
	f.finishPendingString()
	f.printName(name)
	if isArray {
		f.buf.WriteByte('[')
	} else {
		f.buf.WriteByte('{')
	}
	f.stack = append(f.stack, jsonSection{isArray: isArray})
}

func (f *JSONFormatter) finishPendingString() {
	if !f.pendingOpen {
		return
	}
	f.pendingOpen = false
	f.buf.WriteString(quoteJSON(f.pending.String()))
	f.pending.Reset()
}

func (f *JSONFormatter) OpenArraySection(name string) { f.openSection(name, true) }

// OpenArraySectionInNS ignores the namespace; JSON has no namespace concept.
func (f *JSONFormatter) OpenArraySectionInNS(name, _ string) { f.openSection(name, true) }

// OpenArraySectionWithAttrs ignores the attrs; JSON has no attribute slot.
func (f *JSONFormatter) OpenArraySectionWithAttrs(name string, _ Attrs) { f.openSection(name, true) }

func (f *JSONFormatter) OpenObjectSection(name string)        { f.openSection(name, false) }
func (f *JSONFormatter) OpenObjectSectionInNS(name, _ string) { f.openSection(name, false) }
func (f *JSONFormatter) OpenObjectSectionWithAttrs(name string, _ Attrs) {
	f.openSection(name, false)
}

func (f *JSONFormatter) CloseSection() {
	if len(f.stack) == 0 {
		panic("structfmt: CloseSection with no open section")
	}
	f.finishPendingString()
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	if f.pretty && top.size > 0 {
		f.buf.WriteByte('\n')
		f.indent()
	}
	if top.isArray {
		f.buf.WriteByte(']')
	} else {
		f.buf.WriteByte('}')
	}
	if f.pretty && len(f.stack) == 0 {
		f.buf.WriteByte('\n')
	}
}

func (f *JSONFormatter) dumpValue(name, value string) {
	f.finishPendingString()
	f.printName(name)
	f.buf.WriteString(value)
}

func (f *JSONFormatter) DumpUnsigned(name string, u uint64) {
	f.dumpValue(name, strconv.FormatUint(u, 10))
}

func (f *JSONFormatter) DumpInt(name string, i int64) {
	f.dumpValue(name, strconv.FormatInt(i, 10))
}

func (f *JSONFormatter) DumpFloat(name string, d float64) {
	f.dumpValue(name, strconv.FormatFloat(d, 'g', -1, 64))
}

func (f *JSONFormatter) DumpString(name, s string) {
	f.dumpValue(name, quoteJSON(s))
}

// DumpStringWithAttrs ignores the attrs; JSON has no attribute slot.
func (f *JSONFormatter) DumpStringWithAttrs(name, s string, _ Attrs) {
	f.DumpString(name, s)
}

func (f *JSONFormatter) DumpBool(name string, b bool) {
	f.DumpFormatUnquoted(name, "%s", strconv.FormatBool(b))
}

func (f *JSONFormatter) DumpStream(name string) io.Writer {
	f.finishPendingString()
	f.printName(name)
	f.pendingOpen = true
	return &f.pending
}

func (f *JSONFormatter) DumpFormat(name, format string, a ...any) {
	f.DumpString(name, fmt.Sprintf(format, a...))
}

// DumpFormatNS ignores the namespace; JSON has no namespace concept.
func (f *JSONFormatter) DumpFormatNS(name, _, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

func (f *JSONFormatter) DumpFormatUnquoted(name, format string, a ...any) {
	f.dumpValue(name, fmt.Sprintf(format, a...))
}

func (f *JSONFormatter) WriteRawData(data string) {
	f.finishPendingString()
	f.buf.WriteString(data)
}

func (f *JSONFormatter) Len() int { return f.buf.Len() }

func (f *JSONFormatter) Flush(w io.Writer) error {
	f.finishPendingString()
	_, err := w.Write(f.buf.Bytes())
	return err
}

func (f *JSONFormatter) Reset() {
	f.buf.Reset()
	f.pending.Reset()
	f.pendingOpen = false
	f.stack = nil
}
