package structfmt

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

// HTMLFormatter is an XML-flavored renderer for quick human-readable pages:
// sections open and close tags exactly like XML, but scalar leaves render as
// list items, "<li>name: value</li>". Namespaces and attrs are ignored.
// Construct with [NewHTMLFormatter].
type HTMLFormatter struct {
	pretty      bool
	buf         bytes.Buffer
	sections    []string
	pending     bytes.Buffer
	pendingName string
	pendingOpen bool
}

// NewHTMLFormatter returns an HTML renderer, indented when pretty is true.
func NewHTMLFormatter(pretty bool) *HTMLFormatter {
	return &HTMLFormatter{pretty: pretty}
}

var _ Formatter = (*HTMLFormatter)(nil)

func (f *HTMLFormatter) indent() {
	if f.pretty {
		f.buf.WriteString(strings.Repeat("  ", len(f.sections)))
	}
}

func (f *HTMLFormatter) newline() {
	if f.pretty {
		f.buf.WriteByte('\n')
	}
}

func (f *HTMLFormatter) tagName(name string) string {
	if name == "" {
		return "key"
	}
	return name
}

func (f *HTMLFormatter) openSection(name string) {
	f.finishPendingString()
	name = f.tagName(name)
	f.indent()
	f.buf.WriteByte('<')
	f.buf.WriteString(name)
	f.buf.WriteByte('>')
	f.newline()
	f.sections = append(f.sections, name)
}

func (f *HTMLFormatter) finishPendingString() {
	if !f.pendingOpen {
		return
	}
	f.pendingOpen = false
	value := f.pending.String()
	f.pending.Reset()
	f.writeItem(f.pendingName, value)
}

// writeItem emits one <li> element. A non-empty name renders as a
// "name: value" item, an empty name as a bare value item.
func (f *HTMLFormatter) writeItem(name, value string) {
	f.indent()
	f.buf.WriteString("<li>")
	if name != "" {
		f.buf.WriteString(html.EscapeString(name))
		f.buf.WriteString(": ")
	}
	f.buf.WriteString(html.EscapeString(value))
	f.buf.WriteString("</li>")
	f.newline()
}

func (f *HTMLFormatter) OpenArraySection(name string)                   { f.openSection(name) }
func (f *HTMLFormatter) OpenArraySectionInNS(name, _ string)            { f.openSection(name) }
func (f *HTMLFormatter) OpenArraySectionWithAttrs(name string, _ Attrs) { f.openSection(name) }

func (f *HTMLFormatter) OpenObjectSection(name string)                   { f.openSection(name) }
func (f *HTMLFormatter) OpenObjectSectionInNS(name, _ string)            { f.openSection(name) }
func (f *HTMLFormatter) OpenObjectSectionWithAttrs(name string, _ Attrs) { f.openSection(name) }

func (f *HTMLFormatter) CloseSection() {
	if len(f.sections) == 0 {
		panic("structfmt: CloseSection with no open section")
	}
	f.finishPendingString()
	name := f.sections[len(f.sections)-1]
	f.sections = f.sections[:len(f.sections)-1]
	f.indent()
	f.buf.WriteString("</")
	f.buf.WriteString(name)
	f.buf.WriteByte('>')
	f.newline()
}

func (f *HTMLFormatter) dumpValue(name, value string) {
	f.finishPendingString()
	f.writeItem(name, value)
}

func (f *HTMLFormatter) DumpUnsigned(name string, u uint64) {
	f.dumpValue(name, fmt.Sprintf("%d", u))
}

func (f *HTMLFormatter) DumpInt(name string, i int64) {
	f.dumpValue(name, fmt.Sprintf("%d", i))
}

func (f *HTMLFormatter) DumpFloat(name string, d float64) {
	f.dumpValue(name, fmt.Sprintf("%g", d))
}

func (f *HTMLFormatter) DumpString(name, s string) {
	f.dumpValue(name, s)
}

func (f *HTMLFormatter) DumpStringWithAttrs(name, s string, _ Attrs) {
	f.DumpString(name, s)
}

func (f *HTMLFormatter) DumpBool(name string, b bool) {
	f.DumpFormatUnquoted(name, "%t", b)
}

func (f *HTMLFormatter) DumpStream(name string) io.Writer {
	f.finishPendingString()
	f.pendingName = name
	f.pendingOpen = true
	return &f.pending
}

func (f *HTMLFormatter) DumpFormat(name, format string, a ...any) {
	f.dumpValue(name, fmt.Sprintf(format, a...))
}

func (f *HTMLFormatter) DumpFormatNS(name, _, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

// DumpFormatUnquoted drops the name prefix, emitting a bare value item.
func (f *HTMLFormatter) DumpFormatUnquoted(_, format string, a ...any) {
	f.dumpValue("", fmt.Sprintf(format, a...))
}

func (f *HTMLFormatter) WriteRawData(data string) {
	f.finishPendingString()
	f.buf.WriteString(data)
}

func (f *HTMLFormatter) Len() int { return f.buf.Len() }

func (f *HTMLFormatter) Flush(w io.Writer) error {
	f.finishPendingString()
	_, err := w.Write(f.buf.Bytes())
	return err
}

func (f *HTMLFormatter) Reset() {
	f.buf.Reset()
	f.pending.Reset()
	f.pendingOpen = false
	f.pendingName = ""
	f.sections = nil
}
