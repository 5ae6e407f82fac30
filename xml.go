package structfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// XML1DTD is the document prolog for callers producing a standalone XML
// document; write it via WriteRawData before opening the root section.
const XML1DTD = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

// XMLFormatter renders each section as a <name>...</name> tag pair. Array and
// object sections are indistinguishable on the wire; repetition of sibling
// tags is the array convention. Namespaces render as an xmlns attribute on
// the opening tag, attrs render inline. Pretty mode indents two spaces per
// nesting level. Construct with [NewXMLFormatter].
//
// XML has no anonymous elements, so a scalar dumped with an empty name uses
// the placeholder tag "key".
type XMLFormatter struct {
	pretty      bool
	buf         bytes.Buffer
	sections    []string
	pending     bytes.Buffer
	pendingName string
	pendingOpen bool
}

// NewXMLFormatter returns an XML renderer, indented when pretty is true.
func NewXMLFormatter(pretty bool) *XMLFormatter {
	return &XMLFormatter{pretty: pretty}
}

var _ Formatter = (*XMLFormatter)(nil)

func (f *XMLFormatter) indent() {
	if f.pretty {
		f.buf.WriteString(strings.Repeat("  ", len(f.sections)))
	}
}

func (f *XMLFormatter) newline() {
	if f.pretty {
		f.buf.WriteByte('\n')
	}
}

// xmlAttrsString renders attrs in opening-tag form, each escaped, with a
// leading space: ` k="v" k2="w"`.
func xmlAttrsString(attrs Attrs) string {
	var b strings.Builder
	for _, kv := range attrs {
		b.WriteByte(' ')
		b.WriteString(escapeXML(kv.Key))
		b.WriteString(`="`)
		b.WriteString(escapeXML(kv.Value))
		b.WriteByte('"')
	}
	return b.String()
}

func (f *XMLFormatter) tagName(name string) string {
	if name == "" {
		return "key"
	}
	return name
}

func (f *XMLFormatter) openSection(name, ns string, attrs Attrs) {
	f.finishPendingString()
	name = f.tagName(name)
	f.indent()
	f.buf.WriteByte('<')
	f.buf.WriteString(name)
	if ns != "" {
		f.buf.WriteString(` xmlns="`)
		f.buf.WriteString(escapeXML(ns))
		f.buf.WriteByte('"')
	}
	f.buf.WriteString(xmlAttrsString(attrs))
	f.buf.WriteByte('>')
	f.newline()
	f.sections = append(f.sections, name)
}

func (f *XMLFormatter) finishPendingString() {
	if !f.pendingOpen {
		return
	}
	f.pendingOpen = false
	value := f.pending.String()
	f.pending.Reset()
	f.writeElement(f.pendingName, "", nil, value)
}

// writeElement emits one complete <name>value</name> element, escaping the
// value.
func (f *XMLFormatter) writeElement(name, ns string, attrs Attrs, value string) {
	name = f.tagName(name)
	f.indent()
	f.buf.WriteByte('<')
	f.buf.WriteString(name)
	if ns != "" {
		f.buf.WriteString(` xmlns="`)
		f.buf.WriteString(escapeXML(ns))
		f.buf.WriteByte('"')
	}
	f.buf.WriteString(xmlAttrsString(attrs))
	f.buf.WriteByte('>')
	f.buf.WriteString(escapeXML(value))
	f.buf.WriteString("</")
	f.buf.WriteString(name)
	f.buf.WriteByte('>')
	f.newline()
}

func (f *XMLFormatter) OpenArraySection(name string)         { f.openSection(name, "", nil) }
func (f *XMLFormatter) OpenArraySectionInNS(name, ns string) { f.openSection(name, ns, nil) }
func (f *XMLFormatter) OpenArraySectionWithAttrs(name string, attrs Attrs) {
	f.openSection(name, "", attrs)
}

func (f *XMLFormatter) OpenObjectSection(name string)         { f.openSection(name, "", nil) }
func (f *XMLFormatter) OpenObjectSectionInNS(name, ns string) { f.openSection(name, ns, nil) }
func (f *XMLFormatter) OpenObjectSectionWithAttrs(name string, attrs Attrs) {
	f.openSection(name, "", attrs)
}

func (f *XMLFormatter) CloseSection() {
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

func (f *XMLFormatter) dumpValue(name, value string) {
	f.finishPendingString()
	f.writeElement(name, "", nil, value)
}

func (f *XMLFormatter) DumpUnsigned(name string, u uint64) {
	f.dumpValue(name, fmt.Sprintf("%d", u))
}

func (f *XMLFormatter) DumpInt(name string, i int64) {
	f.dumpValue(name, fmt.Sprintf("%d", i))
}

func (f *XMLFormatter) DumpFloat(name string, d float64) {
	f.dumpValue(name, fmt.Sprintf("%g", d))
}

func (f *XMLFormatter) DumpString(name, s string) {
	f.dumpValue(name, s)
}

func (f *XMLFormatter) DumpStringWithAttrs(name, s string, attrs Attrs) {
	f.finishPendingString()
	f.writeElement(name, "", attrs, s)
}

func (f *XMLFormatter) DumpBool(name string, b bool) {
	f.DumpFormatUnquoted(name, "%t", b)
}

func (f *XMLFormatter) DumpStream(name string) io.Writer {
	f.finishPendingString()
	f.pendingName = name
	f.pendingOpen = true
	return &f.pending
}

func (f *XMLFormatter) DumpFormat(name, format string, a ...any) {
	f.dumpValue(name, fmt.Sprintf(format, a...))
}

func (f *XMLFormatter) DumpFormatNS(name, ns, format string, a ...any) {
	f.finishPendingString()
	f.writeElement(name, ns, nil, fmt.Sprintf(format, a...))
}

// DumpFormatUnquoted is identical to DumpFormat; XML does not quote values.
func (f *XMLFormatter) DumpFormatUnquoted(name, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

func (f *XMLFormatter) WriteRawData(data string) {
	f.finishPendingString()
	f.buf.WriteString(data)
}

func (f *XMLFormatter) Len() int { return f.buf.Len() }

func (f *XMLFormatter) Flush(w io.Writer) error {
	f.finishPendingString()
	_, err := w.Write(f.buf.Bytes())
	return err
}

func (f *XMLFormatter) Reset() {
	f.buf.Reset()
	f.pending.Reset()
	f.pendingOpen = false
	f.pendingName = ""
	f.sections = nil
}
