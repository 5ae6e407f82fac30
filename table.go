package structfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type tableSection struct {
	name    string
	isArray bool
}

// TableFormatter interprets the section/dump call sequence as rows of a
// plain-text table. Columns are discovered as leaf names arrive, in
// first-seen order; one object opened directly under the controlling
// (outermost) array section produces one row, and a column never written for
// a row renders as a blank cell. Cells are left-aligned and padded to the
// widest value seen in their column, measured in display cells.
//
// Cell keys are leaf names, prefixed with the names of any sections open
// inside the row, joined with ":". A key seen again within the same row gets
// an occurrence suffix, "name[1]" for the second occurrence and so on.
//
// In key-value mode every leaf dump instead becomes one "path=value" line
// immediately, where path is the "/"-joined chain of open section names;
// no layout state is kept. Construct with [NewTableFormatter].
type TableFormatter struct {
	keyval bool

	sections    []tableSection
	controlling int // stack index of the outermost array section, -1 when none

	cols     []string
	colIndex map[string]int
	widths   []int

	rows     [][]string
	cur      []string
	rowOpen  bool
	rowDepth int            // stack depth of the row object while rowOpen
	seen     map[string]int // per-row key occurrence counts

	// buf holds WriteRawData bytes and, in key-value mode, the emitted
	// lines; at flush it precedes the rendered table.
	buf  bytes.Buffer
	size int // content bytes accumulated in cells

	pending     bytes.Buffer
	pendingName string
	pendingOpen bool
}

// NewTableFormatter returns a table renderer, or a key-value renderer when
// keyval is true.
func NewTableFormatter(keyval bool) *TableFormatter {
	return &TableFormatter{
		keyval:      keyval,
		controlling: -1,
		colIndex:    make(map[string]int),
		seen:        make(map[string]int),
	}
}

var _ Formatter = (*TableFormatter)(nil)

// AttrsString renders attrs as an inline annotation, "(k=v,k2=w)", the form
// the table renderer appends to a cell when attrs are supplied. An empty
// attrs list renders as the empty string.
func AttrsString(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, kv := range attrs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	b.WriteByte(')')
	return b.String()
}

func (f *TableFormatter) openSection(name string, isArray bool, attrs Attrs) {
	f.finishPendingString()
	if s := AttrsString(attrs); s != "" {
		name += s
	}
	if isArray && f.controlling == -1 {
		f.controlling = len(f.sections)
	} else if !isArray && !f.keyval && f.controlling >= 0 && len(f.sections) == f.controlling+1 {
		// An object directly under the controlling array begins a row.
		f.startRow()
	}
	f.sections = append(f.sections, tableSection{name: name, isArray: isArray})
}

func (f *TableFormatter) startRow() {
	f.commitRow()
	f.rowOpen = true
	f.rowDepth = len(f.sections) + 1
}

func (f *TableFormatter) commitRow() {
	if len(f.cur) > 0 {
		f.rows = append(f.rows, f.cur)
		f.cur = nil
	}
	f.seen = make(map[string]int)
}

func (f *TableFormatter) OpenArraySection(name string)        { f.openSection(name, true, nil) }
func (f *TableFormatter) OpenArraySectionInNS(name, _ string) { f.openSection(name, true, nil) }
func (f *TableFormatter) OpenArraySectionWithAttrs(name string, attrs Attrs) {
	f.openSection(name, true, attrs)
}

func (f *TableFormatter) OpenObjectSection(name string)        { f.openSection(name, false, nil) }
func (f *TableFormatter) OpenObjectSectionInNS(name, _ string) { f.openSection(name, false, nil) }
func (f *TableFormatter) OpenObjectSectionWithAttrs(name string, attrs Attrs) {
	f.openSection(name, false, attrs)
}

func (f *TableFormatter) CloseSection() {
	if len(f.sections) == 0 {
		panic("structfmt: CloseSection with no open section")
	}
	f.finishPendingString()
	idx := len(f.sections) - 1
	f.sections = f.sections[:idx]
	if f.rowOpen && len(f.sections) < f.rowDepth {
		f.commitRow()
		f.rowOpen = false
	}
	if idx == f.controlling {
		f.controlling = -1
	}
}

// cellKey builds the column key for a leaf dumped under the current section
// chain and bumps its per-row occurrence count.
func (f *TableFormatter) cellKey(name string) string {
	base := 0
	if f.rowOpen {
		base = f.rowDepth
	} else if len(f.sections) > 0 {
		base = 1
	}
	parts := make([]string, 0, len(f.sections)-base+1)
	for _, s := range f.sections[base:] {
		if s.name != "" {
			parts = append(parts, s.name)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	key := strings.Join(parts, ":")
	if key == "" {
		key = "value"
	}
	n := f.seen[key]
	f.seen[key] = n + 1
	if n > 0 {
		key = fmt.Sprintf("%s[%d]", key, n)
	}
	return key
}

// kvPath joins the full open-section chain and the leaf name with "/".
func (f *TableFormatter) kvPath(name string) string {
	parts := make([]string, 0, len(f.sections)+1)
	for _, s := range f.sections {
		if s.name != "" {
			parts = append(parts, s.name)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "value"
	}
	return strings.Join(parts, "/")
}

func (f *TableFormatter) dump(name, value string) {
	f.finishPendingString()
	if f.keyval {
		f.buf.WriteString(f.kvPath(name))
		f.buf.WriteByte('=')
		f.buf.WriteString(value)
		f.buf.WriteByte('\n')
		return
	}
	f.putCell(f.cellKey(name), value)
}

func (f *TableFormatter) putCell(key, value string) {
	f.size += len(value)
	idx, ok := f.colIndex[key]
	if !ok {
		idx = len(f.cols)
		f.colIndex[key] = idx
		f.cols = append(f.cols, key)
		f.widths = append(f.widths, runewidth.StringWidth(key))
	}
	for len(f.cur) <= idx {
		f.cur = append(f.cur, "")
	}
	f.cur[idx] = value
	if w := runewidth.StringWidth(value); w > f.widths[idx] {
		f.widths[idx] = w
	}
}

func (f *TableFormatter) finishPendingString() {
	if !f.pendingOpen {
		return
	}
	f.pendingOpen = false
	value := f.pending.String()
	f.pending.Reset()
	f.dump(f.pendingName, value)
}

func (f *TableFormatter) DumpUnsigned(name string, u uint64) {
	f.dump(name, fmt.Sprintf("%d", u))
}

func (f *TableFormatter) DumpInt(name string, i int64) {
	f.dump(name, fmt.Sprintf("%d", i))
}

func (f *TableFormatter) DumpFloat(name string, d float64) {
	f.dump(name, fmt.Sprintf("%g", d))
}

func (f *TableFormatter) DumpString(name, s string) {
	f.dump(name, s)
}

// DumpStringWithAttrs appends the rendered attrs to the cell text; tabular
// output has no native attribute slot.
func (f *TableFormatter) DumpStringWithAttrs(name, s string, attrs Attrs) {
	if a := AttrsString(attrs); a != "" {
		s += " " + a
	}
	f.dump(name, s)
}

func (f *TableFormatter) DumpBool(name string, b bool) {
	f.DumpFormatUnquoted(name, "%t", b)
}

func (f *TableFormatter) DumpStream(name string) io.Writer {
	f.finishPendingString()
	f.pendingName = name
	f.pendingOpen = true
	return &f.pending
}

func (f *TableFormatter) DumpFormat(name, format string, a ...any) {
	f.dump(name, fmt.Sprintf(format, a...))
}

func (f *TableFormatter) DumpFormatNS(name, _, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

// DumpFormatUnquoted is identical to DumpFormat; table cells are not quoted.
func (f *TableFormatter) DumpFormatUnquoted(name, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

func (f *TableFormatter) WriteRawData(data string) {
	f.finishPendingString()
	f.buf.WriteString(data)
}

// Len reports accumulated content size: raw and key-value bytes plus the
// bytes of every cell value placed so far. The rendered layout adds padding
// on top of this, so Len is a content measure, not a render measure.
func (f *TableFormatter) Len() int { return f.buf.Len() + f.size }

func (f *TableFormatter) Flush(w io.Writer) error {
	f.finishPendingString()
	f.commitRow()
	if f.buf.Len() > 0 {
		if _, err := w.Write(f.buf.Bytes()); err != nil {
			return err
		}
	}
	if f.keyval || len(f.cols) == 0 {
		return nil
	}
	if err := f.writeAligned(w, f.cols); err != nil {
		return err
	}
	sep := make([]string, len(f.cols))
	for i, width := range f.widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range f.rows {
		if err := f.writeAligned(w, row); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeAligned(w io.Writer, cells []string) error {
	parts := make([]string, len(f.cols))
	for i, width := range f.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if pad := width - runewidth.StringWidth(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = cell
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

func (f *TableFormatter) Reset() {
	f.sections = nil
	f.controlling = -1
	f.cols = nil
	f.colIndex = make(map[string]int)
	f.widths = nil
	f.rows = nil
	f.cur = nil
	f.rowOpen = false
	f.rowDepth = 0
	f.seen = make(map[string]int)
	f.buf.Reset()
	f.size = 0
	f.pending.Reset()
	f.pendingName = ""
	f.pendingOpen = false
}
