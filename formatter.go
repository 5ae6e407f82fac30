package structfmt

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedFormat is returned by [New] for an unknown format name with
// no usable fallback.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format names a concrete renderer.
type Format string

const (
	JSON       Format = "json"
	JSONPretty Format = "json-pretty"
	XML        Format = "xml"
	XMLPretty  Format = "xml-pretty"
	Table      Format = "table"
	TableKV    Format = "table-kv"
	YAML       Format = "yaml"
	HTML       Format = "html"
	HTMLPretty Format = "html-pretty"
)

var formats = []Format{JSON, JSONPretty, XML, XMLPretty, Table, TableKV, YAML, HTML, HTMLPretty}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// KeyValue is a single name-value pair.
type KeyValue struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list attached to an opened section or a
// string dump. XML renders attrs inline in the opening tag; Table appends
// them to the affected cell text; other renderers ignore them.
type Attrs []KeyValue

// Formatter is the abstract contract for building structured output
// incrementally. Callers open a section, dump named leaf values into it, and
// close it again; the concrete renderer alone decides syntax, escaping, and
// layout. An empty name means the value is an anonymous element of the
// enclosing array section.
//
// A Formatter is not safe for concurrent use; callers must serialize access
// to one instance. Structural misuse (closing with no open section) is a
// caller bug and panics rather than producing corrupt output.
type Formatter interface {
	// OpenArraySection pushes an array scope whose children are positional.
	OpenArraySection(name string)
	OpenArraySectionInNS(name, ns string)
	OpenArraySectionWithAttrs(name string, attrs Attrs)

	// OpenObjectSection pushes an object scope whose children are named.
	OpenObjectSection(name string)
	OpenObjectSectionInNS(name, ns string)
	OpenObjectSectionWithAttrs(name string, attrs Attrs)

	// CloseSection pops the innermost open section. It panics if no section
	// is open.
	CloseSection()

	DumpUnsigned(name string, u uint64)
	DumpInt(name string, i int64)
	DumpFloat(name string, f float64)
	DumpString(name, s string)
	DumpStringWithAttrs(name, s string, attrs Attrs)

	// DumpBool renders the unquoted literal "true" or "false".
	DumpBool(name string, b bool)

	// DumpStream returns a sink for building one string value incrementally.
	// Bytes written to it become the value for name; the value is committed
	// by the next contract call, or by Flush, whichever comes first. At most
	// one stream value is in flight at a time.
	DumpStream(name string) io.Writer

	// DumpFormat renders a value from a fmt.Sprintf template and dumps it as
	// a string leaf. DumpFormatUnquoted bypasses string quoting on renderers
	// that quote by default, for literals expressed as text. DumpFormatNS
	// additionally carries a namespace for renderers that honor one.
	DumpFormat(name, format string, a ...any)
	DumpFormatNS(name, ns, format string, a ...any)
	DumpFormatUnquoted(name, format string, a ...any)

	// WriteRawData appends pre-rendered bytes verbatim, bypassing structure
	// tracking. The caller is responsible for validity at the current
	// nesting position.
	WriteRawData(data string)

	// Len reports the size of the accumulated, not yet flushed output.
	Len() int

	// Flush commits any in-flight stream value and writes the accumulated
	// output to w. It does not clear state; use Reset for that.
	Flush(w io.Writer) error

	// Reset returns the renderer to its just-constructed condition.
	Reset()
}

// New returns the renderer named by f. An unknown name falls back to def;
// an unknown name with an empty def is an ErrUnsupportedFormat error.
func New(f, def Format) (Formatter, error) {
	if fm := newFormatter(f); fm != nil {
		return fm, nil
	}
	if def == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if fm := newFormatter(def); fm != nil {
		return fm, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, def)
}

// NewDefault is New with a json-pretty fallback, which always succeeds.
func NewDefault(f Format) Formatter {
	fm, _ := New(f, JSONPretty)
	return fm
}

func newFormatter(f Format) Formatter {
	switch f {
	case JSON:
		return NewJSONFormatter(false)
	case JSONPretty:
		return NewJSONFormatter(true)
	case XML:
		return NewXMLFormatter(false)
	case XMLPretty:
		return NewXMLFormatter(true)
	case Table:
		return NewTableFormatter(false)
	case TableKV:
		return NewTableFormatter(true)
	case YAML:
		return NewYAMLFormatter()
	case HTML:
		return NewHTMLFormatter(false)
	case HTMLPretty:
		return NewHTMLFormatter(true)
	default:
		return nil
	}
}
