// Package structfmt builds structured output incrementally behind a single
// pluggable contract. A caller opens sections, dumps named scalar values into
// them, and closes them again; the active [Formatter] alone decides syntax,
// escaping, and layout. Output accumulates in memory and is written once via
// Flush.
//
// Supported formats are JSON, XML, Table, YAML, and HTML, each with the
// variants listed under [Formats] (pretty JSON/XML/HTML, key-value table).
//
// # Construction
//
// Renderers are selected by name through [New], which takes a fallback for
// unknown names, or constructed directly:
//
//	f, err := structfmt.New(structfmt.Format(flagValue), structfmt.JSONPretty)
//	f := structfmt.NewJSONFormatter(true)
//
// [NewDefault] always succeeds, falling back to pretty JSON.
//
// # Building output
//
// Sections nest arbitrarily; array sections hold positional children (dumped
// with an empty name), object sections hold named children:
//
//	f.OpenObjectSection("host")
//	f.DumpString("name", "a")
//	f.DumpInt("id", 1)
//	f.CloseSection()
//	f.Flush(os.Stdout)
//
// Compact JSON renders this as {"host":{"name":"a","id":1}}; XML as
// <host><name>a</name><id>1</id></host>; the table renderer as one row with
// columns "name" and "id".
//
// [Formatter.DumpStream] returns a writer for building one string value
// incrementally; the value commits on the next contract call or at flush.
// [Formatter.DumpFormat] and friends take fmt.Sprintf templates.
//
// # Namespaces and attributes
//
// The InNS and WithAttrs variants carry an XML namespace or an ordered
// [Attrs] list. XML renders both; the table renderer folds attrs into the
// cell text; other renderers silently degrade to the plain variant.
//
// # Errors and misuse
//
// Unknown format names surface as [ErrUnsupportedFormat] from [New].
// Closing a section when none is open is a caller bug and panics: corrupted
// nesting cannot be repaired after the fact. Escaping never fails; each
// renderer's policy for hostile input is documented on its type.
//
// A Formatter instance is single-threaded; callers sharing one across
// goroutines must serialize access themselves.
package structfmt
