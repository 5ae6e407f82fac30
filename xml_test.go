package structfmt_test

import (
	"io"
	"strings"
	"testing"

	"github.com/bjaus/structfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLCompactObject(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("host")
	f.DumpString("name", "a")
	f.DumpInt("id", 1)
	f.CloseSection()
	assert.Equal(t, `<host><name>a</name><id>1</id></host>`, flush(t, f))
}

func TestXMLPrettyObject(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(true)
	f.OpenObjectSection("host")
	f.DumpString("name", "a")
	f.DumpInt("id", 1)
	f.CloseSection()
	want := "<host>\n  <name>a</name>\n  <id>1</id>\n</host>\n"
	assert.Equal(t, want, flush(t, f))
}

func TestXMLNamespace(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSectionInNS("host", "urn:hosts")
	f.DumpString("name", "a")
	f.CloseSection()
	assert.Equal(t, `<host xmlns="urn:hosts"><name>a</name></host>`, flush(t, f))
}

func TestXMLSectionAttrs(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSectionWithAttrs("host", structfmt.Attrs{
		{Key: "id", Value: "3"},
		{Key: "class", Value: `a<b"c`},
	})
	f.CloseSection()
	assert.Equal(t, `<host id="3" class="a&lt;b&quot;c"></host>`, flush(t, f))
}

func TestXMLDumpStringWithAttrs(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("host")
	f.DumpStringWithAttrs("disk", "ssd", structfmt.Attrs{{Key: "slot", Value: "0"}})
	f.CloseSection()
	assert.Equal(t, `<host><disk slot="0">ssd</disk></host>`, flush(t, f))
}

func TestXMLEscaping(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpString("v", "a&b<c>\"d'\x02e")
	f.CloseSection()
	// The five reserved characters become entities; the illegal control
	// character is dropped.
	assert.Equal(t, `<r><v>a&amp;b&lt;c&gt;&quot;d&apos;e</v></r>`, flush(t, f))
}

func TestXMLEmptyNamePlaceholder(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenArraySection("xs")
	f.DumpString("", "v")
	f.CloseSection()
	assert.Equal(t, `<xs><key>v</key></xs>`, flush(t, f))
}

func TestXMLDTDConstant(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`, structfmt.XML1DTD)
}

func TestXMLDocumentWithDTD(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.WriteRawData(structfmt.XML1DTD)
	f.OpenObjectSection("doc")
	f.DumpBool("ok", true)
	f.CloseSection()
	assert.Equal(t, structfmt.XML1DTD+`<doc><ok>true</ok></doc>`, flush(t, f))
}

func TestXMLDumpFormatNS(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpFormatNS("tm", "urn:t", "%d", 5)
	f.CloseSection()
	assert.Equal(t, `<r><tm xmlns="urn:t">5</tm></r>`, flush(t, f))
}

func TestXMLDumpStream(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(true)
	f.OpenObjectSection("r")
	w := f.DumpStream("s")
	_, err := io.WriteString(w, "a<b")
	require.NoError(t, err)
	f.CloseSection()
	assert.Equal(t, "<r>\n  <s>a&lt;b</s>\n</r>\n", flush(t, f))
}

func TestXMLScalars(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpUnsigned("u", 7)
	f.DumpInt("i", -2)
	f.DumpFloat("f", 1.5)
	f.DumpFormat("m", "%s/%d", "x", 3)
	f.CloseSection()
	assert.Equal(t, `<r><u>7</u><i>-2</i><f>1.5</f><m>x/3</m></r>`, flush(t, f))
}

func TestXMLCloseWithoutOpenPanics(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	assert.Panics(t, func() { f.CloseSection() })
}

func TestXMLReset(t *testing.T) {
	t.Parallel()
	f := structfmt.NewXMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpInt("i", 1)
	f.Reset()
	assert.Zero(t, f.Len())
	f.OpenObjectSection("r")
	f.CloseSection()
	assert.Equal(t, `<r></r>`, flush(t, f))
}

func TestXMLPrettyParsesSameAsCompact(t *testing.T) {
	t.Parallel()
	build := func(f structfmt.Formatter) {
		f.OpenObjectSection("hosts")
		f.OpenArraySection("host")
		f.OpenObjectSection("entry")
		f.DumpString("name", "a")
		f.CloseSection()
		f.OpenObjectSection("entry")
		f.DumpString("name", "b")
		f.CloseSection()
		f.CloseSection()
		f.CloseSection()
	}
	compact := structfmt.NewXMLFormatter(false)
	pretty := structfmt.NewXMLFormatter(true)
	build(compact)
	build(pretty)

	// Pretty mode differs from compact only in inserted newlines and leading
	// indentation.
	normalized := ""
	for _, line := range strings.Split(flush(t, pretty), "\n") {
		normalized += strings.TrimLeft(line, " ")
	}
	assert.Equal(t, flush(t, compact), normalized)
}
