package structfmt_test

import (
	"io"
	"testing"

	"github.com/bjaus/structfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLCompactObject(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(false)
	f.OpenObjectSection("host")
	f.DumpString("name", "a")
	f.DumpInt("id", 1)
	f.CloseSection()
	assert.Equal(t, `<host><li>name: a</li><li>id: 1</li></host>`, flush(t, f))
}

func TestHTMLPrettyObject(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(true)
	f.OpenObjectSection("host")
	f.DumpString("name", "a")
	f.CloseSection()
	assert.Equal(t, "<host>\n  <li>name: a</li>\n</host>\n", flush(t, f))
}

func TestHTMLEscaping(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpString("k", "<b>&</b>")
	f.CloseSection()
	assert.Equal(t, `<r><li>k: &lt;b&gt;&amp;&lt;/b&gt;</li></r>`, flush(t, f))
}

func TestHTMLUnquotedDropsName(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(false)
	f.OpenObjectSection("r")
	f.DumpBool("ok", true)
	f.DumpFormatUnquoted("n", "%d", 3)
	f.CloseSection()
	assert.Equal(t, `<r><li>true</li><li>3</li></r>`, flush(t, f))
}

func TestHTMLDumpStream(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(false)
	f.OpenObjectSection("r")
	w := f.DumpStream("s")
	_, err := io.WriteString(w, "v")
	require.NoError(t, err)
	f.CloseSection()
	assert.Equal(t, `<r><li>s: v</li></r>`, flush(t, f))
}

func TestHTMLCloseWithoutOpenPanics(t *testing.T) {
	t.Parallel()
	f := structfmt.NewHTMLFormatter(false)
	assert.Panics(t, func() { f.CloseSection() })
}
