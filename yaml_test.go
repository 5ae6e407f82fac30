package structfmt_test

import (
	"io"
	"testing"

	"github.com/bjaus/structfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLMapping(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenObjectSection("stats")
	f.DumpString("a", "x")
	f.DumpInt("b", 2)
	f.CloseSection()
	want := "stats:\n  a: x\n  b: 2\n"
	assert.Equal(t, want, flush(t, f))
}

func TestYAMLKeyOrderPreserved(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenObjectSection("s")
	f.DumpString("z", "1")
	f.DumpString("a", "2")
	f.DumpString("m", "3")
	f.CloseSection()
	assert.Equal(t, "s:\n  z: \"1\"\n  a: \"2\"\n  m: \"3\"\n", flush(t, f))
}

func TestYAMLSequenceRoundTrip(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenArraySection("items")
	for _, v := range []string{"v1", "v2"} {
		f.OpenObjectSection("")
		f.DumpString("k", v)
		f.CloseSection()
	}
	f.CloseSection()

	var got map[string][]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(flush(t, f)), &got))
	assert.Equal(t, map[string][]map[string]string{
		"items": {{"k": "v1"}, {"k": "v2"}},
	}, got)
}

func TestYAMLScalarTypesRoundTrip(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenObjectSection("s")
	f.DumpUnsigned("u", 7)
	f.DumpInt("i", -2)
	f.DumpFloat("f", 1.5)
	f.DumpBool("ok", true)
	f.DumpString("v", "007") // stays a string, not an octal int
	f.CloseSection()

	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(flush(t, f)), &got))
	s := got["s"]
	assert.Equal(t, 7, s["u"])
	assert.Equal(t, -2, s["i"])
	assert.Equal(t, 1.5, s["f"])
	assert.Equal(t, true, s["ok"])
	assert.Equal(t, "007", s["v"])
}

func TestYAMLDumpStream(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenObjectSection("s")
	w := f.DumpStream("k")
	_, err := io.WriteString(w, "he")
	require.NoError(t, err)
	_, err = io.WriteString(w, "llo")
	require.NoError(t, err)
	f.CloseSection()
	assert.Equal(t, "s:\n  k: hello\n", flush(t, f))
}

func TestYAMLEmptyFlush(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	assert.Empty(t, flush(t, f))
}

func TestYAMLWriteRawDataAndLen(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	n := f.Len()
	f.WriteRawData("# generated\n")
	assert.Equal(t, n+12, f.Len())

	f.OpenObjectSection("s")
	f.DumpInt("i", 1)
	f.CloseSection()
	assert.Equal(t, "# generated\ns:\n  i: 1\n", flush(t, f))
}

func TestYAMLCloseWithoutOpenPanics(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	assert.Panics(t, func() { f.CloseSection() })
}

func TestYAMLReset(t *testing.T) {
	t.Parallel()
	f := structfmt.NewYAMLFormatter()
	f.OpenObjectSection("s")
	f.DumpInt("i", 1)
	f.CloseSection()
	f.Reset()
	assert.Zero(t, f.Len())
	assert.Empty(t, flush(t, f))
}
