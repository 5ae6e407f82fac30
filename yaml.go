package structfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter accumulates the section tree as a yaml.Node document, which
// preserves key order, and encodes it when flushed. Object sections become
// mappings, array sections become sequences. Namespaces and attrs are
// ignored. YAML mapping keys cannot be anonymous, so an empty name in an
// object context uses the placeholder key "key". Construct with
// [NewYAMLFormatter].
type YAMLFormatter struct {
	root  *yaml.Node
	stack []*yaml.Node

	// raw holds WriteRawData bytes, emitted verbatim before the document.
	raw  bytes.Buffer
	size int

	pending     bytes.Buffer
	pendingName string
	pendingOpen bool
}

// NewYAMLFormatter returns a YAML renderer.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

var _ Formatter = (*YAMLFormatter)(nil)

func (f *YAMLFormatter) top() *yaml.Node {
	if len(f.stack) == 0 {
		return f.root
	}
	return f.stack[len(f.stack)-1]
}

// add places n under the current container, keyed by name when the container
// is a mapping.
func (f *YAMLFormatter) add(name string, n *yaml.Node) {
	parent := f.top()
	if parent.Kind == yaml.MappingNode {
		if name == "" {
			name = "key"
		}
		parent.Content = append(parent.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})
	}
	parent.Content = append(parent.Content, n)
	f.size += len(name)
}

func (f *YAMLFormatter) openSection(name string, isArray bool) {
	f.finishPendingString()
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if isArray {
		n = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	f.add(name, n)
	f.stack = append(f.stack, n)
}

func (f *YAMLFormatter) dumpScalar(name, tag, value string) {
	f.finishPendingString()
	f.add(name, &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
	f.size += len(value)
}

func (f *YAMLFormatter) finishPendingString() {
	if !f.pendingOpen {
		return
	}
	f.pendingOpen = false
	value := f.pending.String()
	f.pending.Reset()
	f.add(f.pendingName, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
	f.size += len(value)
}

func (f *YAMLFormatter) OpenArraySection(name string)                   { f.openSection(name, true) }
func (f *YAMLFormatter) OpenArraySectionInNS(name, _ string)            { f.openSection(name, true) }
func (f *YAMLFormatter) OpenArraySectionWithAttrs(name string, _ Attrs) { f.openSection(name, true) }

func (f *YAMLFormatter) OpenObjectSection(name string)                   { f.openSection(name, false) }
func (f *YAMLFormatter) OpenObjectSectionInNS(name, _ string)            { f.openSection(name, false) }
func (f *YAMLFormatter) OpenObjectSectionWithAttrs(name string, _ Attrs) { f.openSection(name, false) }

func (f *YAMLFormatter) CloseSection() {
	if len(f.stack) == 0 {
		panic("structfmt: CloseSection with no open section")
	}
	f.finishPendingString()
	f.stack = f.stack[:len(f.stack)-1]
}

func (f *YAMLFormatter) DumpUnsigned(name string, u uint64) {
	f.dumpScalar(name, "!!int", strconv.FormatUint(u, 10))
}

func (f *YAMLFormatter) DumpInt(name string, i int64) {
	f.dumpScalar(name, "!!int", strconv.FormatInt(i, 10))
}

func (f *YAMLFormatter) DumpFloat(name string, d float64) {
	f.dumpScalar(name, "!!float", strconv.FormatFloat(d, 'g', -1, 64))
}

func (f *YAMLFormatter) DumpString(name, s string) {
	f.dumpScalar(name, "!!str", s)
}

func (f *YAMLFormatter) DumpStringWithAttrs(name, s string, _ Attrs) {
	f.DumpString(name, s)
}

func (f *YAMLFormatter) DumpBool(name string, b bool) {
	f.DumpFormatUnquoted(name, "%t", b)
}

func (f *YAMLFormatter) DumpStream(name string) io.Writer {
	f.finishPendingString()
	f.pendingName = name
	f.pendingOpen = true
	return &f.pending
}

func (f *YAMLFormatter) DumpFormat(name, format string, a ...any) {
	f.DumpString(name, fmt.Sprintf(format, a...))
}

func (f *YAMLFormatter) DumpFormatNS(name, _, format string, a ...any) {
	f.DumpFormat(name, format, a...)
}

// DumpFormatUnquoted dumps the value with no tag, so the encoder resolves it
// as a YAML literal: booleans and numbers expressed as text render unquoted.
func (f *YAMLFormatter) DumpFormatUnquoted(name, format string, a ...any) {
	f.dumpScalar(name, "", fmt.Sprintf(format, a...))
}

func (f *YAMLFormatter) WriteRawData(data string) {
	f.finishPendingString()
	f.raw.WriteString(data)
}

// Len reports accumulated content size: raw bytes plus the bytes of every
// name and value added to the document. Encoding adds layout on top of this,
// so Len is a content measure, not a render measure.
func (f *YAMLFormatter) Len() int { return f.raw.Len() + f.size }

func (f *YAMLFormatter) Flush(w io.Writer) error {
	f.finishPendingString()
	if f.raw.Len() > 0 {
		if _, err := w.Write(f.raw.Bytes()); err != nil {
			return err
		}
	}
	if len(f.root.Content) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f.root); err != nil {
		return err
	}
	return enc.Close()
}

func (f *YAMLFormatter) Reset() {
	f.root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	f.stack = nil
	f.raw.Reset()
	f.size = 0
	f.pending.Reset()
	f.pendingName = ""
	f.pendingOpen = false
}
