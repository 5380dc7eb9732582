// Package textgen implements the Canonical Text Generator: it renders a
// merged FileDescriptorProto back to proto schema text in a fixed,
// deterministic layout so that two semantically identical descriptors
// always produce byte-identical output. The algorithm mirrors Google's
// DebugStringWithOptions shape (fixed section order, sorted siblings,
// synthetic-construct suppression) rather than preserving original
// source formatting, since there is no original source text to preserve
// once files have been merged.
package textgen

import (
	"sort"
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// Version identifies the text generation algorithm. Bump it whenever the
// rendered output shape changes, so fingerprints computed under different
// algorithm versions are never mistaken for each other.
const Version = "1.0.0"

// Options configures rendering. The zero value is not ready to use; call
// DefaultOptions for the canonical configuration.
type Options struct {
	IndentSize   int
	SortMessages bool
	SortEnums    bool
	SortServices bool
}

// DefaultOptions returns the canonical rendering configuration: two-space
// indentation, every sibling kind sorted by name for determinism.
func DefaultOptions() Options {
	return Options{
		IndentSize:   2,
		SortMessages: true,
		SortEnums:    true,
		SortServices: true,
	}
}

// generator holds the mutable state of a single Generate call. It is
// not safe for concurrent use or reuse across files; Generate constructs
// one per call.
type generator struct {
	opts           Options
	out            strings.Builder
	indentLevel    int
	currentMessage *descriptor.DescriptorProto
	currentFile    *descriptor.FileDescriptorProto
}

// Generate renders file to canonical proto schema text under opts.
func Generate(file *descriptor.FileDescriptorProto, opts Options) (string, error) {
	g := &generator{opts: opts, currentFile: file}

	syntax := file.GetSyntax()
	if syntax == "" {
		syntax = "proto2"
	}
	g.writeLine("syntax = \"" + syntax + "\";")
	g.writeNewline()

	if pkg := file.GetPackage(); pkg != "" {
		g.writeLine("package " + pkg + ";")
		g.writeNewline()
	}

	g.writeImports(file)
	g.writeFileOptions(file)
	g.writeMessages(file, syntax)
	g.writeEnums(file)
	g.writeServices(file)
	g.writeExtensions(file, syntax)

	return g.out.String(), nil
}

func escapeString(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func escapeBytes(b []byte) string {
	var out strings.Builder
	for _, c := range b {
		switch c {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if c >= 0x20 && c <= 0x7E {
				out.WriteByte(c)
			} else {
				out.WriteString(octalEscape(c))
			}
		}
	}
	return out.String()
}

func octalEscape(b byte) string {
	const digits = "01234567"
	return string([]byte{
		'\\',
		digits[(b>>6)&07],
		digits[(b>>3)&07],
		digits[b&07],
	})
}

func (g *generator) writeIndent() {
	g.out.WriteString(strings.Repeat(" ", g.indentLevel*g.opts.IndentSize))
}

func (g *generator) writeNewline() {
	g.out.WriteByte('\n')
}

// writeLine writes the current indent, s, and a trailing newline.
func (g *generator) writeLine(s string) {
	g.writeIndent()
	g.out.WriteString(s)
	g.writeNewline()
}

func (g *generator) indent() { g.indentLevel++ }

func (g *generator) dedent() {
	if g.indentLevel > 0 {
		g.indentLevel--
	}
}

type importEntry struct {
	path     string
	isPublic bool
	isWeak   bool
}

func (g *generator) writeImports(file *descriptor.FileDescriptorProto) {
	deps := file.GetDependency()
	if len(deps) == 0 {
		return
	}

	entries := make([]importEntry, len(deps))
	for i, d := range deps {
		entries[i] = importEntry{path: d}
	}
	for _, idx := range file.GetPublicDependency() {
		if int(idx) < len(entries) {
			entries[idx].isPublic = true
		}
	}
	for _, idx := range file.GetWeakDependency() {
		if int(idx) < len(entries) {
			entries[idx].isWeak = true
		}
	}

	rank := func(e importEntry) int {
		switch {
		case e.isPublic:
			return 1
		case e.isWeak:
			return 2
		default:
			return 0
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := rank(entries[i]), rank(entries[j])
		if ri != rj {
			return ri < rj
		}
		return entries[i].path < entries[j].path
	})

	for _, e := range entries {
		switch {
		case e.isPublic:
			g.writeLine(`import public "` + e.path + `";`)
		case e.isWeak:
			g.writeLine(`import weak "` + e.path + `";`)
		default:
			g.writeLine(`import "` + e.path + `";`)
		}
	}
	g.writeNewline()
}
