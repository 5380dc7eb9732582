// Package protoparser is the concrete Parser Adapter: it turns a single
// proto source file's text into a FileDescriptorProto using
// jhump/protoreflect's descriptor parser, entirely in memory.
//
// Unlike the prototype this system was distilled from, there is no
// temp directory involved. Unresolved imports (anything other than the
// google/protobuf/* well-known types) are synthesized as empty
// "syntax = \"proto3\";" stub files so a single file, or a package's
// files referencing each other, can be parsed without requiring their
// whole transitive dependency closure to be supplied.
package protoparser

import (
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/pkg/errors"
)

const inputFileName = "input.proto"

// Adapter implements pkg/parser.Parser.
type Adapter struct{}

// New returns a ready-to-use Adapter.
func New() *Adapter { return &Adapter{} }

// Parse implements pkg/parser.Parser.
func (a *Adapter) Parse(source string) (*descriptor.FileDescriptorProto, error) {
	files := map[string]string{inputFileName: source}
	for _, path := range importPaths(source) {
		if _, ok := files[path]; !ok {
			files[path] = "syntax = \"proto3\";"
		}
	}

	p := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(files),
	}
	parsed, err := p.ParseFiles(inputFileName)
	if err != nil {
		return nil, errors.Wrap(err, "parsing proto source")
	}
	if len(parsed) == 0 {
		return nil, errors.New("parser returned no descriptors")
	}
	return parsed[0].AsFileDescriptorProto(), nil
}

// importPaths extracts the quoted path of every import statement in
// source by simple line scanning, matching the prototype's own
// lightweight approach (a full lexer is unnecessary here: it only needs
// enough to know which imports require a stub).
func importPaths(source string) []string {
	var paths []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "import ") {
			continue
		}
		rest := strings.TrimPrefix(line, "import ")
		rest = strings.TrimPrefix(rest, "public ")
		rest = strings.TrimPrefix(rest, "weak ")
		rest = strings.Trim(rest, " \t;")
		rest = strings.Trim(rest, `"`)
		if rest == "" || strings.HasPrefix(rest, "google/protobuf/") {
			continue
		}
		paths = append(paths, rest)
	}
	return paths
}
