// Package regulate is proto-regulate's top-level convenience API: given
// raw proto source text and a Parser, it drives the whole pipeline
// (parse -> partition -> merge -> generate -> fingerprint) and returns
// one record per package, mirroring the public surface the original
// prototype exposed from its crate root.
package regulate

import (
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/pkg/errors"

	"github.com/actor-rtc/proto-regulate/pkg/fingerprint"
	"github.com/actor-rtc/proto-regulate/pkg/merger"
	"github.com/actor-rtc/proto-regulate/pkg/parser"
	"github.com/actor-rtc/proto-regulate/pkg/textgen"
)

// Result is one package's normalized output: its canonical text, the
// content fingerprint of that text, and any non-fatal warnings collected
// while merging it.
type Result struct {
	PackageName string
	Content     string
	Fingerprint string
	Warnings    []string
}

// MergeByPackage parses every source with p, groups the results by
// package, merges each group, and renders + fingerprints the merged
// descriptor. Results are ordered ascending by package name.
func MergeByPackage(sources []string, p parser.Parser) ([]Result, error) {
	descriptors, err := parseAll(sources, p)
	if err != nil {
		return nil, err
	}

	merged, err := merger.MergeByPackage(descriptors)
	if err != nil {
		return nil, errors.Wrap(err, "merging descriptors")
	}

	results := make([]Result, 0, len(merged))
	for _, m := range merged {
		text, err := textgen.Generate(m.Descriptor, textgen.DefaultOptions())
		if err != nil {
			return nil, errors.Wrapf(err, "generating canonical text for package %q", m.PackageName)
		}
		results = append(results, Result{
			PackageName: m.PackageName,
			Content:     text,
			Fingerprint: fingerprint.Of(text),
			Warnings:    m.Warnings,
		})
	}
	return results, nil
}

func parseAll(sources []string, p parser.Parser) ([]*descriptor.FileDescriptorProto, error) {
	out := make([]*descriptor.FileDescriptorProto, len(sources))
	for i, src := range sources {
		f, err := p.Parse(src)
		if err != nil {
			return nil, errors.Wrap(&parser.ParseFailureError{FileIndex: i, Err: err}, "parsing input")
		}
		out[i] = f
	}
	return out, nil
}

// Fingerprint hashes already-generated canonical text. It is exposed
// directly so callers holding text from an earlier MergeByPackage call
// (or from pkg/textgen.Generate on an already-merged descriptor) don't
// need to reach into pkg/fingerprint themselves.
func Fingerprint(text string) string {
	return fingerprint.Of(text)
}
