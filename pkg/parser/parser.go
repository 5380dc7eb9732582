// Package parser declares the boundary between proto-regulate's core
// (Partitioner, Merger, Generator, Fingerprinter) and whatever turns proto
// source text into a descriptor tree. The core never parses text itself;
// it only ever consumes the FileDescriptorProto that comes out the other
// end of a Parser.
package parser

import (
	"strconv"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// Parser turns a single proto source file's text into a FileDescriptorProto.
// Implementations are free to synthesize stub descriptors for unresolved
// imports; the core does not care how (or whether) imports are resolved,
// only that dependency/public_dependency/weak_dependency line up (see
// pkg/merger).
type Parser interface {
	Parse(source string) (*descriptor.FileDescriptorProto, error)
}

// ParseFailureError reports that a Parser implementation rejected input.
// It names the index of the failing file within the batch the caller
// submitted, so callers can point a user back at the offending source.
type ParseFailureError struct {
	FileIndex int
	Err       error
}

func (e *ParseFailureError) Error() string {
	return "parse failure at file " + strconv.Itoa(e.FileIndex) + ": " + e.Err.Error()
}

func (e *ParseFailureError) Unwrap() error { return e.Err }
