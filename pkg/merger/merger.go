// Package merger implements the Descriptor Merger: given the files that
// share a single proto package, it enforces cross-file consistency
// (syntax agreement, no top-level name collisions) and produces one
// unified FileDescriptorProto with deterministic ordering of every
// repeated child, plus any non-fatal warnings collected along the way.
package merger

import (
	"fmt"
	"sort"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/pkg/errors"

	"github.com/actor-rtc/proto-regulate/pkg/partition"
	"github.com/actor-rtc/proto-regulate/pkg/textgen"
)

// mergeAlgorithmVersion identifies the merge algorithm. Any change to the merge or
// canonical-text output shape must bump the relevant half.
const mergeAlgorithmVersion = "1.0.0"

// Version is "<merge-version>+<generator-version>".
var Version = mergeAlgorithmVersion + "+" + textgen.Version

// SyntaxConflictError reports that a package group mixes syntax versions.
type SyntaxConflictError struct {
	PackageName string
	Syntaxes    []string
}

func (e *SyntaxConflictError) Error() string {
	return fmt.Sprintf("package %q: conflicting syntax versions %v", e.PackageName, e.Syntaxes)
}

// DuplicateSymbolError reports a name collision among top-level messages,
// enums, or services within a single package group.
type DuplicateSymbolError struct {
	PackageName     string
	Kind            string // "message", "enum", or "service"
	Symbol          string
	FirstFileIndex  int
	SecondFileIndex int
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("package %q: duplicate %s %q declared in files %d and %d",
		e.PackageName, e.Kind, e.Symbol, e.FirstFileIndex, e.SecondFileIndex)
}

// Result is one package group's merged descriptor plus the warnings
// collected while merging it.
type Result struct {
	PackageName string
	Descriptor  *descriptor.FileDescriptorProto
	Warnings    []string
}

// MergeByPackage is the Merger entry point (spec §6): it partitions files
// by package (pkg/partition) and merges each group (MergePackageGroup),
// returning one Result per package ordered ascending by package name.
func MergeByPackage(files []*descriptor.FileDescriptorProto) ([]Result, error) {
	groups := partition.ByPackage(files)
	results := make([]Result, 0, len(groups))
	for _, g := range groups {
		d, warnings, err := MergePackageGroup(g.PackageName, g.Files)
		if err != nil {
			return nil, errors.Wrapf(err, "merging package %q", g.PackageName)
		}
		results = append(results, Result{
			PackageName: g.PackageName,
			Descriptor:  d,
			Warnings:    warnings,
		})
	}
	return results, nil
}

const defaultSyntax = "proto2"

func effectiveSyntax(f *descriptor.FileDescriptorProto) string {
	if s := f.GetSyntax(); s != "" {
		return s
	}
	return defaultSyntax
}

// MergePackageGroup merges the files of a single package group (as produced
// by pkg/partition) into one FileDescriptorProto, per spec §4.2. The
// caller's file order decides which file's options form the merged base
// (the first file's, first value wins) and supplies the file indices in
// warnings and errors; it does not affect the order of the merged
// imports, top-level definitions or extensions, which are always sorted
// as documented.
func MergePackageGroup(packageName string, files []*descriptor.FileDescriptorProto) (*descriptor.FileDescriptorProto, []string, error) {
	if len(files) == 0 {
		return nil, nil, errors.Errorf("package %q: empty file group", packageName)
	}

	syntax, err := mergeSyntax(packageName, files)
	if err != nil {
		return nil, nil, err
	}

	dependency, publicDependency, weakDependency := mergeImports(files)

	out := &descriptor.FileDescriptorProto{
		Package:          strPtr(packageName),
		Syntax:           strPtr(syntax),
		Dependency:       dependency,
		PublicDependency: publicDependency,
		WeakDependency:   weakDependency,
		Options:          cloneFileOptions(files[0].GetOptions()),
	}

	warnings := mergeFileOptions(out.Options, files)

	messages, err := mergeMessages(packageName, files)
	if err != nil {
		return nil, nil, err
	}
	enums, err := mergeEnums(packageName, files)
	if err != nil {
		return nil, nil, err
	}
	services, err := mergeServices(packageName, files)
	if err != nil {
		return nil, nil, err
	}

	out.MessageType = messages
	out.EnumType = enums
	out.Service = services
	out.Extension = mergeExtensions(files)

	return out, warnings, nil
}

func mergeSyntax(packageName string, files []*descriptor.FileDescriptorProto) (string, error) {
	seen := make(map[string]bool)
	var order []string
	for _, f := range files {
		s := effectiveSyntax(f)
		if !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}
	if len(order) > 1 {
		sort.Strings(order)
		return "", &SyntaxConflictError{PackageName: packageName, Syntaxes: order}
	}
	return order[0], nil
}

type importFlags struct {
	public bool
	weak   bool
}

func mergeImports(files []*descriptor.FileDescriptorProto) (dependency []string, publicIdx, weakIdx []int32) {
	flags := make(map[string]*importFlags)
	var order []string
	for _, f := range files {
		public := make(map[int32]bool, len(f.GetPublicDependency()))
		for _, i := range f.GetPublicDependency() {
			public[i] = true
		}
		weak := make(map[int32]bool, len(f.GetWeakDependency()))
		for _, i := range f.GetWeakDependency() {
			weak[i] = true
		}
		for i, dep := range f.GetDependency() {
			fl, ok := flags[dep]
			if !ok {
				fl = &importFlags{}
				flags[dep] = fl
				order = append(order, dep)
			}
			if public[int32(i)] {
				fl.public = true
			}
			if weak[int32(i)] {
				fl.weak = true
			}
		}
	}

	sort.Strings(order)
	dependency = order
	for i, dep := range dependency {
		fl := flags[dep]
		if fl.public {
			publicIdx = append(publicIdx, int32(i))
		}
		if fl.weak {
			weakIdx = append(weakIdx, int32(i))
		}
	}
	return dependency, publicIdx, weakIdx
}

func cloneFileOptions(o *descriptor.FileOptions) *descriptor.FileOptions {
	if o == nil {
		return nil
	}
	return proto.Clone(o).(*descriptor.FileOptions)
}

// recognizedStringOptions are the file options whose first-wins conflicts
// the merger is defined (per spec §4.2 step 3) to detect and warn about.
var recognizedStringOptions = []struct {
	name string
	get  func(*descriptor.FileOptions) (string, bool)
}{
	{"java_package", func(o *descriptor.FileOptions) (string, bool) { return o.GetJavaPackage(), o.JavaPackage != nil }},
	{"go_package", func(o *descriptor.FileOptions) (string, bool) { return o.GetGoPackage(), o.GoPackage != nil }},
}

func mergeFileOptions(base *descriptor.FileOptions, files []*descriptor.FileDescriptorProto) []string {
	if base == nil {
		return nil
	}
	var warnings []string
	for i, f := range files[1:] {
		fileIndex := i + 1
		opts := f.GetOptions()
		if opts == nil {
			continue
		}
		for _, opt := range recognizedStringOptions {
			laterVal, laterSet := opt.get(opts)
			if !laterSet {
				continue
			}
			mergedVal, _ := opt.get(base)
			if laterVal != mergedVal {
				warnings = append(warnings, fmt.Sprintf(
					"file %d: option %s = %q conflicts with merged value %q (first value kept)",
					fileIndex, opt.name, laterVal, mergedVal))
			}
		}
	}
	return warnings
}

// firstSeenIndex tracks, per top-level symbol name, the index of the
// file that first declared it, so a later duplicate can report both
// occurrences. Kept independently per kind (message/enum/service): a
// message and a service sharing a name is not flagged, matching
// spec.md's documented gap.
type firstSeenIndex map[string]int

func (idx firstSeenIndex) check(packageName, kind, name string, fileIndex int) error {
	if firstIdx, ok := idx[name]; ok {
		return &DuplicateSymbolError{
			PackageName:     packageName,
			Kind:            kind,
			Symbol:          name,
			FirstFileIndex:  firstIdx,
			SecondFileIndex: fileIndex,
		}
	}
	idx[name] = fileIndex
	return nil
}

func mergeMessages(packageName string, files []*descriptor.FileDescriptorProto) ([]*descriptor.DescriptorProto, error) {
	seen := make(firstSeenIndex)
	var out []*descriptor.DescriptorProto
	for fileIndex, f := range files {
		for _, m := range f.GetMessageType() {
			if err := seen.check(packageName, "message", m.GetName(), fileIndex); err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out, nil
}

func mergeEnums(packageName string, files []*descriptor.FileDescriptorProto) ([]*descriptor.EnumDescriptorProto, error) {
	seen := make(firstSeenIndex)
	var out []*descriptor.EnumDescriptorProto
	for fileIndex, f := range files {
		for _, e := range f.GetEnumType() {
			if err := seen.check(packageName, "enum", e.GetName(), fileIndex); err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out, nil
}

func mergeServices(packageName string, files []*descriptor.FileDescriptorProto) ([]*descriptor.ServiceDescriptorProto, error) {
	seen := make(firstSeenIndex)
	var out []*descriptor.ServiceDescriptorProto
	for fileIndex, f := range files {
		for _, s := range f.GetService() {
			if err := seen.check(packageName, "service", s.GetName(), fileIndex); err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out, nil
}

func mergeExtensions(files []*descriptor.FileDescriptorProto) []*descriptor.FieldDescriptorProto {
	var out []*descriptor.FieldDescriptorProto
	for _, f := range files {
		out = append(out, f.GetExtension()...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := out[i].GetExtendee(), out[j].GetExtendee()
		if ei != ej {
			return ei < ej
		}
		return out[i].GetNumber() < out[j].GetNumber()
	})
	return out
}

func strPtr(s string) *string { return &s }
