// Package partition implements the Package Partitioner: grouping parsed
// descriptors by their declared proto package, in the order the Merger
// needs them.
package partition

import (
	"sort"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// Group is one package's ordered list of source file descriptors.
type Group struct {
	PackageName string
	Files       []*descriptor.FileDescriptorProto
}

// ByPackage groups files by their declared package name, in input order
// within each group, and returns the groups ordered ascending by package
// name. Files without a package declaration land in the group keyed by
// the empty string.
func ByPackage(files []*descriptor.FileDescriptorProto) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, f := range files {
		name := f.GetPackage()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{PackageName: name})
		}
		groups[i].Files = append(groups[i].Files, f)
	}

	sort.Slice(groups, func(a, b int) bool {
		return groups[a].PackageName < groups[b].PackageName
	})

	return groups
}
