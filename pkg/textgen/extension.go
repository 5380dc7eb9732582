package textgen

import (
	"sort"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// writeExtensions renders file-level (proto2) extend blocks, grouped by
// extendee and sorted both by extendee name and, within a group, by
// field number.
func (g *generator) writeExtensions(file *descriptor.FileDescriptorProto, syntax string) {
	groups := make(map[string][]*descriptor.FieldDescriptorProto)
	var extendees []string
	for _, ext := range file.GetExtension() {
		key := ext.GetExtendee()
		if _, ok := groups[key]; !ok {
			extendees = append(extendees, key)
		}
		groups[key] = append(groups[key], ext)
	}
	sort.Strings(extendees)

	for _, extendee := range extendees {
		fields := groups[extendee]
		g.writeLine("extend " + formatTypeName(extendee) + " {")
		g.indent()
		sort.Slice(fields, func(i, j int) bool { return fields[i].GetNumber() < fields[j].GetNumber() })
		for _, f := range fields {
			g.writeField(f, syntax)
		}
		g.dedent()
		g.writeLine("}")
	}
}
