package textgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

func (g *generator) writeEnums(file *descriptor.FileDescriptorProto) {
	enums := append([]*descriptor.EnumDescriptorProto(nil), file.GetEnumType()...)
	if g.opts.SortEnums {
		sort.Slice(enums, func(i, j int) bool { return enums[i].GetName() < enums[j].GetName() })
	}
	for _, e := range enums {
		g.writeEnum(e)
		g.writeNewline()
	}
}

func (g *generator) writeEnum(enumType *descriptor.EnumDescriptorProto) {
	g.writeLine("enum " + enumType.GetName() + " {")
	g.indent()

	g.writeEnumOptions(enumType)

	values := append([]*descriptor.EnumValueDescriptorProto(nil), enumType.GetValue()...)
	sort.Slice(values, func(i, j int) bool { return values[i].GetNumber() < values[j].GetNumber() })
	for _, v := range values {
		g.writeEnumValue(v)
	}

	g.writeEnumReserved(enumType)

	g.dedent()
	g.writeLine("}")
}

func (g *generator) writeEnumOptions(enumType *descriptor.EnumDescriptorProto) {
	o := enumType.GetOptions()
	if o == nil {
		return
	}
	if o.AllowAlias != nil && o.GetAllowAlias() {
		g.writeLine("option allow_alias = true;")
	}
	if o.Deprecated != nil && o.GetDeprecated() {
		g.writeLine("option deprecated = true;")
	}
}

func (g *generator) writeEnumValue(value *descriptor.EnumValueDescriptorProto) {
	g.writeIndent()
	g.out.WriteString(fmt.Sprintf("%s = %d", value.GetName(), value.GetNumber()))
	if o := value.GetOptions(); o != nil && o.Deprecated != nil && o.GetDeprecated() {
		g.out.WriteString(" [deprecated = true]")
	}
	g.out.WriteString(";\n")
}

// writeEnumReserved renders reserved ranges as fully inclusive [start,end],
// unlike message reserved ranges which are stored half-open; this mirrors
// how descriptor.proto itself represents the two kinds differently.
func (g *generator) writeEnumReserved(enumType *descriptor.EnumDescriptorProto) {
	if ranges := enumType.GetReservedRange(); len(ranges) > 0 {
		var parts []string
		for _, r := range ranges {
			if r.GetStart() == r.GetEnd() {
				parts = append(parts, fmt.Sprintf("%d", r.GetStart()))
			} else if r.GetEnd() == maxFieldNumber {
				parts = append(parts, fmt.Sprintf("%d to max", r.GetStart()))
			} else {
				parts = append(parts, fmt.Sprintf("%d to %d", r.GetStart(), r.GetEnd()))
			}
		}
		g.writeLine("reserved " + strings.Join(parts, ", ") + ";")
	}

	if names := enumType.GetReservedName(); len(names) > 0 {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = `"` + n + `"`
		}
		g.writeLine("reserved " + strings.Join(quoted, ", ") + ";")
	}
}
