package textgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// writeField renders field as a top-level, extension, or group-body field,
// applying the normal repeated/required/optional label rules.
func (g *generator) writeField(field *descriptor.FieldDescriptorProto, syntax string) {
	g.writeFieldBody(field, syntax, false)
}

// writeOneofMember renders field as a member of a oneof body. Real
// descriptors set Label = LABEL_OPTIONAL on oneof members exactly like any
// other singular field, but a oneof body never carries an explicit
// optional/required/repeated keyword, so the label switch is skipped
// entirely here rather than consulted and suppressed.
func (g *generator) writeOneofMember(field *descriptor.FieldDescriptorProto, syntax string) {
	g.writeFieldBody(field, syntax, true)
}

func (g *generator) writeFieldBody(field *descriptor.FieldDescriptorProto, syntax string, inOneof bool) {
	if mi := g.mapFieldInfoFor(field); mi != nil {
		g.writeIndent()
		g.out.WriteString(fmt.Sprintf("map<%s, %s> %s = %d", mi.keyType, mi.valueType, field.GetName(), field.GetNumber()))
		g.writeFieldOptions(field)
		g.out.WriteString(";\n")
		return
	}

	g.writeIndent()

	if !inOneof {
		switch field.GetLabel() {
		case descriptor.FieldDescriptorProto_LABEL_REPEATED:
			g.out.WriteString("repeated ")
		case descriptor.FieldDescriptorProto_LABEL_REQUIRED:
			if syntax == "proto2" {
				g.out.WriteString("required ")
			}
		case descriptor.FieldDescriptorProto_LABEL_OPTIONAL:
			if syntax == "proto2" || field.GetProto3Optional() {
				g.out.WriteString("optional ")
			}
		}
	}

	if field.GetType() == descriptor.FieldDescriptorProto_TYPE_GROUP {
		groupName := lastComponent(field.GetTypeName())
		if groupName == "" {
			groupName = field.GetName()
		}
		g.out.WriteString("group " + groupName)
		g.out.WriteString(fmt.Sprintf(" = %d", field.GetNumber()))
		g.writeFieldOptions(field)
		g.out.WriteString(" {\n")

		var groupFields []*descriptor.FieldDescriptorProto
		if g.currentMessage != nil {
			for _, m := range g.currentMessage.GetNestedType() {
				if m.GetName() == groupName {
					groupFields = m.GetField()
					break
				}
			}
		}
		g.indent()
		for _, gf := range groupFields {
			g.writeField(gf, syntax)
		}
		g.dedent()
		g.writeLine("}")
		return
	}

	switch field.GetType() {
	case descriptor.FieldDescriptorProto_TYPE_MESSAGE, descriptor.FieldDescriptorProto_TYPE_ENUM:
		g.out.WriteString(formatTypeName(field.GetTypeName()) + " ")
	default:
		g.out.WriteString(fieldTypeToString(field.GetType()) + " ")
	}

	g.out.WriteString(field.GetName())
	g.out.WriteString(fmt.Sprintf(" = %d", field.GetNumber()))
	g.writeFieldOptions(field)
	g.out.WriteString(";\n")
}

func (g *generator) writeFieldOptions(field *descriptor.FieldDescriptorProto) {
	o := field.GetOptions()
	var opts []string

	if o != nil {
		if o.Packed != nil {
			opts = append(opts, fmt.Sprintf("packed = %t", o.GetPacked()))
		}
		if o.Deprecated != nil && o.GetDeprecated() {
			opts = append(opts, "deprecated = true")
		}
		if o.Lazy != nil && o.GetLazy() {
			opts = append(opts, "lazy = true")
		}
		if o.Weak != nil && o.GetWeak() {
			opts = append(opts, "weak = true")
		}
		if o.Ctype != nil {
			opts = append(opts, "ctype = "+ctypeToString(o.GetCtype()))
		}
		if o.Jstype != nil {
			opts = append(opts, "jstype = "+jstypeToString(o.GetJstype()))
		}
	}

	if field.DefaultValue != nil {
		opts = append(opts, "default = "+g.formatDefaultValue(field))
	}

	if len(opts) == 0 {
		return
	}
	g.out.WriteString(" [" + strings.Join(opts, ", ") + "]")
}

func (g *generator) formatDefaultValue(field *descriptor.FieldDescriptorProto) string {
	val := field.GetDefaultValue()
	switch field.GetType() {
	case descriptor.FieldDescriptorProto_TYPE_STRING:
		return `"` + escapeString(val) + `"`
	case descriptor.FieldDescriptorProto_TYPE_BYTES:
		return `"` + escapeBytes([]byte(val)) + `"`
	case descriptor.FieldDescriptorProto_TYPE_ENUM:
		if num, err := strconv.Atoi(val); err == nil {
			if name, ok := g.enumNumberToName(field.GetTypeName(), int32(num)); ok {
				return name
			}
		}
		return val
	case descriptor.FieldDescriptorProto_TYPE_FLOAT, descriptor.FieldDescriptorProto_TYPE_DOUBLE:
		return normalizeFloatDefault(val)
	default:
		return val
	}
}

func ctypeToString(c descriptor.FieldOptions_CType) string {
	switch c {
	case descriptor.FieldOptions_CORD:
		return "CORD"
	case descriptor.FieldOptions_STRING_PIECE:
		return "STRING_PIECE"
	default:
		return "STRING"
	}
}

func jstypeToString(j descriptor.FieldOptions_JSType) string {
	switch j {
	case descriptor.FieldOptions_JS_STRING:
		return "JS_STRING"
	case descriptor.FieldOptions_JS_NUMBER:
		return "JS_NUMBER"
	default:
		return "JS_NORMAL"
	}
}

func fieldTypeToString(t descriptor.FieldDescriptorProto_Type) string {
	switch t {
	case descriptor.FieldDescriptorProto_TYPE_DOUBLE:
		return "double"
	case descriptor.FieldDescriptorProto_TYPE_FLOAT:
		return "float"
	case descriptor.FieldDescriptorProto_TYPE_INT64:
		return "int64"
	case descriptor.FieldDescriptorProto_TYPE_UINT64:
		return "uint64"
	case descriptor.FieldDescriptorProto_TYPE_INT32:
		return "int32"
	case descriptor.FieldDescriptorProto_TYPE_FIXED64:
		return "fixed64"
	case descriptor.FieldDescriptorProto_TYPE_FIXED32:
		return "fixed32"
	case descriptor.FieldDescriptorProto_TYPE_BOOL:
		return "bool"
	case descriptor.FieldDescriptorProto_TYPE_STRING:
		return "string"
	case descriptor.FieldDescriptorProto_TYPE_GROUP:
		return "group"
	case descriptor.FieldDescriptorProto_TYPE_MESSAGE:
		return "message"
	case descriptor.FieldDescriptorProto_TYPE_BYTES:
		return "bytes"
	case descriptor.FieldDescriptorProto_TYPE_UINT32:
		return "uint32"
	case descriptor.FieldDescriptorProto_TYPE_ENUM:
		return "enum"
	case descriptor.FieldDescriptorProto_TYPE_SFIXED32:
		return "sfixed32"
	case descriptor.FieldDescriptorProto_TYPE_SFIXED64:
		return "sfixed64"
	case descriptor.FieldDescriptorProto_TYPE_SINT32:
		return "sint32"
	case descriptor.FieldDescriptorProto_TYPE_SINT64:
		return "sint64"
	default:
		return "unknown"
	}
}

// enumNumberToName resolves a numeric enum default to its symbolic name
// by walking the file's package components, then nested message path,
// down to fqTypeName, matching protoc's own resolution of unqualified
// numeric enum defaults.
func (g *generator) enumNumberToName(fqTypeName string, number int32) (string, bool) {
	file := g.currentFile
	if file == nil {
		return "", false
	}
	comps := strings.Split(strings.TrimPrefix(fqTypeName, "."), ".")
	pkgLen := 0
	if pkg := file.GetPackage(); pkg != "" {
		pkgLen = len(strings.Split(pkg, "."))
	}
	if pkgLen > len(comps) {
		return "", false
	}

	if pkgLen < len(comps) {
		first := comps[pkgLen]
		for _, en := range file.GetEnumType() {
			if en.GetName() == first {
				if pkgLen == len(comps)-1 {
					return enumValueName(en, number)
				}
				return "", false
			}
		}
	}

	idx := pkgLen
	currentMessages := file.GetMessageType()
	var currentMsg *descriptor.DescriptorProto
	for idx < len(comps) {
		name := comps[idx]
		if idx == len(comps)-1 {
			if currentMsg != nil {
				for _, en := range currentMsg.GetEnumType() {
					if en.GetName() == name {
						return enumValueName(en, number)
					}
				}
			}
			for _, en := range file.GetEnumType() {
				if en.GetName() == name {
					return enumValueName(en, number)
				}
			}
			return "", false
		}

		var found *descriptor.DescriptorProto
		for _, m := range currentMessages {
			if m.GetName() == name {
				found = m
				break
			}
		}
		if found == nil {
			return "", false
		}
		currentMsg = found
		currentMessages = found.GetNestedType()
		idx++
	}
	return "", false
}

func enumValueName(en *descriptor.EnumDescriptorProto, number int32) (string, bool) {
	for _, v := range en.GetValue() {
		if v.GetNumber() == number {
			return v.GetName(), true
		}
	}
	return "", false
}

func normalizeFloatDefault(val string) string {
	switch val {
	case "Infinity", "+Infinity", "+Inf", "Inf":
		return "inf"
	case "-Infinity", "-Inf":
		return "-inf"
	case "NaN", "nan":
		return "nan"
	default:
		return val
	}
}

func (g *generator) writeOneof(oneof *descriptor.OneofDescriptorProto, fields []*descriptor.FieldDescriptorProto, syntax string) {
	g.writeLine("oneof " + oneof.GetName() + " {")
	g.indent()

	sorted := append([]*descriptor.FieldDescriptorProto(nil), fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].GetNumber() < sorted[j].GetNumber() })
	for _, f := range sorted {
		g.writeOneofMember(f, syntax)
	}

	g.dedent()
	g.writeLine("}")
}
