package textgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

func (g *generator) writeMessages(file *descriptor.FileDescriptorProto, syntax string) {
	messages := append([]*descriptor.DescriptorProto(nil), file.GetMessageType()...)
	if g.opts.SortMessages {
		sort.Slice(messages, func(i, j int) bool { return messages[i].GetName() < messages[j].GetName() })
	}
	for _, m := range messages {
		g.writeMessage(m, syntax)
		g.writeNewline()
	}
}

func (g *generator) writeMessage(message *descriptor.DescriptorProto, syntax string) {
	if isMapEntry(message) {
		return
	}

	g.writeLine("message " + message.GetName() + " {")
	g.indent()

	g.writeMessageOptions(message)

	for _, e := range message.GetEnumType() {
		g.writeEnum(e)
	}

	groupNames := groupMessageNames(message)
	for _, nested := range message.GetNestedType() {
		if !groupNames[nested.GetName()] {
			g.writeMessage(nested, syntax)
		}
	}

	savedMessage := g.currentMessage
	g.currentMessage = message

	var regularFields []*descriptor.FieldDescriptorProto
	for _, f := range message.GetField() {
		if f.OneofIndex == nil || f.GetProto3Optional() {
			regularFields = append(regularFields, f)
		}
	}
	sort.Slice(regularFields, func(i, j int) bool { return regularFields[i].GetNumber() < regularFields[j].GetNumber() })
	for _, f := range regularFields {
		g.writeField(f, syntax)
	}

	oneofFields := make([][]*descriptor.FieldDescriptorProto, len(message.GetOneofDecl()))
	for _, f := range message.GetField() {
		if f.OneofIndex == nil || f.GetProto3Optional() {
			continue
		}
		idx := int(f.GetOneofIndex())
		if idx < len(oneofFields) {
			oneofFields[idx] = append(oneofFields[idx], f)
		}
	}
	for idx, oneof := range message.GetOneofDecl() {
		if len(oneofFields[idx]) > 0 {
			g.writeOneof(oneof, oneofFields[idx], syntax)
		}
	}

	g.currentMessage = savedMessage

	for _, ext := range message.GetExtension() {
		g.writeField(ext, syntax)
	}

	for _, r := range message.GetExtensionRange() {
		g.writeIndent()
		if r.GetStart()+1 == r.GetEnd() {
			g.out.WriteString(fmt.Sprintf("extensions %d;\n", r.GetStart()))
		} else {
			end := r.GetEnd() - 1
			if end == maxFieldNumber {
				g.out.WriteString(fmt.Sprintf("extensions %d to max;\n", r.GetStart()))
			} else {
				g.out.WriteString(fmt.Sprintf("extensions %d to %d;\n", r.GetStart(), end))
			}
		}
	}

	g.writeMessageReserved(message)

	g.dedent()
	g.writeLine("}")
}

// maxFieldNumber is the highest addressable field number (2^29 - 1); the
// generator collapses extension/reserved ranges ending here to "max".
const maxFieldNumber = 536870911

func isMapEntry(m *descriptor.DescriptorProto) bool {
	return m.GetOptions().GetMapEntry()
}

// groupMessageNames returns the set of nested message names that back a
// TYPE_GROUP field of message, so writeMessage can skip re-emitting them
// as ordinary nested messages.
func groupMessageNames(message *descriptor.DescriptorProto) map[string]bool {
	names := make(map[string]bool)
	for _, f := range message.GetField() {
		if f.GetType() == descriptor.FieldDescriptorProto_TYPE_GROUP {
			names[lastComponent(f.GetTypeName())] = true
		}
	}
	return names
}

type mapFieldInfo struct {
	keyType   string
	valueType string
}

// mapFieldInfoFor recognizes a REPEATED+MESSAGE field whose type points at
// a nested map_entry message with exactly a key and a value field, and
// reports the rendered types for map<K, V> syntax. Returns nil if field
// is not such a field.
func (g *generator) mapFieldInfoFor(field *descriptor.FieldDescriptorProto) *mapFieldInfo {
	if field.GetLabel() != descriptor.FieldDescriptorProto_LABEL_REPEATED {
		return nil
	}
	if field.GetType() != descriptor.FieldDescriptorProto_TYPE_MESSAGE {
		return nil
	}
	typeName := field.GetTypeName()
	if typeName == "" {
		return nil
	}
	entryName := lastComponent(typeName)

	if g.currentMessage == nil {
		return nil
	}
	var entry *descriptor.DescriptorProto
	for _, m := range g.currentMessage.GetNestedType() {
		if m.GetName() == entryName {
			entry = m
			break
		}
	}
	if entry == nil || !isMapEntry(entry) || len(entry.GetField()) != 2 {
		return nil
	}

	var keyField, valueField *descriptor.FieldDescriptorProto
	for _, f := range entry.GetField() {
		switch f.GetName() {
		case "key":
			keyField = f
		case "value":
			valueField = f
		}
	}
	if keyField == nil || valueField == nil {
		return nil
	}

	return &mapFieldInfo{
		keyType:   g.renderTypeRef(keyField),
		valueType: g.renderTypeRef(valueField),
	}
}

// renderTypeRef renders a field's declared type, using type_name for
// message/enum fields and the scalar keyword otherwise.
func (g *generator) renderTypeRef(f *descriptor.FieldDescriptorProto) string {
	switch f.GetType() {
	case descriptor.FieldDescriptorProto_TYPE_MESSAGE, descriptor.FieldDescriptorProto_TYPE_ENUM:
		return formatTypeName(f.GetTypeName())
	default:
		return fieldTypeToString(f.GetType())
	}
}

func (g *generator) writeMessageOptions(message *descriptor.DescriptorProto) {
	o := message.GetOptions()
	if o == nil {
		return
	}
	if o.MessageSetWireFormat != nil && o.GetMessageSetWireFormat() {
		g.writeLine("option message_set_wire_format = true;")
	}
	if o.NoStandardDescriptorAccessor != nil && o.GetNoStandardDescriptorAccessor() {
		g.writeLine("option no_standard_descriptor_accessor = true;")
	}
	if o.Deprecated != nil && o.GetDeprecated() {
		g.writeLine("option deprecated = true;")
	}
}

func (g *generator) writeMessageReserved(message *descriptor.DescriptorProto) {
	if ranges := message.GetReservedRange(); len(ranges) > 0 {
		var parts []string
		for _, r := range ranges {
			if r.GetStart()+1 == r.GetEnd() {
				parts = append(parts, fmt.Sprintf("%d", r.GetStart()))
			} else {
				end := r.GetEnd() - 1
				if end == maxFieldNumber {
					parts = append(parts, fmt.Sprintf("%d to max", r.GetStart()))
				} else {
					parts = append(parts, fmt.Sprintf("%d to %d", r.GetStart(), end))
				}
			}
		}
		g.writeLine("reserved " + strings.Join(parts, ", ") + ";")
	}

	if names := message.GetReservedName(); len(names) > 0 {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = `"` + n + `"`
		}
		g.writeLine("reserved " + strings.Join(quoted, ", ") + ";")
	}
}

func lastComponent(typeName string) string {
	if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}

func formatTypeName(typeName string) string {
	return strings.TrimPrefix(typeName, ".")
}
