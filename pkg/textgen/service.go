package textgen

import (
	"sort"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

func (g *generator) writeServices(file *descriptor.FileDescriptorProto) {
	services := append([]*descriptor.ServiceDescriptorProto(nil), file.GetService()...)
	if g.opts.SortServices {
		sort.Slice(services, func(i, j int) bool { return services[i].GetName() < services[j].GetName() })
	}
	for _, s := range services {
		g.writeService(s)
		g.writeNewline()
	}
}

func (g *generator) writeService(service *descriptor.ServiceDescriptorProto) {
	g.writeLine("service " + service.GetName() + " {")
	g.indent()

	g.writeServiceOptions(service)

	methods := append([]*descriptor.MethodDescriptorProto(nil), service.GetMethod()...)
	sort.Slice(methods, func(i, j int) bool { return methods[i].GetName() < methods[j].GetName() })
	for _, m := range methods {
		g.writeMethod(m)
	}

	g.dedent()
	g.writeLine("}")
}

func (g *generator) writeServiceOptions(service *descriptor.ServiceDescriptorProto) {
	o := service.GetOptions()
	if o != nil && o.Deprecated != nil && o.GetDeprecated() {
		g.writeLine("option deprecated = true;")
	}
}

func (g *generator) writeMethod(method *descriptor.MethodDescriptorProto) {
	g.writeIndent()
	g.out.WriteString("rpc " + method.GetName())

	g.out.WriteString("(")
	if method.GetClientStreaming() {
		g.out.WriteString("stream ")
	}
	g.out.WriteString(formatTypeName(method.GetInputType()))
	g.out.WriteString(")")

	g.out.WriteString(" returns (")
	if method.GetServerStreaming() {
		g.out.WriteString("stream ")
	}
	g.out.WriteString(formatTypeName(method.GetOutputType()))
	g.out.WriteString(")")

	if o := method.GetOptions(); o != nil && o.Deprecated != nil && o.GetDeprecated() {
		g.out.WriteString(" {\n")
		g.indent()
		g.writeLine("option deprecated = true;")
		g.dedent()
		g.writeIndent()
		g.out.WriteString("}")
	}

	g.out.WriteString(";\n")
}
