package textgen

import (
	"fmt"
	"sort"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// writeFileOptions renders the recognized file-level options in a fixed
// set, then sorts the rendered lines lexicographically before emitting
// them, matching the original generator's "collect then sort" behavior
// rather than source declaration order (there is no source order once
// files have been merged).
func (g *generator) writeFileOptions(file *descriptor.FileDescriptorProto) {
	o := file.GetOptions()
	if o == nil {
		return
	}

	var opts []string

	if o.JavaPackage != nil {
		opts = append(opts, `option java_package = "`+escapeString(o.GetJavaPackage())+`";`)
	}
	if o.JavaOuterClassname != nil {
		opts = append(opts, `option java_outer_classname = "`+escapeString(o.GetJavaOuterClassname())+`";`)
	}
	if o.JavaMultipleFiles != nil {
		opts = append(opts, fmt.Sprintf("option java_multiple_files = %t;", o.GetJavaMultipleFiles()))
	}
	if o.JavaStringCheckUtf8 != nil {
		opts = append(opts, fmt.Sprintf("option java_string_check_utf8 = %t;", o.GetJavaStringCheckUtf8()))
	}
	if o.GoPackage != nil {
		opts = append(opts, `option go_package = "`+escapeString(o.GetGoPackage())+`";`)
	}
	if o.OptimizeFor != nil {
		opts = append(opts, "option optimize_for = "+optimizeModeToString(o.GetOptimizeFor())+";")
	}
	if o.CcEnableArenas != nil {
		opts = append(opts, fmt.Sprintf("option cc_enable_arenas = %t;", o.GetCcEnableArenas()))
	}
	if o.CcGenericServices != nil {
		opts = append(opts, fmt.Sprintf("option cc_generic_services = %t;", o.GetCcGenericServices()))
	}
	if o.JavaGenericServices != nil {
		opts = append(opts, fmt.Sprintf("option java_generic_services = %t;", o.GetJavaGenericServices()))
	}
	if o.PyGenericServices != nil {
		opts = append(opts, fmt.Sprintf("option py_generic_services = %t;", o.GetPyGenericServices()))
	}
	if o.ObjcClassPrefix != nil {
		opts = append(opts, `option objc_class_prefix = "`+escapeString(o.GetObjcClassPrefix())+`";`)
	}
	if o.CsharpNamespace != nil {
		opts = append(opts, `option csharp_namespace = "`+escapeString(o.GetCsharpNamespace())+`";`)
	}
	if o.SwiftPrefix != nil {
		opts = append(opts, `option swift_prefix = "`+escapeString(o.GetSwiftPrefix())+`";`)
	}
	if o.PhpClassPrefix != nil {
		opts = append(opts, `option php_class_prefix = "`+escapeString(o.GetPhpClassPrefix())+`";`)
	}
	if o.PhpNamespace != nil {
		opts = append(opts, `option php_namespace = "`+escapeString(o.GetPhpNamespace())+`";`)
	}
	if o.PhpMetadataNamespace != nil {
		opts = append(opts, `option php_metadata_namespace = "`+escapeString(o.GetPhpMetadataNamespace())+`";`)
	}
	if o.RubyPackage != nil {
		opts = append(opts, `option ruby_package = "`+escapeString(o.GetRubyPackage())+`";`)
	}

	if len(opts) == 0 {
		return
	}

	sort.Strings(opts)
	for _, opt := range opts {
		g.writeLine(opt)
	}
	g.writeNewline()
}

func optimizeModeToString(m descriptor.FileOptions_OptimizeMode) string {
	switch m {
	case descriptor.FileOptions_CODE_SIZE:
		return "CODE_SIZE"
	case descriptor.FileOptions_LITE_RUNTIME:
		return "LITE_RUNTIME"
	default:
		return "SPEED"
	}
}
