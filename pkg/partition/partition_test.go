package partition

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/stretchr/testify/require"
)

func fileNamed(name, pkg string) *descriptor.FileDescriptorProto {
	return &descriptor.FileDescriptorProto{
		Name:    proto.String(name),
		Package: proto.String(pkg),
	}
}

func TestByPackageGroupsAndSortsAscending(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		fileNamed("b1.proto", "foo.bar"),
		fileNamed("a1.proto", "baz"),
		fileNamed("b2.proto", "foo.bar"),
	}

	groups := ByPackage(files)

	require.Len(t, groups, 2)
	require.Equal(t, "baz", groups[0].PackageName)
	require.Equal(t, "foo.bar", groups[1].PackageName)
	require.Len(t, groups[1].Files, 2)
	require.Equal(t, "b1.proto", groups[1].Files[0].GetName())
	require.Equal(t, "b2.proto", groups[1].Files[1].GetName())
}

func TestByPackageEmptyPackageGroup(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		fileNamed("x.proto", ""),
	}

	groups := ByPackage(files)

	require.Len(t, groups, 1)
	require.Equal(t, "", groups[0].PackageName)
}
