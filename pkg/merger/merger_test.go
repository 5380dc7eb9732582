package merger

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/stretchr/testify/require"
)

func TestMergePackageGroupSyntaxConflict(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{Syntax: proto.String("proto2")},
		{Syntax: proto.String("proto3")},
	}

	_, _, err := MergePackageGroup("foo", files)

	require.Error(t, err)
	var syntaxErr *SyntaxConflictError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, "foo", syntaxErr.PackageName)
	require.Equal(t, []string{"proto2", "proto3"}, syntaxErr.Syntaxes)
}

func TestMergePackageGroupDuplicateMessage(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{MessageType: []*descriptor.DescriptorProto{{Name: proto.String("Foo")}}},
		{MessageType: []*descriptor.DescriptorProto{{Name: proto.String("Foo")}}},
	}

	_, _, err := MergePackageGroup("foo", files)

	require.Error(t, err)
	var dupErr *DuplicateSymbolError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "message", dupErr.Kind)
	require.Equal(t, "Foo", dupErr.Symbol)
	require.Equal(t, 0, dupErr.FirstFileIndex)
	require.Equal(t, 1, dupErr.SecondFileIndex)
}

func TestMergePackageGroupConcatenatesAndSortsMessages(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{MessageType: []*descriptor.DescriptorProto{{Name: proto.String("Zebra")}}},
		{MessageType: []*descriptor.DescriptorProto{{Name: proto.String("Alpha")}}},
	}

	merged, warnings, err := MergePackageGroup("foo", files)

	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, merged.MessageType, 2)
	require.Equal(t, "Alpha", merged.MessageType[0].GetName())
	require.Equal(t, "Zebra", merged.MessageType[1].GetName())
}

func TestMergePackageGroupImportUnionDedupAndRecomputesIndices(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{
			Dependency:       []string{"b.proto", "a.proto"},
			PublicDependency: []int32{0}, // b.proto is public
		},
		{
			Dependency:     []string{"a.proto", "c.proto"},
			WeakDependency: []int32{1}, // c.proto is weak
		},
	}

	merged, _, err := MergePackageGroup("foo", files)

	require.NoError(t, err)
	require.Equal(t, []string{"a.proto", "b.proto", "c.proto"}, merged.Dependency)
	require.Equal(t, []int32{1}, merged.PublicDependency)
	require.Equal(t, []int32{2}, merged.WeakDependency)
}

func TestMergePackageGroupFileOptionsFirstWinsWithConflictWarning(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{Options: &descriptor.FileOptions{JavaPackage: proto.String("com.first")}},
		{Options: &descriptor.FileOptions{JavaPackage: proto.String("com.second")}},
	}

	merged, warnings, err := MergePackageGroup("foo", files)

	require.NoError(t, err)
	require.Equal(t, "com.first", merged.Options.GetJavaPackage())
	require.Len(t, warnings, 1)
}

func TestMergePackageGroupExtensionsSortedByExtendeeThenNumber(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{
			Extension: []*descriptor.FieldDescriptorProto{
				{Name: proto.String("e2"), Extendee: proto.String(".pkg.Zeta"), Number: proto.Int32(2)},
				{Name: proto.String("e1"), Extendee: proto.String(".pkg.Alpha"), Number: proto.Int32(5)},
			},
		},
		{
			Extension: []*descriptor.FieldDescriptorProto{
				{Name: proto.String("e3"), Extendee: proto.String(".pkg.Alpha"), Number: proto.Int32(1)},
			},
		},
	}

	merged, _, err := MergePackageGroup("foo", files)

	require.NoError(t, err)
	require.Len(t, merged.Extension, 3)
	require.Equal(t, "e3", merged.Extension[0].GetName())
	require.Equal(t, "e1", merged.Extension[1].GetName())
	require.Equal(t, "e2", merged.Extension[2].GetName())
}

func TestMergeByPackageOrdersResultsByPackageName(t *testing.T) {
	files := []*descriptor.FileDescriptorProto{
		{Package: proto.String("zeta")},
		{Package: proto.String("alpha")},
	}

	results, err := MergeByPackage(files)

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "alpha", results[0].PackageName)
	require.Equal(t, "zeta", results[1].PackageName)
}
