package regulate

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/stretchr/testify/require"
)

// stubParser maps each source string verbatim to a pre-built descriptor,
// so tests can exercise the pipeline without a real proto grammar parser.
type stubParser struct {
	files map[string]*descriptor.FileDescriptorProto
}

func (p stubParser) Parse(source string) (*descriptor.FileDescriptorProto, error) {
	return p.files[source], nil
}

func TestMergeByPackageProducesOrderedFingerprintedResults(t *testing.T) {
	fooFile := &descriptor.FileDescriptorProto{
		Package:     proto.String("foo"),
		MessageType: []*descriptor.DescriptorProto{{Name: proto.String("User")}},
	}
	barFile := &descriptor.FileDescriptorProto{
		Package:     proto.String("bar"),
		MessageType: []*descriptor.DescriptorProto{{Name: proto.String("Item")}},
	}
	p := stubParser{files: map[string]*descriptor.FileDescriptorProto{
		"foo-src": fooFile,
		"bar-src": barFile,
	}}

	results, err := MergeByPackage([]string{"foo-src", "bar-src"}, p)

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "bar", results[0].PackageName)
	require.Equal(t, "foo", results[1].PackageName)
	require.Equal(t, Fingerprint(results[0].Content), results[0].Fingerprint)
	require.Contains(t, results[1].Content, "message User {")
}

func TestMergeByPackageSameContentSameFingerprint(t *testing.T) {
	a := &descriptor.FileDescriptorProto{
		Package: proto.String("p"),
		MessageType: []*descriptor.DescriptorProto{
			{Name: proto.String("B")},
			{Name: proto.String("A")},
		},
	}
	b := &descriptor.FileDescriptorProto{
		Package: proto.String("p"),
		MessageType: []*descriptor.DescriptorProto{
			{Name: proto.String("A")},
			{Name: proto.String("B")},
		},
	}
	pa := stubParser{files: map[string]*descriptor.FileDescriptorProto{"a": a}}
	pb := stubParser{files: map[string]*descriptor.FileDescriptorProto{"b": b}}

	r1, err := MergeByPackage([]string{"a"}, pa)
	require.NoError(t, err)
	r2, err := MergeByPackage([]string{"b"}, pb)
	require.NoError(t, err)

	require.Equal(t, r1[0].Content, r2[0].Content)
	require.Equal(t, r1[0].Fingerprint, r2[0].Fingerprint)
}
