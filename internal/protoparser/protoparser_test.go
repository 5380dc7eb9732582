package protoparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportPathsSkipsWellKnownTypes(t *testing.T) {
	source := `syntax = "proto3";
import "google/protobuf/timestamp.proto";
import public "other/thing.proto";
import weak "legacy/old.proto";
`
	paths := importPaths(source)

	require.Equal(t, []string{"other/thing.proto", "legacy/old.proto"}, paths)
}

func TestParseSingleMessage(t *testing.T) {
	source := `syntax = "proto3";
package test;
message User {
  string name = 1;
}
`
	file, err := New().Parse(source)

	require.NoError(t, err)
	require.Equal(t, "test", file.GetPackage())
	require.Len(t, file.GetMessageType(), 1)
	require.Equal(t, "User", file.GetMessageType()[0].GetName())
}

func TestParseSynthesizesStubForUnresolvedImport(t *testing.T) {
	// The referenced import is never supplied; Parse should still succeed
	// by synthesizing an empty stub for it rather than failing to resolve
	// the dependency, mirroring the prototype's own dummy-import approach.
	source := `syntax = "proto3";
package test;
import "other/thing.proto";

message User {
  string name = 1;
}
`
	file, err := New().Parse(source)

	require.NoError(t, err)
	require.Contains(t, file.GetDependency(), "other/thing.proto")
}
