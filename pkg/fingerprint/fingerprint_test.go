package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfIsDeterministic(t *testing.T) {
	text := "syntax = \"proto3\";\n\nmessage Foo {\n}\n"

	require.Equal(t, Of(text), Of(text))
}

func TestOfDiffersOnDifferentInput(t *testing.T) {
	require.NotEqual(t, Of("a"), Of("b"))
}

func TestOfIsLowercaseHexSha256(t *testing.T) {
	// Known SHA-256 digest of the empty string.
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Of(""))
}
