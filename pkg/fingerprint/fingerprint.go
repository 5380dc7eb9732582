// Package fingerprint implements the Fingerprinter: a content-addressed
// SHA-256 digest over canonical proto text, so two merge runs that
// produce identical schema text always produce an identical fingerprint.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Of returns the lowercase hex SHA-256 digest of text. text is expected to
// be the direct output of pkg/textgen.Generate; the fingerprinter never
// reparses or re-normalizes its input.
func Of(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
