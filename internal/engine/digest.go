package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/gowebpki/jcs"
)

// digestHexLen truncates digests to a prefix that stays readable in
// receipts while keeping collisions implausible within one assessment.
const digestHexLen = 16

// digest fingerprints a value for the reasoning receipt: the value's JSON
// form is canonicalized per RFC 8785 and hashed with SHA-256. Equal values
// always yield equal digests, so receipts from identical inputs match byte
// for byte.
func digest(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest marshal: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("digest canonicalize: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:digestHexLen], nil
}
