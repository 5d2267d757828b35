package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/autoinsight-io/autoinsight/internal/filesystem"
)

// shortLen is the number of hex digits in the display form.
const shortLen = 12

// SHA256 computes dataset fingerprints.
// It is a zero-size type and safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Fingerprint computes the SHA-256 of the raw content as lowercase hex.
func (c SHA256) Fingerprint(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FingerprintFile fingerprints the file at path through the provider.
func (c SHA256) FingerprintFile(provider filesystem.Provider, path string) (string, error) {
	content, err := provider.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return c.Fingerprint(content), nil
}

// Short returns the display form of a fingerprint. Anything shorter than
// the display length is returned unchanged.
func Short(fingerprint string) string {
	if len(fingerprint) <= shortLen {
		return fingerprint
	}
	return fingerprint[:shortLen]
}
