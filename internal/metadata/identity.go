package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceDatasetIdentity is the UUID namespace for deterministic
// dataset identities, derived from the canonical string
// "autoinsight.io/dataset-identity/v1" under the URL namespace.
var NamespaceDatasetIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("autoinsight.io/dataset-identity/v1"))

// NewRunID returns a random identity for one pipeline run.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// DatasetID creates a deterministic UUID v5 from a normalized input
// path. The same file path always maps to the same identity, so runs
// against the same dataset can be grouped after the fact.
//
// Normalization: lowercase, forward slashes, leading "./" removed.
func DatasetID(path string) uuid.UUID {
	return uuid.NewSHA1(NamespaceDatasetIdentity, []byte(normalizePath(path)))
}

func normalizePath(path string) string {
	normalized := strings.ToLower(path)
	normalized = strings.ReplaceAll(normalized, "\\", "/")
	normalized = strings.TrimPrefix(normalized, "./")
	return normalized
}
