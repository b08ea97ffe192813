package domain

import (
	"fmt"
	"strings"
)

// aliasPrefix is the mandatory prefix for provider alias names.
const aliasPrefix = "alias/"

// CmkHandle identifies a customer master key inside the external KMS.
// The key is owned by the provider; this system only references it.
// Handles are created once per alias and immutable thereafter.
type CmkHandle struct {
	KeyID string
	ARN   string
}

// AliasRecord is a (name, target key id) pair: a stable, human-readable
// pointer to a CMK. At most one CMK is associated with a given alias name
// at a given time; the provider enforces uniqueness within the account.
type AliasRecord struct {
	Name        string
	TargetKeyID string
}

// AliasName derives the provider alias name from a tenant/universe base name.
// The base must not already carry the "alias/" prefix: double prefixing is a
// caller error that is rejected, not silently corrected.
func AliasName(base string) (string, error) {
	if strings.HasPrefix(base, aliasPrefix) {
		return "", fmt.Errorf("%w: %q", ErrAliasNamePrefixed, base)
	}
	return aliasPrefix + base, nil
}

// DataKeySpec composes the provider key-spec enumeration string from a
// symmetric algorithm name and key size in bits, e.g. ("AES", 256) -> "AES_256".
func DataKeySpec(algorithm string, keySizeBits int) string {
	return fmt.Sprintf("%s_%d", algorithm, keySizeBits)
}
