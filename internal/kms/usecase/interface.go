// Package usecase implements business logic orchestration for tenant key
// management: credential-config administration, CMK provisioning, and
// envelope encryption operations, composed from the kms service layer.
package usecase

import (
	"context"

	"github.com/google/uuid"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// EnsureCmkInput describes a create-or-retrieve request for a tenant CMK.
type EnsureCmkInput struct {
	// AliasBaseName is the identifier the alias name is derived from
	// (submitted as "alias/<base>"). Must not already carry the prefix.
	AliasBaseName string
	// Policy is an optional caller-supplied key policy, used verbatim.
	Policy string
	// Description is an optional description for a newly created CMK.
	Description string
}

// KeyUseCase exposes the tenant-facing key-management operations. Every
// operation resolves the tenant's credentials first and threads them
// explicitly through client construction, so concurrent tenants are isolated
// by construction.
type KeyUseCase interface {
	// EnsureCmk returns the id of the CMK behind the tenant's alias,
	// creating key and alias when the alias does not exist yet.
	EnsureCmk(ctx context.Context, tenantID uuid.UUID, input EnsureCmkInput) (string, error)

	// CmkARN resolves a CMK id to its ARN.
	CmkARN(ctx context.Context, tenantID uuid.UUID, keyID string) (string, error)

	// GenerateDataKey wraps a freshly generated symmetric data key under the
	// tenant's CMK and returns only the ciphertext blob.
	GenerateDataKey(
		ctx context.Context,
		tenantID uuid.UUID,
		keyID, algorithm string,
		keySizeBits int,
	) ([]byte, error)

	// DecryptDataKey unwraps a data-key ciphertext into plaintext key bytes.
	// An empty ciphertext returns (nil, nil) without touching the provider.
	DecryptDataKey(ctx context.Context, tenantID uuid.UUID, ciphertext []byte) ([]byte, error)

	// ReconcileOrphans reports CMKs in the tenant's account that no alias
	// points at (keys stranded by a failure between create-key and
	// create-alias). Detection only; nothing is healed automatically.
	ReconcileOrphans(ctx context.Context, tenantID uuid.UUID) ([]kmsDomain.CmkHandle, error)
}

// SetCredentialConfigInput carries a credential configuration record to store.
type SetCredentialConfigInput struct {
	TenantID        uuid.UUID
	Source          kmsDomain.CredentialSource
	AccessKeyID     string
	SecretAccessKey string
	Regions         []string
}

// CredentialConfigUseCase manages the per-tenant credential configuration
// records that credential resolution consults.
type CredentialConfigUseCase interface {
	// Set validates and stores (upserts) a credential configuration record.
	Set(ctx context.Context, input SetCredentialConfigInput) error

	// Get returns the record for (tenantID, source).
	Get(
		ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
	) (*kmsDomain.CredentialConfig, error)

	// Delete removes the record for (tenantID, source).
	Delete(ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource) error
}
