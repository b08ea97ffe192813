package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/earkms/internal/errors"
	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// credentialResolver implements CredentialResolver on top of the
// credential-config repository.
type credentialResolver struct {
	configRepo CredentialConfigRepository
}

// NewCredentialResolver creates a resolver backed by the given repository.
func NewCredentialResolver(configRepo CredentialConfigRepository) CredentialResolver {
	return &credentialResolver{configRepo: configRepo}
}

// Resolve selects the authoritative credential source for a tenant and
// materializes it. Precedence is fixed:
//
//  1. A tenant KMS configuration record, when one exists, always wins, even
//     if a cloud-provider configuration also exists. Explicit per-service
//     configuration overrides ambient provider configuration to keep behavior
//     deterministic and auditable.
//  2. Otherwise a cloud-provider configuration carrying a non-empty access
//     key id, secret key, and at least one region code.
//  3. Otherwise resolution fails with domain.ErrNoCredentialsFound.
//
// An authoritative record missing a required field fails closed with
// domain.ErrCredentialConfigInvalid; resolution never silently falls through
// to the next source. The returned value is recomputed per call and never
// retained beyond the call chain that consumes it.
func (r *credentialResolver) Resolve(
	ctx context.Context, tenantID uuid.UUID,
) (*kmsDomain.ResolvedCredentials, error) {
	tenantConfig, err := r.configRepo.Get(ctx, tenantID, kmsDomain.SourceTenantConfig)
	switch {
	case err == nil:
		return tenantConfig.Resolve()
	case !errors.Is(err, kmsDomain.ErrConfigNotFound):
		return nil, err
	}

	providerConfig, err := r.configRepo.Get(ctx, tenantID, kmsDomain.SourceHostEnvironment)
	switch {
	case err == nil:
		if !providerConfig.Complete() {
			return nil, kmsDomain.ErrNoCredentialsFound
		}
		return providerConfig.Resolve()
	case errors.Is(err, kmsDomain.ErrConfigNotFound):
		return nil, kmsDomain.ErrNoCredentialsFound
	default:
		return nil, err
	}
}
