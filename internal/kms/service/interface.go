// Package service implements the encryption-at-rest key-management core:
// credential resolution, AWS client construction, caller-identity discovery,
// key-policy binding, alias lookup and creation, CMK lifecycle orchestration,
// and envelope encryption of data keys.
package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// KeyAPI is the subset of the KMS API this core consumes. *kms.Client
// implements it; tests substitute fakes.
type KeyAPI interface {
	CreateKey(
		ctx context.Context, params *kms.CreateKeyInput, optFns ...func(*kms.Options),
	) (*kms.CreateKeyOutput, error)
	CreateAlias(
		ctx context.Context, params *kms.CreateAliasInput, optFns ...func(*kms.Options),
	) (*kms.CreateAliasOutput, error)
	ListAliases(
		ctx context.Context, params *kms.ListAliasesInput, optFns ...func(*kms.Options),
	) (*kms.ListAliasesOutput, error)
	ListKeys(
		ctx context.Context, params *kms.ListKeysInput, optFns ...func(*kms.Options),
	) (*kms.ListKeysOutput, error)
	GenerateDataKeyWithoutPlaintext(
		ctx context.Context,
		params *kms.GenerateDataKeyWithoutPlaintextInput,
		optFns ...func(*kms.Options),
	) (*kms.GenerateDataKeyWithoutPlaintextOutput, error)
	Decrypt(
		ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options),
	) (*kms.DecryptOutput, error)
}

// TokenAPI is the subset of the STS API this core consumes.
type TokenAPI interface {
	GetCallerIdentity(
		ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// IdentityAPI is the subset of the IAM API this core consumes.
type IdentityAPI interface {
	GetRole(
		ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options),
	) (*iam.GetRoleOutput, error)
}

// CredentialConfigRepository abstracts persistence of per-tenant credential
// configuration records. Implementations exist for PostgreSQL and MySQL.
type CredentialConfigRepository interface {
	// Get returns the record for (tenantID, source), or
	// domain.ErrConfigNotFound when none exists.
	Get(
		ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
	) (*kmsDomain.CredentialConfig, error)

	// Upsert creates or replaces the record for (tenantID, source).
	Upsert(ctx context.Context, config *kmsDomain.CredentialConfig) error

	// Delete removes the record for (tenantID, source). Deleting a missing
	// record returns domain.ErrConfigNotFound.
	Delete(ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource) error
}

// CredentialResolver decides which credential source is authoritative for a
// tenant and materializes it into a credentials value.
type CredentialResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID) (*kmsDomain.ResolvedCredentials, error)
}

// AWSClientFactory builds typed service clients bound to explicitly supplied
// credentials. Credentials are always passed by value into construction;
// nothing here mutates process-wide state, so concurrent tenants cannot
// observe each other's credentials.
type AWSClientFactory interface {
	KeyClient(ctx context.Context, creds *kmsDomain.ResolvedCredentials) (KeyAPI, error)
	TokenClient(ctx context.Context, creds *kmsDomain.ResolvedCredentials) (TokenAPI, error)
	IdentityClient(ctx context.Context, creds *kmsDomain.ResolvedCredentials) (IdentityAPI, error)
}
