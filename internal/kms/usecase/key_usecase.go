package usecase

import (
	"context"

	"github.com/google/uuid"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
	kmsService "github.com/allisson/earkms/internal/kms/service"
)

// keyUseCase implements KeyUseCase by composing the kms services.
type keyUseCase struct {
	resolver  kmsService.CredentialResolver
	factory   kmsService.AWSClientFactory
	lifecycle kmsService.KeyLifecycleManager
	cipher    kmsService.EnvelopeCipher
	reconcile kmsService.Reconciler
}

// NewKeyUseCase creates a KeyUseCase from its service dependencies.
func NewKeyUseCase(
	resolver kmsService.CredentialResolver,
	factory kmsService.AWSClientFactory,
	lifecycle kmsService.KeyLifecycleManager,
	cipher kmsService.EnvelopeCipher,
	reconcile kmsService.Reconciler,
) KeyUseCase {
	return &keyUseCase{
		resolver:  resolver,
		factory:   factory,
		lifecycle: lifecycle,
		cipher:    cipher,
		reconcile: reconcile,
	}
}

// clients resolves the tenant's credentials and builds the full client
// bundle from that single credentials value.
func (k *keyUseCase) clients(
	ctx context.Context, tenantID uuid.UUID,
) (kmsService.Clients, error) {
	creds, err := k.resolver.Resolve(ctx, tenantID)
	if err != nil {
		return kmsService.Clients{}, err
	}

	keyClient, err := k.factory.KeyClient(ctx, creds)
	if err != nil {
		return kmsService.Clients{}, err
	}
	tokenClient, err := k.factory.TokenClient(ctx, creds)
	if err != nil {
		return kmsService.Clients{}, err
	}
	identityClient, err := k.factory.IdentityClient(ctx, creds)
	if err != nil {
		return kmsService.Clients{}, err
	}

	return kmsService.Clients{
		Key:      keyClient,
		Token:    tokenClient,
		Identity: identityClient,
	}, nil
}

// keyClient resolves the tenant's credentials and builds only the key
// service client, for operations that never touch identity services.
func (k *keyUseCase) keyClient(
	ctx context.Context, tenantID uuid.UUID,
) (kmsService.KeyAPI, error) {
	creds, err := k.resolver.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return k.factory.KeyClient(ctx, creds)
}

// EnsureCmk runs the create-or-retrieve flow for the tenant's CMK.
func (k *keyUseCase) EnsureCmk(
	ctx context.Context, tenantID uuid.UUID, input EnsureCmkInput,
) (string, error) {
	clients, err := k.clients(ctx, tenantID)
	if err != nil {
		return "", err
	}

	return k.lifecycle.EnsureKey(ctx, clients, kmsService.EnsureKeyInput{
		AliasBaseName: input.AliasBaseName,
		Policy:        input.Policy,
		Description:   input.Description,
	})
}

// CmkARN resolves a CMK id to its ARN for the tenant.
func (k *keyUseCase) CmkARN(
	ctx context.Context, tenantID uuid.UUID, keyID string,
) (string, error) {
	keyClient, err := k.keyClient(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return k.lifecycle.KeyARN(ctx, keyClient, keyID)
}

// GenerateDataKey wraps a fresh data key under the tenant's CMK.
func (k *keyUseCase) GenerateDataKey(
	ctx context.Context,
	tenantID uuid.UUID,
	keyID, algorithm string,
	keySizeBits int,
) ([]byte, error) {
	keyClient, err := k.keyClient(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return k.cipher.Wrap(ctx, keyClient, keyID, algorithm, keySizeBits)
}

// DecryptDataKey unwraps a data-key ciphertext. The empty case short-circuits
// before credential resolution: with nothing to decrypt there is nothing to
// authenticate for.
func (k *keyUseCase) DecryptDataKey(
	ctx context.Context, tenantID uuid.UUID, ciphertext []byte,
) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}

	keyClient, err := k.keyClient(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return k.cipher.Unwrap(ctx, keyClient, ciphertext)
}

// ReconcileOrphans reports CMKs without an alias in the tenant's account.
func (k *keyUseCase) ReconcileOrphans(
	ctx context.Context, tenantID uuid.UUID,
) ([]kmsDomain.CmkHandle, error) {
	keyClient, err := k.keyClient(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return k.reconcile.OrphanedKeys(ctx, keyClient)
}
