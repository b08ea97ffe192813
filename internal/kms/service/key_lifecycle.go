package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"golang.org/x/time/rate"

	"github.com/allisson/earkms/internal/errors"
	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// Clients bundles the typed service clients one tenant operation works with.
// All three are built from the same ResolvedCredentials value.
type Clients struct {
	Key      KeyAPI
	Token    TokenAPI
	Identity IdentityAPI
}

// EnsureKeyInput describes a create-or-retrieve request for a tenant CMK.
type EnsureKeyInput struct {
	// AliasBaseName is the tenant/universe identifier the alias name is
	// derived from. Must not carry the "alias/" prefix.
	AliasBaseName string
	// Policy, when non-empty, is used verbatim as the key policy. When empty
	// the default template is bound to the resolved caller principal.
	Policy string
	// Description is an optional description for the created CMK.
	Description string
}

// KeyLifecycleManager orchestrates the idempotent create-or-retrieve flow
// for a tenant's CMK.
type KeyLifecycleManager interface {
	// EnsureKey returns the id of the CMK behind the alias derived from
	// input.AliasBaseName, creating key and alias when the alias does not
	// exist yet. The find-before-create sequence is strictly sequential;
	// callers needing at-most-one-creation semantics under concurrency must
	// serialize per alias name, the provider's alias uniqueness being the
	// only backstop.
	EnsureKey(ctx context.Context, clients Clients, input EnsureKeyInput) (string, error)

	// KeyARN resolves a CMK id to its ARN by paging through the account's
	// keys. Returns errors.ErrNotFound (wrapped) when the id is unknown.
	KeyARN(ctx context.Context, keyClient KeyAPI, keyID string) (string, error)
}

// keyLifecycleManager implements KeyLifecycleManager.
type keyLifecycleManager struct {
	aliases     AliasRegistry
	identities  IdentityResolver
	keyPageSize int32
	limiter     *rate.Limiter
}

// NewKeyLifecycleManager creates a lifecycle manager. keyPageSize bounds
// ListKeys pages; listRatePerSec/burst throttle the key scans the same way
// the alias registry throttles alias scans.
func NewKeyLifecycleManager(
	aliases AliasRegistry,
	identities IdentityResolver,
	keyPageSize int,
	listRatePerSec float64,
	burst int,
) KeyLifecycleManager {
	return &keyLifecycleManager{
		aliases:     aliases,
		identities:  identities,
		keyPageSize: int32(keyPageSize),
		limiter:     rate.NewLimiter(rate.Limit(listRatePerSec), burst),
	}
}

// EnsureKey runs the linear lifecycle flow: find alias, and on a miss resolve
// the policy, create the CMK, then create the alias.
//
// On the found path no policy work is performed. On the create path, a
// failure after CreateKey but before CreateAlias leaves an orphaned CMK; the
// manager does not roll the key back; the error names the key id so a
// reconciliation pass (see Reconciler) can find it.
func (m *keyLifecycleManager) EnsureKey(
	ctx context.Context, clients Clients, input EnsureKeyInput,
) (string, error) {
	aliasName, err := kmsDomain.AliasName(input.AliasBaseName)
	if err != nil {
		return "", err
	}

	existing, err := m.aliases.Find(ctx, clients.Key, aliasName)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.TargetKeyID, nil
	}

	policy := input.Policy
	if policy == "" {
		policy, err = m.defaultPolicy(ctx, clients)
		if err != nil {
			return "", err
		}
	}

	createInput := &kms.CreateKeyInput{Policy: aws.String(policy)}
	if input.Description != "" {
		createInput.Description = aws.String(input.Description)
	}
	created, err := clients.Key.CreateKey(ctx, createInput)
	if err != nil {
		return "", fmt.Errorf("%w: create key: %v", kmsDomain.ErrProvider, err)
	}
	keyID := aws.ToString(created.KeyMetadata.KeyId)

	if err := m.aliases.Create(ctx, clients.Key, aliasName, keyID); err != nil {
		// The CMK now exists without an alias. Surface the orphan instead of
		// masking it; the reconciler reports keys in this state.
		return "", fmt.Errorf("key %s created but alias was not: %w", keyID, err)
	}

	return keyID, nil
}

// defaultPolicy resolves the caller identity and binds the default template
// to it: statement 0 to the account's root principal, statement 1 to the
// caller's user or role ARN. Identity failures are fatal and not retried.
func (m *keyLifecycleManager) defaultPolicy(ctx context.Context, clients Clients) (string, error) {
	identity, err := m.identities.CurrentIdentity(ctx, clients.Token, clients.Identity)
	if err != nil {
		return "", err
	}

	template, err := DefaultPolicyTemplate()
	if err != nil {
		return "", err
	}

	bound, err := BindPolicy(template, identity.ARN, kmsDomain.AccountRootARN(identity.Account))
	if err != nil {
		return "", err
	}

	return bound.JSON()
}

// KeyARN pages through ListKeys looking for keyID and returns its ARN.
func (m *keyLifecycleManager) KeyARN(
	ctx context.Context, keyClient KeyAPI, keyID string,
) (string, error) {
	input := &kms.ListKeysInput{Limit: aws.Int32(m.keyPageSize)}

	for {
		if err := m.limiter.Wait(ctx); err != nil {
			return "", err
		}

		page, err := keyClient.ListKeys(ctx, input)
		if err != nil {
			return "", fmt.Errorf("%w: list keys: %v", kmsDomain.ErrProvider, err)
		}

		for _, key := range page.Keys {
			if aws.ToString(key.KeyId) == keyID {
				return aws.ToString(key.KeyArn), nil
			}
		}

		if !page.Truncated {
			return "", errors.Wrap(errors.ErrNotFound, fmt.Sprintf("cmk %s", keyID))
		}
		input.Marker = page.NextMarker
	}
}
