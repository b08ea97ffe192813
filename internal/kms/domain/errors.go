package domain

import (
	"github.com/allisson/earkms/internal/errors"
)

// Key-management error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for credential, policy, and provider failures. None of
// them are retried by this core; transient transport failures are handled
// by the AWS SDK retryer underneath.
var (
	// ErrNoCredentialsFound indicates that neither a tenant KMS configuration
	// nor a complete cloud-provider configuration exists for the tenant.
	ErrNoCredentialsFound = errors.Wrap(errors.ErrNotFound, "no credentials found for tenant")

	// ErrCredentialConfigInvalid indicates the authoritative credential source
	// exists but is missing one of the required fields. Resolution fails closed
	// instead of falling back to another source.
	ErrCredentialConfigInvalid = errors.Wrap(errors.ErrInvalidInput, "credential config invalid")

	// ErrUnsupportedPrincipalType indicates the caller identity is neither an
	// IAM user nor an assumed role, so no key policy can reference it.
	ErrUnsupportedPrincipalType = errors.Wrap(
		errors.ErrInvalidInput, "credentials are not associated to a user or role",
	)

	// ErrPolicyBind indicates the policy template does not carry the two
	// principal-bearing statements the binder expects.
	ErrPolicyBind = errors.Wrap(errors.ErrInvalidInput, "policy template missing principal slots")

	// ErrAliasNamePrefixed indicates an alias base name already carries the
	// "alias/" prefix. A pre-prefixed base is a caller error, not silently
	// corrected.
	ErrAliasNamePrefixed = errors.Wrap(errors.ErrInvalidInput, "alias base name already prefixed")

	// ErrProvider indicates the external key-management provider rejected or
	// failed an operation. The underlying provider message is preserved in
	// the error chain.
	ErrProvider = errors.Wrap(errors.ErrUnavailable, "provider operation failed")

	// ErrConfigNotFound indicates no credential configuration record exists
	// for the requested tenant and source.
	ErrConfigNotFound = errors.Wrap(errors.ErrNotFound, "credential config not found")
)
