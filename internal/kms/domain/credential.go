// Package domain defines the core types for multi-tenant encryption-at-rest
// key management: credential sources, CMK handles, aliases, key policies,
// and caller identities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredentialSource identifies which configuration record a set of AWS
// credentials was materialized from. Exactly one source is authoritative
// per tenant at resolution time.
type CredentialSource string

const (
	// SourceTenantConfig is an explicit per-tenant KMS configuration record.
	// When present it always wins, even if a cloud-provider config also exists.
	SourceTenantConfig CredentialSource = "tenant_config"

	// SourceHostEnvironment is the cloud-provider configuration attached to
	// the hosting account. Used only when no tenant KMS config exists.
	SourceHostEnvironment CredentialSource = "host_environment"
)

// CredentialConfig is a persisted credential configuration record for a
// tenant. A tenant can have at most one record per source. Completeness is
// checked through Complete and Resolve rather than probed ad hoc at each use
// site.
type CredentialConfig struct {
	TenantID        uuid.UUID
	Source          CredentialSource
	AccessKeyID     string
	SecretAccessKey string
	// Regions holds one or more region codes. The first region is the one
	// used when the record is resolved into working credentials.
	Regions   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Complete reports whether the record carries everything needed to build
// working credentials: a non-empty access key id, secret key, and at least
// one non-empty region code.
func (c *CredentialConfig) Complete() bool {
	return c.AccessKeyID != "" &&
		c.SecretAccessKey != "" &&
		len(c.Regions) > 0 &&
		c.Regions[0] != ""
}

// Resolve materializes the record into a ResolvedCredentials value.
// It fails closed with ErrCredentialConfigInvalid when the record is
// incomplete; an authoritative but broken source never falls back.
func (c *CredentialConfig) Resolve() (*ResolvedCredentials, error) {
	if !c.Complete() {
		return nil, ErrCredentialConfigInvalid
	}
	return &ResolvedCredentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		Region:          c.Regions[0],
		Source:          c.Source,
	}, nil
}

// ResolvedCredentials is the outcome of credential resolution: access key,
// secret, and region sourced from exactly one CredentialSource.
//
// It is a plain value passed explicitly into every client construction.
// Never store it in package-level or otherwise shared state; per-tenant
// isolation under concurrency depends on it staying on the call chain.
type ResolvedCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Source          CredentialSource
}
