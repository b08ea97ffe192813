package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
	kmsService "github.com/allisson/earkms/internal/kms/service"
	appvalidation "github.com/allisson/earkms/internal/validation"

	"github.com/google/uuid"
)

// Validate checks the credential configuration input. Field formats are
// validated here, at the edge, so records stored in the repository are
// well-formed by construction.
func (i *SetCredentialConfigInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.TenantID, validation.Required),
		validation.Field(&i.Source, validation.Required, validation.In(
			kmsDomain.SourceTenantConfig,
			kmsDomain.SourceHostEnvironment,
		)),
		validation.Field(&i.AccessKeyID, validation.Required, appvalidation.AccessKeyID),
		validation.Field(&i.SecretAccessKey, validation.Required, appvalidation.SecretAccessKey{}),
		validation.Field(
			&i.Regions,
			validation.Required,
			validation.Each(validation.Required, appvalidation.RegionCode),
		),
	)
	return appvalidation.WrapValidationError(err)
}

// credentialConfigUseCase implements CredentialConfigUseCase.
type credentialConfigUseCase struct {
	configRepo kmsService.CredentialConfigRepository
}

// NewCredentialConfigUseCase creates a CredentialConfigUseCase backed by the
// given repository.
func NewCredentialConfigUseCase(
	configRepo kmsService.CredentialConfigRepository,
) CredentialConfigUseCase {
	return &credentialConfigUseCase{configRepo: configRepo}
}

// Set validates and upserts a credential configuration record.
func (c *credentialConfigUseCase) Set(ctx context.Context, input SetCredentialConfigInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	return c.configRepo.Upsert(ctx, &kmsDomain.CredentialConfig{
		TenantID:        input.TenantID,
		Source:          input.Source,
		AccessKeyID:     input.AccessKeyID,
		SecretAccessKey: input.SecretAccessKey,
		Regions:         input.Regions,
	})
}

// Get returns the record for (tenantID, source).
func (c *credentialConfigUseCase) Get(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) (*kmsDomain.CredentialConfig, error) {
	return c.configRepo.Get(ctx, tenantID, source)
}

// Delete removes the record for (tenantID, source).
func (c *credentialConfigUseCase) Delete(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) error {
	return c.configRepo.Delete(ctx, tenantID, source)
}
