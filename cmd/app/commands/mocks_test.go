package commands

import (
	"context"

	"github.com/google/uuid"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// fakeKeyUseCase returns fixed results and records the inputs it saw.
type fakeKeyUseCase struct {
	keyID      string
	arn        string
	ciphertext []byte
	plaintext  []byte
	orphans    []kmsDomain.CmkHandle
	err        error

	lastTenantID    uuid.UUID
	lastEnsureInput kmsUsecase.EnsureCmkInput
	lastCiphertext  []byte
}

func (f *fakeKeyUseCase) EnsureCmk(
	_ context.Context, tenantID uuid.UUID, input kmsUsecase.EnsureCmkInput,
) (string, error) {
	f.lastTenantID = tenantID
	f.lastEnsureInput = input
	return f.keyID, f.err
}

func (f *fakeKeyUseCase) CmkARN(
	_ context.Context, tenantID uuid.UUID, _ string,
) (string, error) {
	f.lastTenantID = tenantID
	return f.arn, f.err
}

func (f *fakeKeyUseCase) GenerateDataKey(
	_ context.Context, tenantID uuid.UUID, _, _ string, _ int,
) ([]byte, error) {
	f.lastTenantID = tenantID
	return f.ciphertext, f.err
}

func (f *fakeKeyUseCase) DecryptDataKey(
	_ context.Context, tenantID uuid.UUID, ciphertext []byte,
) ([]byte, error) {
	f.lastTenantID = tenantID
	f.lastCiphertext = ciphertext
	return f.plaintext, f.err
}

func (f *fakeKeyUseCase) ReconcileOrphans(
	_ context.Context, tenantID uuid.UUID,
) ([]kmsDomain.CmkHandle, error) {
	f.lastTenantID = tenantID
	return f.orphans, f.err
}

// fakeConfigUseCase records the last stored input.
type fakeConfigUseCase struct {
	record    *kmsDomain.CredentialConfig
	err       error
	lastInput kmsUsecase.SetCredentialConfigInput
	deleted   bool
}

func (f *fakeConfigUseCase) Set(
	_ context.Context, input kmsUsecase.SetCredentialConfigInput,
) error {
	f.lastInput = input
	return f.err
}

func (f *fakeConfigUseCase) Get(
	_ context.Context, _ uuid.UUID, _ kmsDomain.CredentialSource,
) (*kmsDomain.CredentialConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeConfigUseCase) Delete(
	_ context.Context, _ uuid.UUID, _ kmsDomain.CredentialSource,
) error {
	f.deleted = true
	return f.err
}
