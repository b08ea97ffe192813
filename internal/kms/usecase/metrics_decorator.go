package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
	"github.com/allisson/earkms/internal/metrics"
)

// keyUseCaseWithMetrics decorates KeyUseCase with metrics instrumentation.
type keyUseCaseWithMetrics struct {
	next    KeyUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyUseCaseWithMetrics wraps a KeyUseCase with metrics recording.
func NewKeyUseCaseWithMetrics(useCase KeyUseCase, m metrics.BusinessMetrics) KeyUseCase {
	return &keyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation's status and duration.
func (k *keyUseCaseWithMetrics) record(
	ctx context.Context, operation string, start time.Time, err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "kms", operation, status)
	k.metrics.RecordDuration(ctx, "kms", operation, time.Since(start), status)
}

// EnsureCmk records metrics for CMK create-or-retrieve operations.
func (k *keyUseCaseWithMetrics) EnsureCmk(
	ctx context.Context, tenantID uuid.UUID, input EnsureCmkInput,
) (string, error) {
	start := time.Now()
	keyID, err := k.next.EnsureCmk(ctx, tenantID, input)
	k.record(ctx, "cmk_ensure", start, err)
	return keyID, err
}

// CmkARN records metrics for CMK ARN lookups.
func (k *keyUseCaseWithMetrics) CmkARN(
	ctx context.Context, tenantID uuid.UUID, keyID string,
) (string, error) {
	start := time.Now()
	arn, err := k.next.CmkARN(ctx, tenantID, keyID)
	k.record(ctx, "cmk_arn", start, err)
	return arn, err
}

// GenerateDataKey records metrics for data-key wrap operations.
func (k *keyUseCaseWithMetrics) GenerateDataKey(
	ctx context.Context,
	tenantID uuid.UUID,
	keyID, algorithm string,
	keySizeBits int,
) ([]byte, error) {
	start := time.Now()
	ciphertext, err := k.next.GenerateDataKey(ctx, tenantID, keyID, algorithm, keySizeBits)
	k.record(ctx, "data_key_generate", start, err)
	return ciphertext, err
}

// DecryptDataKey records metrics for data-key unwrap operations.
func (k *keyUseCaseWithMetrics) DecryptDataKey(
	ctx context.Context, tenantID uuid.UUID, ciphertext []byte,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := k.next.DecryptDataKey(ctx, tenantID, ciphertext)
	k.record(ctx, "data_key_decrypt", start, err)
	return plaintext, err
}

// ReconcileOrphans records metrics for orphan reconciliation passes.
func (k *keyUseCaseWithMetrics) ReconcileOrphans(
	ctx context.Context, tenantID uuid.UUID,
) ([]kmsDomain.CmkHandle, error) {
	start := time.Now()
	orphans, err := k.next.ReconcileOrphans(ctx, tenantID)
	k.record(ctx, "orphan_reconcile", start, err)
	return orphans, err
}
