package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunGenerateDataKey generates a data key wrapped under the tenant's CMK and
// prints the ciphertext blob base64-encoded. The plaintext key never leaves
// the provider.
func RunGenerateDataKey(
	ctx context.Context,
	keyUseCase kmsUsecase.KeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID, keyID, algorithm string,
	keySizeBits int,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	ciphertext, err := keyUseCase.GenerateDataKey(ctx, id, keyID, algorithm, keySizeBits)
	if err != nil {
		return fmt.Errorf("failed to generate data key: %w", err)
	}

	logger.Info("data key generated",
		slog.String("tenant_id", id.String()),
		slog.String("key_id", keyID),
		slog.String("algorithm", algorithm),
		slog.Int("key_size_bits", keySizeBits),
	)

	fmt.Fprintf(writer, "%s\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
