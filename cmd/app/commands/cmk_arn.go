package commands

import (
	"context"
	"fmt"
	"io"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunCmkARN resolves a CMK id to its ARN and prints it.
func RunCmkARN(
	ctx context.Context,
	keyUseCase kmsUsecase.KeyUseCase,
	writer io.Writer,
	tenantID, keyID string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	arn, err := keyUseCase.CmkARN(ctx, id, keyID)
	if err != nil {
		return fmt.Errorf("failed to resolve CMK ARN: %w", err)
	}

	fmt.Fprintf(writer, "%s\n", arn)
	return nil
}
