package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunDeleteCredentialConfig removes the credential configuration record for a
// tenant and source. Deleting the tenant_config record makes resolution fall
// back to the host_environment record.
func RunDeleteCredentialConfig(
	ctx context.Context,
	configUseCase kmsUsecase.CredentialConfigUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID, source string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	src, err := parseSource(source)
	if err != nil {
		return err
	}

	if err := configUseCase.Delete(ctx, id, src); err != nil {
		return fmt.Errorf("failed to delete credential config: %w", err)
	}

	logger.Info("credential config deleted",
		slog.String("tenant_id", id.String()),
		slog.String("source", string(src)),
	)

	fmt.Fprintf(writer, "Credential config deleted for tenant %s (source %s)\n", id, src)
	return nil
}
