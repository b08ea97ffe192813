package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunSetCredentialConfig validates and stores a credential configuration
// record for a tenant. An existing record for the same (tenant, source) pair
// is replaced.
func RunSetCredentialConfig(
	ctx context.Context,
	configUseCase kmsUsecase.CredentialConfigUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID, source, accessKeyID, secretAccessKey string,
	regions []string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	src, err := parseSource(source)
	if err != nil {
		return err
	}

	input := kmsUsecase.SetCredentialConfigInput{
		TenantID:        id,
		Source:          src,
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Regions:         regions,
	}

	if err := configUseCase.Set(ctx, input); err != nil {
		return fmt.Errorf("failed to store credential config: %w", err)
	}

	logger.Info("credential config stored",
		slog.String("tenant_id", id.String()),
		slog.String("source", string(src)),
	)

	fmt.Fprintf(writer, "Credential config stored for tenant %s (source %s)\n", id, src)
	return nil
}
