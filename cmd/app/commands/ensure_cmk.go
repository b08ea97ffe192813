package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunEnsureCmk creates or retrieves the CMK behind a tenant alias. When the
// alias already exists the existing key id is printed and nothing is created.
// An optional policy file supplies the key policy verbatim; without one the
// default policy is bound to the caller's identity.
func RunEnsureCmk(
	ctx context.Context,
	keyUseCase kmsUsecase.KeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID, aliasBaseName, policyFile, description string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	var policy string
	if policyFile != "" {
		data, err := os.ReadFile(policyFile)
		if err != nil {
			return fmt.Errorf("failed to read policy file: %w", err)
		}
		policy = string(data)
	}

	logger.Info("ensuring CMK",
		slog.String("tenant_id", id.String()),
		slog.String("alias_base_name", aliasBaseName),
	)

	keyID, err := keyUseCase.EnsureCmk(ctx, id, kmsUsecase.EnsureCmkInput{
		AliasBaseName: aliasBaseName,
		Policy:        policy,
		Description:   description,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure CMK: %w", err)
	}

	logger.Info("CMK ready",
		slog.String("tenant_id", id.String()),
		slog.String("key_id", keyID),
	)

	fmt.Fprintf(writer, "%s\n", keyID)
	return nil
}
