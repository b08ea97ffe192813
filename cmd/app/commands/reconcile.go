package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunReconcile scans the tenant's account for CMKs no alias points at and
// prints each one found. These keys were stranded by a failure between key
// creation and alias creation; nothing is deleted or re-aliased here.
func RunReconcile(
	ctx context.Context,
	keyUseCase kmsUsecase.KeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	logger.Info("scanning for CMKs without an alias", slog.String("tenant_id", id.String()))

	orphans, err := keyUseCase.ReconcileOrphans(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to scan for orphaned CMKs: %w", err)
	}

	if len(orphans) == 0 {
		fmt.Fprintln(writer, "No orphaned CMKs found")
		return nil
	}

	fmt.Fprintf(writer, "Found %d orphaned CMK(s):\n", len(orphans))
	for _, orphan := range orphans {
		fmt.Fprintf(writer, "  %s (%s)\n", orphan.KeyID, orphan.ARN)
	}
	return nil
}
