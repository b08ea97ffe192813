package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunGetCredentialConfig prints the stored credential configuration record
// for a tenant and source. The secret access key is never printed.
func RunGetCredentialConfig(
	ctx context.Context,
	configUseCase kmsUsecase.CredentialConfigUseCase,
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

	record, err := configUseCase.Get(ctx, id, src)
	if err != nil {
		return fmt.Errorf("failed to get credential config: %w", err)
	}

	fmt.Fprintf(writer, "Tenant:        %s\n", record.TenantID)
	fmt.Fprintf(writer, "Source:        %s\n", record.Source)
	fmt.Fprintf(writer, "Access key id: %s\n", record.AccessKeyID)
	fmt.Fprintf(writer, "Regions:       %s\n", strings.Join(record.Regions, ", "))
	fmt.Fprintf(writer, "Updated at:    %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}
