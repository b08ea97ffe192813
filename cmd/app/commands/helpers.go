// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"

	"github.com/allisson/earkms/internal/app"
	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// parseTenantID converts a tenant id string to uuid.UUID.
// Returns an error if the string is not a valid UUID.
func parseTenantID(tenantID string) (uuid.UUID, error) {
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid tenant id: %s", tenantID)
	}
	return id, nil
}

// parseSource converts a credential source string to kmsDomain.CredentialSource.
// Returns an error if the source string is invalid.
func parseSource(source string) (kmsDomain.CredentialSource, error) {
	switch source {
	case "tenant_config":
		return kmsDomain.SourceTenantConfig, nil
	case "host_environment":
		return kmsDomain.SourceHostEnvironment, nil
	default:
		return "", fmt.Errorf(
			"invalid credential source: %s (valid options: tenant_config, host_environment)",
			source,
		)
	}
}
