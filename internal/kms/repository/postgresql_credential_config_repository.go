// Package repository implements persistence for per-tenant credential
// configuration records.
//
// A tenant holds at most one record per credential source (tenant KMS config
// or host cloud-provider config); the (tenant_id, source) pair is the primary
// key. Region lists are stored as a comma-separated string and split back on
// read. Both implementations support transaction context via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/earkms/internal/database"
	apperrors "github.com/allisson/earkms/internal/errors"
	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// PostgreSQLCredentialConfigRepository implements credential-config
// persistence for PostgreSQL databases.
type PostgreSQLCredentialConfigRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialConfigRepository creates a new PostgreSQL-backed
// repository.
func NewPostgreSQLCredentialConfigRepository(db *sql.DB) *PostgreSQLCredentialConfigRepository {
	return &PostgreSQLCredentialConfigRepository{db: db}
}

// Get returns the record for (tenantID, source), or domain.ErrConfigNotFound
// when no record exists.
func (p *PostgreSQLCredentialConfigRepository) Get(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) (*kmsDomain.CredentialConfig, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT tenant_id, source, access_key_id, secret_access_key, regions, created_at, updated_at
			  FROM credential_configs
			  WHERE tenant_id = $1 AND source = $2`

	var (
		config  kmsDomain.CredentialConfig
		regions string
	)
	err := querier.QueryRowContext(ctx, query, tenantID, string(source)).Scan(
		&config.TenantID,
		&config.Source,
		&config.AccessKeyID,
		&config.SecretAccessKey,
		&regions,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, kmsDomain.ErrConfigNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential config")
	}

	config.Regions = splitRegions(regions)
	return &config, nil
}

// Upsert creates or replaces the record for (tenantID, source).
func (p *PostgreSQLCredentialConfigRepository) Upsert(
	ctx context.Context, config *kmsDomain.CredentialConfig,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credential_configs
			  (tenant_id, source, access_key_id, secret_access_key, regions, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (tenant_id, source) DO UPDATE SET
			  	  access_key_id = EXCLUDED.access_key_id,
				  secret_access_key = EXCLUDED.secret_access_key,
				  regions = EXCLUDED.regions,
				  updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	createdAt := config.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		config.TenantID,
		string(config.Source),
		config.AccessKeyID,
		config.SecretAccessKey,
		joinRegions(config.Regions),
		createdAt,
		now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert credential config")
	}
	return nil
}

// Delete removes the record for (tenantID, source). Deleting a missing record
// returns domain.ErrConfigNotFound.
func (p *PostgreSQLCredentialConfigRepository) Delete(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM credential_configs WHERE tenant_id = $1 AND source = $2`

	result, err := querier.ExecContext(ctx, query, tenantID, string(source))
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential config")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return kmsDomain.ErrConfigNotFound
	}
	return nil
}

// joinRegions renders a region list into its stored form.
func joinRegions(regions []string) string {
	return strings.Join(regions, ",")
}

// splitRegions parses the stored form back into a region list.
func splitRegions(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
