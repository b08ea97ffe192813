package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/earkms/internal/database"
	apperrors "github.com/allisson/earkms/internal/errors"
	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// MySQLCredentialConfigRepository implements credential-config persistence
// for MySQL databases. Tenant ids are stored as CHAR(36) in canonical UUID
// string form.
type MySQLCredentialConfigRepository struct {
	db *sql.DB
}

// NewMySQLCredentialConfigRepository creates a new MySQL-backed repository.
func NewMySQLCredentialConfigRepository(db *sql.DB) *MySQLCredentialConfigRepository {
	return &MySQLCredentialConfigRepository{db: db}
}

// Get returns the record for (tenantID, source), or domain.ErrConfigNotFound
// when no record exists.
func (m *MySQLCredentialConfigRepository) Get(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) (*kmsDomain.CredentialConfig, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT tenant_id, source, access_key_id, secret_access_key, regions, created_at, updated_at
			  FROM credential_configs
			  WHERE tenant_id = ? AND source = ?`

	var (
		config  kmsDomain.CredentialConfig
		regions string
	)
	err := querier.QueryRowContext(ctx, query, tenantID.String(), string(source)).Scan(
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
func (m *MySQLCredentialConfigRepository) Upsert(
	ctx context.Context, config *kmsDomain.CredentialConfig,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO credential_configs
			  (tenant_id, source, access_key_id, secret_access_key, regions, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  	  access_key_id = VALUES(access_key_id),
				  secret_access_key = VALUES(secret_access_key),
				  regions = VALUES(regions),
				  updated_at = VALUES(updated_at)`

	now := time.Now().UTC()
	createdAt := config.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		config.TenantID.String(),
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
func (m *MySQLCredentialConfigRepository) Delete(
	ctx context.Context, tenantID uuid.UUID, source kmsDomain.CredentialSource,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM credential_configs WHERE tenant_id = ? AND source = ?`

	result, err := querier.ExecContext(ctx, query, tenantID.String(), string(source))
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
