package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// fakeConfigRepo serves records from an in-memory map keyed by source.
type fakeConfigRepo struct {
	records map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig
	getErr  error
}

func (f *fakeConfigRepo) Get(
	_ context.Context, _ uuid.UUID, source kmsDomain.CredentialSource,
) (*kmsDomain.CredentialConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[source]
	if !ok {
		return nil, kmsDomain.ErrConfigNotFound
	}
	return record, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, config *kmsDomain.CredentialConfig) error {
	if f.records == nil {
		f.records = make(map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig)
	}
	f.records[config.Source] = config
	return nil
}

func (f *fakeConfigRepo) Delete(
	_ context.Context, _ uuid.UUID, source kmsDomain.CredentialSource,
) error {
	if _, ok := f.records[source]; !ok {
		return kmsDomain.ErrConfigNotFound
	}
	delete(f.records, source)
	return nil
}

func configRecord(source kmsDomain.CredentialSource, accessKeyID string) *kmsDomain.CredentialConfig {
	return &kmsDomain.CredentialConfig{
		TenantID:        uuid.New(),
		Source:          source,
		AccessKeyID:     accessKeyID,
		SecretAccessKey: "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY",
		Regions:         []string{"us-west-2"},
	}
}

func TestCredentialResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("tenant config wins over host environment", func(t *testing.T) {
		repo := &fakeConfigRepo{
			records: map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig{
				kmsDomain.SourceTenantConfig:    configRecord(kmsDomain.SourceTenantConfig, "AKIATENANT0000000001"),
				kmsDomain.SourceHostEnvironment: configRecord(kmsDomain.SourceHostEnvironment, "AKIAHOSTENV000000001"),
			},
		}

		creds, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "AKIATENANT0000000001", creds.AccessKeyID)
		assert.Equal(t, kmsDomain.SourceTenantConfig, creds.Source)
	})

	t.Run("falls back to host environment when no tenant config", func(t *testing.T) {
		repo := &fakeConfigRepo{
			records: map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig{
				kmsDomain.SourceHostEnvironment: configRecord(kmsDomain.SourceHostEnvironment, "AKIAHOSTENV000000001"),
			},
		}

		creds, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "AKIAHOSTENV000000001", creds.AccessKeyID)
		assert.Equal(t, kmsDomain.SourceHostEnvironment, creds.Source)
	})

	t.Run("no records at all", func(t *testing.T) {
		repo := &fakeConfigRepo{}

		_, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		assert.ErrorIs(t, err, kmsDomain.ErrNoCredentialsFound)
	})

	t.Run("incomplete tenant config fails closed without fallback", func(t *testing.T) {
		broken := configRecord(kmsDomain.SourceTenantConfig, "AKIATENANT0000000001")
		broken.SecretAccessKey = ""
		repo := &fakeConfigRepo{
			records: map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig{
				kmsDomain.SourceTenantConfig:    broken,
				kmsDomain.SourceHostEnvironment: configRecord(kmsDomain.SourceHostEnvironment, "AKIAHOSTENV000000001"),
			},
		}

		_, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		assert.ErrorIs(t, err, kmsDomain.ErrCredentialConfigInvalid)
	})

	t.Run("incomplete host environment reports no credentials", func(t *testing.T) {
		broken := configRecord(kmsDomain.SourceHostEnvironment, "")
		repo := &fakeConfigRepo{
			records: map[kmsDomain.CredentialSource]*kmsDomain.CredentialConfig{
				kmsDomain.SourceHostEnvironment: broken,
			},
		}

		_, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		assert.ErrorIs(t, err, kmsDomain.ErrNoCredentialsFound)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repoErr := errors.New("connection refused")
		repo := &fakeConfigRepo{getErr: repoErr}

		_, err := NewCredentialResolver(repo).Resolve(ctx, tenantID)
		assert.ErrorIs(t, err, repoErr)
	})
}
