package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"golang.org/x/time/rate"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// AliasRegistry looks up and creates human-readable alias pointers to CMKs.
type AliasRegistry interface {
	// Find scans the account's aliases for an exact name match. A nil record
	// with a nil error means the alias does not exist; errors are reserved
	// for provider/protocol faults.
	Find(ctx context.Context, keyClient KeyAPI, aliasName string) (*kmsDomain.AliasRecord, error)

	// Create associates aliasName with the given key id. The caller is
	// expected to have verified non-existence; a name collision surfaces the
	// provider error rather than silently succeeding.
	Create(ctx context.Context, keyClient KeyAPI, aliasName, keyID string) error
}

// aliasRegistry implements AliasRegistry with paginated ListAliases scans.
type aliasRegistry struct {
	pageSize int32
	// limiter throttles page fetches so large accounts don't trip the
	// provider's API rate limits.
	limiter *rate.Limiter
}

// NewAliasRegistry creates a registry that scans pageSize entries per list
// call and throttles list calls to listRatePerSec with the given burst.
func NewAliasRegistry(pageSize int, listRatePerSec float64, burst int) AliasRegistry {
	return &aliasRegistry{
		pageSize: int32(pageSize),
		limiter:  rate.NewLimiter(rate.Limit(listRatePerSec), burst),
	}
}

// Find pages through the account's aliases until it hits an exact name match
// or the provider signals no more pages. It tolerates an empty account (zero
// entries) and arbitrarily large alias sets: pagination follows the
// provider-issued continuation marker without any page-count bound.
func (r *aliasRegistry) Find(
	ctx context.Context, keyClient KeyAPI, aliasName string,
) (*kmsDomain.AliasRecord, error) {
	input := &kms.ListAliasesInput{Limit: aws.Int32(r.pageSize)}

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := keyClient.ListAliases(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: list aliases: %v", kmsDomain.ErrProvider, err)
		}

		for _, alias := range page.Aliases {
			if aws.ToString(alias.AliasName) == aliasName {
				return &kmsDomain.AliasRecord{
					Name:        aliasName,
					TargetKeyID: aws.ToString(alias.TargetKeyId),
				}, nil
			}
		}

		if !page.Truncated {
			return nil, nil
		}
		input.Marker = page.NextMarker
	}
}

// Create performs a single CreateAlias call.
func (r *aliasRegistry) Create(
	ctx context.Context, keyClient KeyAPI, aliasName, keyID string,
) error {
	_, err := keyClient.CreateAlias(ctx, &kms.CreateAliasInput{
		AliasName:   aws.String(aliasName),
		TargetKeyId: aws.String(keyID),
	})
	if err != nil {
		return fmt.Errorf("%w: create alias %q: %v", kmsDomain.ErrProvider, aliasName, err)
	}
	return nil
}
