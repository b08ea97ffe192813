package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// Reconciler detects CMKs left without an alias by a failure between key
// creation and alias creation. Detection only: nothing is deleted or
// re-aliased here, the inconsistency is reported instead of masked.
type Reconciler interface {
	// OrphanedKeys returns the handles of every CMK no alias points at.
	OrphanedKeys(ctx context.Context, keyClient KeyAPI) ([]kmsDomain.CmkHandle, error)
}

// reconciler implements Reconciler with full ListKeys/ListAliases scans.
type reconciler struct {
	aliasPageSize int32
	keyPageSize   int32
	limiter       *rate.Limiter
}

// NewReconciler creates a reconciler with the given scan page sizes and
// list-call rate limit.
func NewReconciler(
	aliasPageSize, keyPageSize int, listRatePerSec float64, burst int,
) Reconciler {
	return &reconciler{
		aliasPageSize: int32(aliasPageSize),
		keyPageSize:   int32(keyPageSize),
		limiter:       rate.NewLimiter(rate.Limit(listRatePerSec), burst),
	}
}

// OrphanedKeys scans keys and aliases concurrently, then reports every key
// id that no alias targets. The two scans are independent reads so running
// them in parallel is safe; the shared limiter still bounds the combined
// request rate.
func (r *reconciler) OrphanedKeys(
	ctx context.Context, keyClient KeyAPI,
) ([]kmsDomain.CmkHandle, error) {
	var (
		keys    []kmsDomain.CmkHandle
		aliased map[string]struct{}
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		keys, err = r.listAllKeys(groupCtx, keyClient)
		return err
	})
	group.Go(func() error {
		var err error
		aliased, err = r.listAliasedKeyIDs(groupCtx, keyClient)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var orphans []kmsDomain.CmkHandle
	for _, key := range keys {
		if _, ok := aliased[key.KeyID]; !ok {
			orphans = append(orphans, key)
		}
	}
	return orphans, nil
}

// listAllKeys pages through every key in the account.
func (r *reconciler) listAllKeys(
	ctx context.Context, keyClient KeyAPI,
) ([]kmsDomain.CmkHandle, error) {
	var keys []kmsDomain.CmkHandle
	input := &kms.ListKeysInput{Limit: aws.Int32(r.keyPageSize)}

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := keyClient.ListKeys(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: list keys: %v", kmsDomain.ErrProvider, err)
		}

		for _, key := range page.Keys {
			keys = append(keys, kmsDomain.CmkHandle{
				KeyID: aws.ToString(key.KeyId),
				ARN:   aws.ToString(key.KeyArn),
			})
		}

		if !page.Truncated {
			return keys, nil
		}
		input.Marker = page.NextMarker
	}
}

// listAliasedKeyIDs pages through every alias and collects the key ids they
// target. Provider-reserved aliases without a target are skipped.
func (r *reconciler) listAliasedKeyIDs(
	ctx context.Context, keyClient KeyAPI,
) (map[string]struct{}, error) {
	aliased := make(map[string]struct{})
	input := &kms.ListAliasesInput{Limit: aws.Int32(r.aliasPageSize)}

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := keyClient.ListAliases(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: list aliases: %v", kmsDomain.ErrProvider, err)
		}

		for _, alias := range page.Aliases {
			if target := aws.ToString(alias.TargetKeyId); target != "" {
				aliased[target] = struct{}{}
			}
		}

		if !page.Truncated {
			return aliased, nil
		}
		input.Marker = page.NextMarker
	}
}
