package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

func TestIdentityResolver_CurrentIdentity(t *testing.T) {
	ctx := context.Background()
	resolver := NewIdentityResolver()

	t.Run("IAM user is returned as-is", func(t *testing.T) {
		tokenClient := userToken("123456789012", "alice")
		identityClient := &fakeIdentityAPI{}

		identity, err := resolver.CurrentIdentity(ctx, tokenClient, identityClient)
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123456789012:user/alice", identity.ARN)
		assert.Equal(t, "123456789012", identity.Account)
		assert.Equal(t, kmsDomain.UserPrincipal, identity.Kind)
		assert.Equal(t, 0, identityClient.calls)
	})

	t.Run("assumed-role session ARN is replaced with the role ARN", func(t *testing.T) {
		tokenClient := callerToken(
			"123456789012",
			"arn:aws:sts::123456789012:assumed-role/MyRole/session-1",
		)
		identityClient := roleIdentity("arn:aws:iam::123456789012:role/MyRole")

		identity, err := resolver.CurrentIdentity(ctx, tokenClient, identityClient)
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123456789012:role/MyRole", identity.ARN)
		assert.Equal(t, kmsDomain.AssumedRolePrincipal, identity.Kind)
		assert.Equal(t, "MyRole", identityClient.lastRoleName)
	})

	t.Run("account root is unsupported", func(t *testing.T) {
		tokenClient := callerToken("123456789012", "arn:aws:iam::123456789012:root")

		_, err := resolver.CurrentIdentity(ctx, tokenClient, &fakeIdentityAPI{})
		assert.ErrorIs(t, err, kmsDomain.ErrUnsupportedPrincipalType)
	})

	t.Run("caller identity failure", func(t *testing.T) {
		tokenClient := &fakeTokenAPI{err: errors.New("expired token")}

		_, err := resolver.CurrentIdentity(ctx, tokenClient, &fakeIdentityAPI{})
		assert.ErrorIs(t, err, kmsDomain.ErrProvider)
	})

	t.Run("role lookup failure", func(t *testing.T) {
		tokenClient := callerToken(
			"123456789012",
			"arn:aws:sts::123456789012:assumed-role/MyRole/session-1",
		)
		identityClient := &fakeIdentityAPI{err: errors.New("access denied")}

		_, err := resolver.CurrentIdentity(ctx, tokenClient, identityClient)
		assert.ErrorIs(t, err, kmsDomain.ErrProvider)
	})
}
