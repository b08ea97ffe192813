package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// IdentityResolver discovers the principal behind the credentials in use.
type IdentityResolver interface {
	// CurrentIdentity returns the caller's identity with the principal ARN
	// normalized for policy use: an assumed-role session ARN is replaced by
	// the role's own ARN (roles and sessions have different ARNs; the policy
	// must reference the role, not the session). Unsupported principals fail
	// with domain.ErrUnsupportedPrincipalType.
	CurrentIdentity(
		ctx context.Context, tokenClient TokenAPI, identityClient IdentityAPI,
	) (*kmsDomain.Identity, error)
}

// identityResolver implements IdentityResolver via STS and IAM.
type identityResolver struct{}

// NewIdentityResolver creates a new identity resolver.
func NewIdentityResolver() IdentityResolver {
	return &identityResolver{}
}

// CurrentIdentity calls the token service's "who am I" operation and
// classifies the returned principal.
func (r *identityResolver) CurrentIdentity(
	ctx context.Context, tokenClient TokenAPI, identityClient IdentityAPI,
) (*kmsDomain.Identity, error) {
	callerIdentity, err := tokenClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("%w: get caller identity: %v", kmsDomain.ErrProvider, err)
	}

	identity := &kmsDomain.Identity{
		ARN:     aws.ToString(callerIdentity.Arn),
		Account: aws.ToString(callerIdentity.Account),
		Kind:    kmsDomain.ClassifyPrincipalARN(aws.ToString(callerIdentity.Arn)),
	}

	switch identity.Kind {
	case kmsDomain.UserPrincipal:
		return identity, nil
	case kmsDomain.AssumedRolePrincipal:
		roleName, err := kmsDomain.ResourceNameFromARN(identity.ARN)
		if err != nil {
			return nil, err
		}
		role, err := identityClient.GetRole(ctx, &iam.GetRoleInput{
			RoleName: aws.String(roleName),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get role %q: %v", kmsDomain.ErrProvider, roleName, err)
		}
		identity.ARN = aws.ToString(role.Role.Arn)
		return identity, nil
	default:
		return nil, kmsDomain.ErrUnsupportedPrincipalType
	}
}
