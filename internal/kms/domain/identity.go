package domain

import (
	"fmt"
	"strings"
)

// PrincipalKind classifies the principal behind a caller identity ARN.
type PrincipalKind string

const (
	// UserPrincipal is an IAM user identity (arn contains ":user/").
	UserPrincipal PrincipalKind = "user"

	// AssumedRolePrincipal is an assumed-role session identity
	// (arn contains ":assumed-role/"). Policies must reference the role's
	// own ARN, not the session ARN.
	AssumedRolePrincipal PrincipalKind = "assumed_role"

	// UnsupportedPrincipal is any other identity (e.g. the account root or
	// a federated identity); no key policy can be generated for it.
	UnsupportedPrincipal PrincipalKind = "unsupported"
)

// Identity is the discovered identity of the credentials in use.
type Identity struct {
	ARN     string
	Account string
	Kind    PrincipalKind
}

// ClassifyPrincipalARN determines the principal kind for a caller identity ARN.
func ClassifyPrincipalARN(arn string) PrincipalKind {
	switch {
	case strings.Contains(arn, ":assumed-role/"):
		return AssumedRolePrincipal
	case strings.Contains(arn, ":user/"):
		return UserPrincipal
	default:
		return UnsupportedPrincipal
	}
}

// ResourceNameFromARN extracts the friendly resource name from an ARN:
// the path segment following the resource type in the sixth ARN field.
// For "arn:aws:sts::123456789012:assumed-role/MyRole/session" it returns
// "MyRole".
func ResourceNameFromARN(arn string) (string, error) {
	fields := strings.Split(arn, ":")
	if len(fields) < 6 {
		return "", fmt.Errorf("malformed arn %q", arn)
	}
	parts := strings.Split(fields[5], "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("arn %q has no resource name", arn)
	}
	return parts[1], nil
}

// AccountRootARN formats the root principal ARN for an account id.
func AccountRootARN(account string) string {
	return fmt.Sprintf("arn:aws:iam::%s:root", account)
}
