package service

import (
	_ "embed"
	"fmt"
	"sync"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

//go:embed assets/default_cmk_policy.json
var defaultPolicyRaw []byte

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *kmsDomain.PolicyDocument
	defaultPolicyErr  error
)

// DefaultPolicyTemplate returns the built-in CMK policy template: two
// statements with empty principal slots, statement 0 for key administration
// and statement 1 for key use. The returned document is shared and read-only;
// callers must bind it (which copies) rather than mutate it.
func DefaultPolicyTemplate() (*kmsDomain.PolicyDocument, error) {
	defaultPolicyOnce.Do(func() {
		defaultPolicy, defaultPolicyErr = kmsDomain.ParsePolicyDocument(defaultPolicyRaw)
	})
	return defaultPolicy, defaultPolicyErr
}

// BindPolicy fills the template's principal slots with concrete ARNs:
// the administrative statement gets the account root ARN and the operational
// statement gets the resolved caller principal ARN. A template without both
// slots fails with domain.ErrPolicyBind. Binding is pure:
// the template is deep-copied, never mutated.
func BindPolicy(
	template *kmsDomain.PolicyDocument, principalARN, accountRootARN string,
) (*kmsDomain.PolicyDocument, error) {
	if template == nil ||
		len(template.Statement) <= kmsDomain.OperationalStatementIndex {
		return nil, fmt.Errorf(
			"%w: want at least %d statements, got %d",
			kmsDomain.ErrPolicyBind,
			kmsDomain.OperationalStatementIndex+1,
			len(template.Statement),
		)
	}

	bound := template.Clone()
	bound.Statement[kmsDomain.AdminStatementIndex].Principal.AWS = accountRootARN
	bound.Statement[kmsDomain.OperationalStatementIndex].Principal.AWS = principalARN
	return bound, nil
}
