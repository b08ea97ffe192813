package service

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmsTypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// fakeKeyAPI is a hand-rolled KeyAPI double. List calls serve their configured
// pages in order; the mutex makes it safe for the concurrent scans the
// reconciler runs.
type fakeKeyAPI struct {
	mu sync.Mutex

	aliasPages []*kms.ListAliasesOutput
	keyPages   []*kms.ListKeysOutput

	createKeyOutput *kms.CreateKeyOutput
	createKeyErr    error
	createAliasErr  error
	generateOutput  *kms.GenerateDataKeyWithoutPlaintextOutput
	generateErr     error
	decryptOutput   *kms.DecryptOutput
	decryptErr      error
	listAliasesErr  error
	listKeysErr     error

	listAliasesCalls int
	listKeysCalls    int
	createKeyCalls   int
	createAliasCalls int
	generateCalls    int
	decryptCalls     int

	lastCreateKeyInput   *kms.CreateKeyInput
	lastCreateAliasInput *kms.CreateAliasInput
	lastGenerateInput    *kms.GenerateDataKeyWithoutPlaintextInput
	lastDecryptInput     *kms.DecryptInput
}

func (f *fakeKeyAPI) ListAliases(
	_ context.Context, _ *kms.ListAliasesInput, _ ...func(*kms.Options),
) (*kms.ListAliasesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.listAliasesCalls
	f.listAliasesCalls++

	if f.listAliasesErr != nil {
		return nil, f.listAliasesErr
	}
	if call >= len(f.aliasPages) {
		return &kms.ListAliasesOutput{}, nil
	}
	return f.aliasPages[call], nil
}

func (f *fakeKeyAPI) ListKeys(
	_ context.Context, _ *kms.ListKeysInput, _ ...func(*kms.Options),
) (*kms.ListKeysOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.listKeysCalls
	f.listKeysCalls++

	if f.listKeysErr != nil {
		return nil, f.listKeysErr
	}
	if call >= len(f.keyPages) {
		return &kms.ListKeysOutput{}, nil
	}
	return f.keyPages[call], nil
}

func (f *fakeKeyAPI) CreateKey(
	_ context.Context, params *kms.CreateKeyInput, _ ...func(*kms.Options),
) (*kms.CreateKeyOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createKeyCalls++
	f.lastCreateKeyInput = params

	if f.createKeyErr != nil {
		return nil, f.createKeyErr
	}
	return f.createKeyOutput, nil
}

func (f *fakeKeyAPI) CreateAlias(
	_ context.Context, params *kms.CreateAliasInput, _ ...func(*kms.Options),
) (*kms.CreateAliasOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createAliasCalls++
	f.lastCreateAliasInput = params

	if f.createAliasErr != nil {
		return nil, f.createAliasErr
	}
	return &kms.CreateAliasOutput{}, nil
}

func (f *fakeKeyAPI) GenerateDataKeyWithoutPlaintext(
	_ context.Context,
	params *kms.GenerateDataKeyWithoutPlaintextInput,
	_ ...func(*kms.Options),
) (*kms.GenerateDataKeyWithoutPlaintextOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generateCalls++
	f.lastGenerateInput = params

	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generateOutput, nil
}

func (f *fakeKeyAPI) Decrypt(
	_ context.Context, params *kms.DecryptInput, _ ...func(*kms.Options),
) (*kms.DecryptOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.decryptCalls++
	f.lastDecryptInput = params

	if f.decryptErr != nil {
		return nil, f.decryptErr
	}
	return f.decryptOutput, nil
}

// fakeTokenAPI is a hand-rolled TokenAPI double.
type fakeTokenAPI struct {
	output *sts.GetCallerIdentityOutput
	err    error
	calls  int
}

func (f *fakeTokenAPI) GetCallerIdentity(
	_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

// fakeIdentityAPI is a hand-rolled IdentityAPI double.
type fakeIdentityAPI struct {
	output       *iam.GetRoleOutput
	err          error
	calls        int
	lastRoleName string
}

func (f *fakeIdentityAPI) GetRole(
	_ context.Context, params *iam.GetRoleInput, _ ...func(*iam.Options),
) (*iam.GetRoleOutput, error) {
	f.calls++
	f.lastRoleName = aws.ToString(params.RoleName)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

// aliasPage builds a ListAliases page from (name, target) pairs.
func aliasPage(truncated bool, nextMarker string, entries ...[2]string) *kms.ListAliasesOutput {
	page := &kms.ListAliasesOutput{Truncated: truncated}
	if nextMarker != "" {
		page.NextMarker = aws.String(nextMarker)
	}
	for _, entry := range entries {
		page.Aliases = append(page.Aliases, kmsTypes.AliasListEntry{
			AliasName:   aws.String(entry[0]),
			TargetKeyId: aws.String(entry[1]),
		})
	}
	return page
}

// keyPage builds a ListKeys page from (key id, arn) pairs.
func keyPage(truncated bool, nextMarker string, entries ...[2]string) *kms.ListKeysOutput {
	page := &kms.ListKeysOutput{Truncated: truncated}
	if nextMarker != "" {
		page.NextMarker = aws.String(nextMarker)
	}
	for _, entry := range entries {
		page.Keys = append(page.Keys, kmsTypes.KeyListEntry{
			KeyId:  aws.String(entry[0]),
			KeyArn: aws.String(entry[1]),
		})
	}
	return page
}

// callerToken builds a caller-identity response for an arbitrary ARN.
func callerToken(account, arn string) *fakeTokenAPI {
	return &fakeTokenAPI{
		output: &sts.GetCallerIdentityOutput{
			Account: aws.String(account),
			Arn:     aws.String(arn),
		},
	}
}

// userToken builds a caller-identity response for an IAM user.
func userToken(account, userName string) *fakeTokenAPI {
	return callerToken(account, "arn:aws:iam::"+account+":user/"+userName)
}

// roleIdentity builds a GetRole response carrying the role's own ARN.
func roleIdentity(roleARN string) *fakeIdentityAPI {
	return &fakeIdentityAPI{
		output: &iam.GetRoleOutput{
			Role: &iamTypes.Role{Arn: aws.String(roleARN)},
		},
	}
}
