package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// awsClientFactory implements AWSClientFactory using aws-sdk-go-v2.
type awsClientFactory struct {
	// endpoint overrides the service endpoint when non-empty
	// (LocalStack and similar test targets).
	endpoint string
}

// NewAWSClientFactory creates a factory that builds kms/sts/iam clients from
// explicitly supplied credentials. The endpoint parameter is optional and
// overrides the AWS service endpoint when non-empty.
func NewAWSClientFactory(endpoint string) AWSClientFactory {
	return &awsClientFactory{endpoint: endpoint}
}

// load builds an aws.Config carrying only the supplied credentials. The
// static provider keeps resolution explicit: the SDK's ambient credential
// chain (env vars, shared files, instance metadata) is never consulted.
func (f *awsClientFactory) load(
	ctx context.Context, creds *kmsDomain.ResolvedCredentials,
) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(creds.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				creds.AccessKeyID,
				creds.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// KeyClient builds a KMS client bound to the supplied credentials.
func (f *awsClientFactory) KeyClient(
	ctx context.Context, creds *kmsDomain.ResolvedCredentials,
) (KeyAPI, error) {
	cfg, err := f.load(ctx, creds)
	if err != nil {
		return nil, err
	}

	var opts []func(*kms.Options)
	if f.endpoint != "" {
		opts = append(opts, func(o *kms.Options) {
			o.BaseEndpoint = aws.String(f.endpoint)
		})
	}

	return kms.NewFromConfig(cfg, opts...), nil
}

// TokenClient builds an STS client bound to the supplied credentials.
func (f *awsClientFactory) TokenClient(
	ctx context.Context, creds *kmsDomain.ResolvedCredentials,
) (TokenAPI, error) {
	cfg, err := f.load(ctx, creds)
	if err != nil {
		return nil, err
	}

	var opts []func(*sts.Options)
	if f.endpoint != "" {
		opts = append(opts, func(o *sts.Options) {
			o.BaseEndpoint = aws.String(f.endpoint)
		})
	}

	return sts.NewFromConfig(cfg, opts...), nil
}

// IdentityClient builds an IAM client bound to the supplied credentials.
func (f *awsClientFactory) IdentityClient(
	ctx context.Context, creds *kmsDomain.ResolvedCredentials,
) (IdentityAPI, error) {
	cfg, err := f.load(ctx, creds)
	if err != nil {
		return nil, err
	}

	var opts []func(*iam.Options)
	if f.endpoint != "" {
		opts = append(opts, func(o *iam.Options) {
			o.BaseEndpoint = aws.String(f.endpoint)
		})
	}

	return iam.NewFromConfig(cfg, opts...), nil
}
