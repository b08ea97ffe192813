package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"

	kmsDomain "github.com/allisson/earkms/internal/kms/domain"
)

// EnvelopeCipher wraps and unwraps symmetric data keys under a CMK.
type EnvelopeCipher interface {
	// Wrap asks the provider to generate a data key of the given algorithm
	// and size under the CMK and returns only the ciphertext blob. The
	// provider never returns plaintext for this call; plaintext is recovered
	// exclusively through Unwrap.
	Wrap(
		ctx context.Context, keyClient KeyAPI, keyID, algorithm string, keySizeBits int,
	) ([]byte, error)

	// Unwrap decrypts a wrapped data key and returns the raw plaintext bytes.
	// An empty or nil ciphertext is a valid empty case, not an error: it
	// returns (nil, nil) without any provider call, mirroring a tenant that
	// has no master key configured yet.
	Unwrap(ctx context.Context, keyClient KeyAPI, ciphertext []byte) ([]byte, error)
}

// envelopeCipher implements EnvelopeCipher against the KMS API.
type envelopeCipher struct{}

// NewEnvelopeCipher creates a new envelope cipher.
func NewEnvelopeCipher() EnvelopeCipher {
	return &envelopeCipher{}
}

// Wrap generates a data key without plaintext. The key spec is composed as
// "<algorithm>_<bits>" exactly as the provider's enumeration requires.
func (e *envelopeCipher) Wrap(
	ctx context.Context, keyClient KeyAPI, keyID, algorithm string, keySizeBits int,
) ([]byte, error) {
	output, err := keyClient.GenerateDataKeyWithoutPlaintext(
		ctx,
		&kms.GenerateDataKeyWithoutPlaintextInput{
			KeyId:   aws.String(keyID),
			KeySpec: types.DataKeySpec(kmsDomain.DataKeySpec(algorithm, keySizeBits)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: generate data key: %v", kmsDomain.ErrProvider, err)
	}

	return slices.Clone(output.CiphertextBlob), nil
}

// Unwrap submits the opaque blob for decryption. The plaintext is copied out
// of the response buffer immediately so no caller can re-read shared state.
func (e *envelopeCipher) Unwrap(
	ctx context.Context, keyClient KeyAPI, ciphertext []byte,
) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}

	output, err := keyClient.Decrypt(ctx, &kms.DecryptInput{
		CiphertextBlob: ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt data key: %v", kmsDomain.ErrProvider, err)
	}

	return slices.Clone(output.Plaintext), nil
}
