package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
)

// RunDecryptDataKey unwraps a base64-encoded data-key ciphertext and prints
// the plaintext key bytes base64-encoded. Intended for operational debugging;
// the output is sensitive key material.
func RunDecryptDataKey(
	ctx context.Context,
	keyUseCase kmsUsecase.KeyUseCase,
	writer io.Writer,
	tenantID, ciphertextB64 string,
) error {
	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return fmt.Errorf("invalid base64 ciphertext: %w", err)
	}

	plaintext, err := keyUseCase.DecryptDataKey(ctx, id, ciphertext)
	if err != nil {
		return fmt.Errorf("failed to decrypt data key: %w", err)
	}

	fmt.Fprintf(writer, "%s\n", base64.StdEncoding.EncodeToString(plaintext))
	return nil
}
