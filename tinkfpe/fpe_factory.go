// Package tinkfpe provides Tink integration for Format-Preserving Encryption.
// This file contains the factory function for creating FPE primitives from Tink keyset handles.
package tinkfpe

import (
	"fmt"

	"github.com/coriolisfpe/ff1"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
)

// New creates a new FPE primitive from a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(fpeKeyTemplate)
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//	if err != nil {
//	    return err
//	}
//	tokenized, err := primitive.Tokenize("123-45-6789")
func New(handle *keyset.Handle, tweak []byte) (fpe.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	// Extract the primary key from the keyset using Tink's Primitives API
	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	// Get the primary entry (which contains the key)
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	// Extract key material using the key ID from the primary entry
	keyID := primary.KeyID
	if keyID == 0 {
		return nil, fmt.Errorf("invalid key ID in primary entry")
	}

	// Extract the keyset using insecurecleartextkeyset (for unencrypted keysets)
	// This works for keysets created with insecurecleartextkeyset
	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	// Find the key with matching ID
	var keyBytes []byte
	for _, key := range ks.Key {
		if key.KeyId == keyID {
			keyData := key.KeyData
			if keyData == nil {
				continue
			}

			// Handle encrypted keys via KMS
			// Note: For encrypted keys, the KMS URI is typically in the keyset key structure,
			// not in KeyData. Full KMS support would require additional keyset parsing.
			keyMaterialType := keyData.GetKeyMaterialType()
			if keyMaterialType == 1 { // ENCRYPTED = 1
				return nil, fmt.Errorf("encrypted keys via KMS are not yet fully supported - use symmetric keys")
			}

			// For symmetric keys, return the value directly
			// SYMMETRIC = 2
			if keyMaterialType == 2 {
				keyBytes = keyData.Value
				break
			}
		}
	}

	if keyBytes == nil {
		return nil, fmt.Errorf("key with ID %d not found or unsupported key type", keyID)
	}

	engine, err := fpe.NewFF1(keyBytes, tweak)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1 instance: %w", err)
	}

	return &fpeImpl{engine: engine}, nil
}

// fpeImpl adapts the root package's alphabet-detecting FF1 engine to the
// fpe.FPE interface Tink-style callers expect. The radix isn't known
// until Tokenize/Detokenize see the plaintext, so unlike a typical Tink
// primitive there's no per-call construction of a subtle engine here;
// that already happens one layer down, inside engine.Tokenize/Detokenize.
type fpeImpl struct {
	engine *fpe.FF1
}

// Tokenize encrypts plaintext using format-preserving encryption.
func (f *fpeImpl) Tokenize(plaintext string) (string, error) {
	return f.engine.Tokenize(plaintext)
}

// Detokenize decrypts tokenized value using format-preserving encryption.
func (f *fpeImpl) Detokenize(tokenized string, originalPlaintext string) (string, error) {
	return f.engine.Detokenize(tokenized, originalPlaintext, "")
}

// Verify that fpeImpl implements fpe.FPE
var _ fpe.FPE = (*fpeImpl)(nil)
