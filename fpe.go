// Package fpe implements Format-Preserving Encryption (FPE) using the
// FF1 algorithm standardized in NIST SP 800-38G.
//
// This package provides a clean, provider-agnostic implementation of
// FF1 that can be used with any key management system. It preserves
// the format of input data (e.g., SSN format XXX-XX-XXXX, credit card
// numbers, email addresses) while encrypting the actual data
// characters. The NIST-exact Feistel construction lives in the
// subtle subpackage; this package adds the ergonomic layer that most
// callers actually want: format-character passthrough and
// automatic alphabet detection over a string.
//
// The package also includes Tink-compatible primitives (see tink.go).
// While Tink doesn't natively support FPE, this package provides a
// Tink-compatible interface that follows Tink's design patterns and
// integrates seamlessly with Tink's key management system (see the
// tinkfpe package).
//
// Example usage:
//
//	key := []byte("your-encryption-key-32-bytes-ok!")
//	tweak := []byte("tenant-1234|customer.ssn")
//
//	fpe, err := fpe.NewFF1(key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Tokenize (encrypt) while preserving format
//	tokenized, err := fpe.Tokenize("123-45-6789")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// tokenized might be "987-65-4321" (same format, different data)
//
//	// Detokenize (decrypt) to recover original
//	plaintext, err := fpe.Detokenize(tokenized, "123-45-6789", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// plaintext will be "123-45-6789"
package fpe

import (
	"fmt"

	"github.com/coriolisfpe/ff1/subtle"
)

// FF1 implements Format-Preserving Encryption using the FF1 algorithm.
// It holds a raw AES key and a tweak; the radix is determined per call
// from the alphabet of the data being tokenized, since a string's
// alphabet (digits only, letters only, or both) isn't known until the
// caller hands over a plaintext.
type FF1 struct {
	key   []byte
	tweak []byte
}

// NewFF1 creates a new FF1 FPE instance with the given key and tweak.
// The key must be 16, 24, or 32 bytes (AES-128/192/256).
// The tweak is a public, non-secret value that ensures different ciphertexts
// for the same plaintext when the tweak changes.
func NewFF1(key, tweak []byte) (*FF1, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("fpe: key must be 16, 24, or 32 bytes, got %d", len(key))
	}
	return &FF1{
		key:   key,
		tweak: tweak,
	}, nil
}

// Tokenize encrypts plaintext using format-preserving encryption.
// It preserves format characters (hyphens, dots, colons, @ signs, etc.) and
// only encrypts the alphanumeric data characters.
//
// Returns the tokenized (encrypted) value that maintains the same format as the input.
func (f *FF1) Tokenize(plaintext string) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(plaintext)

	alphabet := DetermineAlphabet(dataChars)
	if len(alphabet) == 0 {
		return "", fmt.Errorf("fpe: no valid alphabet found for plaintext")
	}

	dataNumeric := StringToNumeric(dataChars, alphabet)

	tokenizedNumeric, err := f.crypt(dataNumeric, alphabet, true)
	if err != nil {
		return "", fmt.Errorf("fpe: failed to tokenize: %w", err)
	}

	tokenizedData := NumericToString(tokenizedNumeric, alphabet, len(dataChars))
	return ReconstructWithFormat(tokenizedData, formatMask, plaintext), nil
}

// Detokenize decrypts tokenized value using format-preserving encryption.
// The alphabet parameter should match what was used during tokenization.
// If empty, it will be determined from the original plaintext (preferred) or
// from the tokenized data itself.
//
// For best results, pass the alphabet determined from the original plaintext.
func (f *FF1) Detokenize(tokenized string, originalPlaintext string, alphabet string) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(tokenized)

	if alphabet == "" {
		if originalPlaintext != "" {
			_, originalDataChars := SeparateFormatAndData(originalPlaintext)
			alphabet = DetermineAlphabet(originalDataChars)
		} else {
			alphabet = DetermineAlphabet(dataChars)
		}
	}
	if len(alphabet) == 0 {
		return "", fmt.Errorf("fpe: no valid alphabet found")
	}

	tokenizedNumeric := StringToNumeric(dataChars, alphabet)

	plaintextNumeric, err := f.crypt(tokenizedNumeric, alphabet, false)
	if err != nil {
		return "", fmt.Errorf("fpe: failed to detokenize: %w", err)
	}

	plaintextData := NumericToString(plaintextNumeric, alphabet, len(dataChars))
	return ReconstructWithFormat(plaintextData, formatMask, tokenized), nil
}

// crypt builds a subtle.FF1 instance sized to the alphabet's radix and
// runs either the encryption or decryption Feistel rounds over the
// numeric data.
func (f *FF1) crypt(data []uint16, alphabet string, encrypt bool) ([]uint16, error) {
	if len(data) == 0 {
		return data, nil
	}

	radix, err := subtle.NewRadix(uint16(len(alphabet)))
	if err != nil {
		return nil, err
	}
	engine, err := subtle.NewFF1(f.key, radix)
	if err != nil {
		return nil, err
	}

	x := subtle.NumeralString(data)
	var out subtle.NumeralString
	if encrypt {
		out, err = engine.Encrypt(f.tweak, x)
	} else {
		out, err = engine.Decrypt(f.tweak, x)
	}
	if err != nil {
		return nil, err
	}
	return []uint16(out), nil
}
