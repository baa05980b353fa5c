package fpe

import (
	"encoding/hex"
	"testing"
)

// Test vectors from NIST SP 800-38G Appendix A, run through the
// format-preserving Tokenize/Detokenize API rather than the raw
// subtle.FF1 engine, to exercise alphabet detection end to end.
// Reference: https://csrc.nist.gov/CSRC/media/Projects/Cryptographic-Standards-and-Guidelines/documents/examples/FF1samples.pdf

func TestFF1_NIST_Sample1(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("failed to decode key: %v", err)
	}

	f, err := NewFF1(key, nil)
	if err != nil {
		t.Fatalf("NewFF1: %v", err)
	}

	ciphertext, err := f.Tokenize("0123456789")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if ciphertext != "2433477484" {
		t.Errorf("Tokenize() = %q, want %q", ciphertext, "2433477484")
	}

	plaintext, err := f.Detokenize(ciphertext, "0123456789", "")
	if err != nil {
		t.Fatalf("Detokenize: %v", err)
	}
	if plaintext != "0123456789" {
		t.Errorf("Detokenize() = %q, want %q", plaintext, "0123456789")
	}
}

func TestFF1_NIST_Sample2_WithTweak(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("failed to decode key: %v", err)
	}
	tweak := []byte{0x39, 0x38, 0x37, 0x36, 0x35, 0x34, 0x33, 0x32, 0x31, 0x30}

	f, err := NewFF1(key, tweak)
	if err != nil {
		t.Fatalf("NewFF1: %v", err)
	}

	ciphertext, err := f.Tokenize("0123456789")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if ciphertext != "6124200773" {
		t.Errorf("Tokenize() = %q, want %q", ciphertext, "6124200773")
	}

	plaintext, err := f.Detokenize(ciphertext, "0123456789", "")
	if err != nil {
		t.Fatalf("Detokenize: %v", err)
	}
	if plaintext != "0123456789" {
		t.Errorf("Detokenize() = %q, want %q", plaintext, "0123456789")
	}
}

func TestFF1_FormatPreservation(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	if err != nil {
		t.Fatalf("failed to decode key: %v", err)
	}
	f, err := NewFF1(key, []byte("ssn"))
	if err != nil {
		t.Fatalf("NewFF1: %v", err)
	}

	plaintext := "123-45-6789"
	ciphertext, err := f.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(ciphertext) != len(plaintext) {
		t.Fatalf("format not preserved: got length %d, want %d", len(ciphertext), len(plaintext))
	}
	if ciphertext[3] != '-' || ciphertext[6] != '-' {
		t.Fatalf("hyphen positions not preserved in %q", ciphertext)
	}

	decrypted, err := f.Detokenize(ciphertext, plaintext, "")
	if err != nil {
		t.Fatalf("Detokenize: %v", err)
	}
	if decrypted != plaintext {
		t.Fatalf("round-trip failed: got %q, want %q", decrypted, plaintext)
	}
}

func TestFF1_AlphanumericAlphabet(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3CEF4359D8D580AA4F7F036D6F04FC6A94")
	if err != nil {
		t.Fatalf("failed to decode key: %v", err)
	}
	f, err := NewFF1(key, []byte("tenant-1|email"))
	if err != nil {
		t.Fatalf("NewFF1: %v", err)
	}

	plaintext := "jane.doe@example.com"
	ciphertext, err := f.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(ciphertext) != len(plaintext) {
		t.Fatalf("format not preserved: got length %d, want %d", len(ciphertext), len(plaintext))
	}

	decrypted, err := f.Detokenize(ciphertext, plaintext, "")
	if err != nil {
		t.Fatalf("Detokenize: %v", err)
	}
	if decrypted != plaintext {
		t.Fatalf("round-trip failed: got %q, want %q", decrypted, plaintext)
	}
}

func TestNewFF1_RejectsBadKeySize(t *testing.T) {
	if _, err := NewFF1([]byte("too-short"), nil); err == nil {
		t.Fatal("expected an error for a non-AES key length")
	}
}
