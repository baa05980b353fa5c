package keyprovider

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// SecureKey holds derived FF1 key material inside a memguard.Enclave
// instead of a plain byte slice, so the key doesn't sit in regular,
// swappable, GC-visible memory between uses.
type SecureKey struct {
	enclave *memguard.Enclave
}

// NewSecureKey copies key into a locked enclave and wipes the caller's
// slice. key must not be reused afterward.
func NewSecureKey(key []byte) *SecureKey {
	enclave := memguard.NewEnclave(key)
	memguard.WipeBytes(key)
	return &SecureKey{enclave: enclave}
}

// Open decrypts the enclave into a LockedBuffer. The caller must call
// Destroy on the returned buffer once done with the key bytes.
func (k *SecureKey) Open() (*memguard.LockedBuffer, error) {
	lb, err := k.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("keyprovider: failed to open key enclave: %w", err)
	}
	return lb, nil
}
