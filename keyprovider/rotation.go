package keyprovider

import "fmt"

// MultiKeyProvider tries a list of providers in order. The first is
// used for new tokenization; TryDeriveKey additionally falls back
// through the rest, so detokenization keeps working for tokens minted
// under an older key during a rotation window.
type MultiKeyProvider struct {
	providers []KeyProvider
	primary   KeyProvider
}

// NewMultiKeyProvider builds a MultiKeyProvider. providers[0] is the
// primary, used for DeriveKey and new tokenization; the rest are
// rotation fallbacks tried in order by TryDeriveKey.
func NewMultiKeyProvider(providers ...KeyProvider) (*MultiKeyProvider, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("keyprovider: at least one key provider required")
	}
	return &MultiKeyProvider{providers: providers, primary: providers[0]}, nil
}

// DeriveKey uses the primary provider.
func (m *MultiKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	return m.primary.DeriveKey(salt)
}

// GenerateSalt uses the primary provider.
func (m *MultiKeyProvider) GenerateSalt() ([]byte, error) {
	return m.primary.GenerateSalt()
}

// TryDeriveKey attempts each provider in order and returns the first
// key that derives successfully. Use this on the detokenize path
// during a key-rotation window, where the salt might have been minted
// by an older provider no longer primary.
func (m *MultiKeyProvider) TryDeriveKey(salt []byte) ([]byte, error) {
	var lastErr error
	for _, provider := range m.providers {
		key, err := provider.DeriveKey(salt)
		if err != nil {
			lastErr = err
			continue
		}
		return key, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("keyprovider: all providers failed: %w", lastErr)
	}
	return nil, fmt.Errorf("keyprovider: no providers available")
}

var _ KeyProvider = (*MultiKeyProvider)(nil)
