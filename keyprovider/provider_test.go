package keyprovider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordKeyProvider_Argon2id(t *testing.T) {
	p := NewPasswordKeyProvider([]byte("correct horse battery staple"), Argon2idParams{})

	salt, err := p.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 32)

	key, err := p.DeriveKey(salt)
	require.NoError(t, err)
	require.Len(t, key, 32)

	key2, err := p.DeriveKey(salt)
	require.NoError(t, err)
	require.Equal(t, key, key2, "same password+salt must derive the same key")
}

func TestPasswordKeyProvider_Argon2id_KeySize(t *testing.T) {
	p := NewPasswordKeyProvider([]byte("a password"), Argon2idParams{KeySize: 16})
	salt, err := p.GenerateSalt()
	require.NoError(t, err)

	key, err := p.DeriveKey(salt)
	require.NoError(t, err)
	require.Len(t, key, 16)
}

func TestPasswordKeyProvider_PBKDF2(t *testing.T) {
	p := NewPasswordKeyProviderPBKDF2([]byte("a password"), PBKDF2Params{KeySize: 24})

	salt, err := p.GenerateSalt()
	require.NoError(t, err)

	key, err := p.DeriveKey(salt)
	require.NoError(t, err)
	require.Len(t, key, 24)
}

func TestPasswordKeyProvider_DifferentSaltsDifferentKeys(t *testing.T) {
	p := NewPasswordKeyProvider([]byte("a password"), Argon2idParams{})

	saltA, err := p.GenerateSalt()
	require.NoError(t, err)
	saltB, err := p.GenerateSalt()
	require.NoError(t, err)

	keyA, err := p.DeriveKey(saltA)
	require.NoError(t, err)
	keyB, err := p.DeriveKey(saltB)
	require.NoError(t, err)

	require.NotEqual(t, keyA, keyB)
}

func TestPasswordKeyProvider_RejectsEmptyInputs(t *testing.T) {
	p := NewPasswordKeyProvider(nil, Argon2idParams{})
	_, err := p.DeriveKey([]byte("salt"))
	require.Error(t, err)

	p2 := NewPasswordKeyProvider([]byte("password"), Argon2idParams{})
	_, err = p2.DeriveKey(nil)
	require.Error(t, err)
}

func TestDeriveSubkey(t *testing.T) {
	master := []byte("a very secret master secret, 32 bytes long!!!!")

	keyA, err := DeriveSubkey(master, []byte("tenant-a"), 32)
	require.NoError(t, err)
	require.Len(t, keyA, 32)

	keyB, err := DeriveSubkey(master, []byte("tenant-b"), 32)
	require.NoError(t, err)
	require.NotEqual(t, keyA, keyB, "different info must derive different subkeys")

	keyA2, err := DeriveSubkey(master, []byte("tenant-a"), 32)
	require.NoError(t, err)
	require.Equal(t, keyA, keyA2, "same master+info must be deterministic")
}

func TestDeriveSubkey_RejectsBadKeySize(t *testing.T) {
	_, err := DeriveSubkey([]byte("master"), []byte("info"), 20)
	require.Error(t, err)
}

// failingProvider models a provider that can no longer derive keys,
// e.g. a retired KMS-backed provider during a rotation window.
type failingProvider struct{}

func (failingProvider) DeriveKey(salt []byte) ([]byte, error) {
	return nil, errFailingProvider
}
func (failingProvider) GenerateSalt() ([]byte, error) { return nil, errFailingProvider }

var errFailingProvider = errors.New("failingProvider: key no longer available")

func TestMultiKeyProvider_FallsBackOnRotation(t *testing.T) {
	oldProvider := NewPasswordKeyProvider([]byte("old-password"), Argon2idParams{})

	multi, err := NewMultiKeyProvider(failingProvider{}, oldProvider)
	require.NoError(t, err)

	salt, err := oldProvider.GenerateSalt()
	require.NoError(t, err)
	wantKey, err := oldProvider.DeriveKey(salt)
	require.NoError(t, err)

	// DeriveKey always uses the primary, which fails here.
	_, err = multi.DeriveKey(salt)
	require.Error(t, err)

	// TryDeriveKey falls through to the working fallback provider.
	gotKey, err := multi.TryDeriveKey(salt)
	require.NoError(t, err)
	require.Equal(t, wantKey, gotKey)
}

func TestMultiKeyProvider_RequiresAtLeastOneProvider(t *testing.T) {
	_, err := NewMultiKeyProvider()
	require.Error(t, err)
}

func TestSecureKey_OpenDestroy(t *testing.T) {
	key := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	sk := NewSecureKey(append([]byte(nil), key...))

	lb, err := sk.Open()
	require.NoError(t, err)
	require.Equal(t, key, lb.Bytes())
	lb.Destroy()
}
