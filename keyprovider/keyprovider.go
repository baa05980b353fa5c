// Package keyprovider derives FF1-ready AES keys (16/24/32 bytes) from
// lower-entropy secrets and manages them across rotation.
//
// FF1 itself only ever sees a raw AES key (NIST SP 800-38G);
// it has no opinion on where that key came from. In practice a
// tokenization service holds an operator-supplied password, or a single
// master secret that must be split into many independent per-tenant
// keys, not a 32-byte key sitting in a config file. This package
// supplies that layer, adapted from the key-derivation shape used by
// the filesystem-encryption side of this pack.
package keyprovider

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// KeyProvider derives FF1 keys from a salt and can mint new salts.
type KeyProvider interface {
	// DeriveKey derives an FF1 key (16, 24, or 32 bytes depending on
	// the provider's configured KeySize) from the given salt.
	DeriveKey(salt []byte) ([]byte, error)
	// GenerateSalt returns a new random salt sized for this provider.
	GenerateSalt() ([]byte, error)
}

// HashFunc selects the hash function backing PBKDF2 derivation.
type HashFunc uint8

const (
	SHA256 HashFunc = iota
	SHA512
)

func (h HashFunc) new() (func() hash.Hash, error) {
	switch h {
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("keyprovider: unsupported hash function %d", h)
	}
}

// PBKDF2Params configures PasswordKeyProvider's PBKDF2 mode.
type PBKDF2Params struct {
	Iterations int      // minimum 100,000 recommended
	HashFunc   HashFunc
	SaltSize   int // bytes, default 32
	KeySize    int // bytes, default 32 (AES-256)
}

func (p PBKDF2Params) withDefaults() PBKDF2Params {
	if p.Iterations == 0 {
		p.Iterations = 100000
	}
	if p.SaltSize == 0 {
		p.SaltSize = 32
	}
	if p.KeySize == 0 {
		p.KeySize = 32
	}
	return p
}

// Argon2idParams configures PasswordKeyProvider's Argon2id mode
// (the recommended default).
type Argon2idParams struct {
	Memory      uint32 // KiB, default 64*1024 (64MiB)
	Iterations  uint32 // default 3
	Parallelism uint8  // default 4
	SaltSize    int    // bytes, default 32
	KeySize     int    // bytes, default 32 (AES-256)
}

func (p Argon2idParams) withDefaults() Argon2idParams {
	if p.Memory == 0 {
		p.Memory = 64 * 1024
	}
	if p.Iterations == 0 {
		p.Iterations = 3
	}
	if p.Parallelism == 0 {
		p.Parallelism = 4
	}
	if p.SaltSize == 0 {
		p.SaltSize = 32
	}
	if p.KeySize == 0 {
		p.KeySize = 32
	}
	return p
}

// PasswordKeyProvider derives FF1 keys from a password, using either
// Argon2id (recommended) or PBKDF2-SHA256/SHA512.
type PasswordKeyProvider struct {
	password     []byte
	useArgon2id  bool
	argon2Params Argon2idParams
	pbkdf2Params PBKDF2Params
}

// NewPasswordKeyProvider creates a password-based provider using
// Argon2id. Zero-valued fields in params fall back to sane defaults.
func NewPasswordKeyProvider(password []byte, params Argon2idParams) *PasswordKeyProvider {
	return &PasswordKeyProvider{
		password:     password,
		useArgon2id:  true,
		argon2Params: params.withDefaults(),
	}
}

// NewPasswordKeyProviderPBKDF2 creates a password-based provider using
// PBKDF2. Zero-valued fields in params fall back to sane defaults.
func NewPasswordKeyProviderPBKDF2(password []byte, params PBKDF2Params) *PasswordKeyProvider {
	return &PasswordKeyProvider{
		password:     password,
		useArgon2id:  false,
		pbkdf2Params: params.withDefaults(),
	}
}

// DeriveKey derives an FF1 key from the password and salt.
func (p *PasswordKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	if len(p.password) == 0 {
		return nil, errors.New("keyprovider: password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("keyprovider: salt cannot be empty")
	}

	if p.useArgon2id {
		key := argon2.IDKey(
			p.password,
			salt,
			p.argon2Params.Iterations,
			p.argon2Params.Memory,
			p.argon2Params.Parallelism,
			uint32(p.argon2Params.KeySize),
		)
		return key, nil
	}

	hashFunc, err := p.pbkdf2Params.HashFunc.new()
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(p.password, salt, p.pbkdf2Params.Iterations, p.pbkdf2Params.KeySize, hashFunc), nil
}

// GenerateSalt returns a new random salt sized for the active KDF.
func (p *PasswordKeyProvider) GenerateSalt() ([]byte, error) {
	saltSize := p.pbkdf2Params.SaltSize
	if p.useArgon2id {
		saltSize = p.argon2Params.SaltSize
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keyprovider: failed to generate salt: %w", err)
	}
	return salt, nil
}

var _ KeyProvider = (*PasswordKeyProvider)(nil)

// DeriveSubkey expands a master secret into a namespaced FF1 key of
// keySize bytes (16, 24, or 32) using HKDF-SHA256, with info binding
// the subkey to its namespace (e.g. a tenant ID or tweak prefix). One
// master secret can therefore back many independent FF1 domains
// without persisting a key per tenant.
func DeriveSubkey(master, info []byte, keySize int) ([]byte, error) {
	switch keySize {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("keyprovider: key size must be 16, 24, or 32 bytes, got %d", keySize)
	}
	if len(master) == 0 {
		return nil, errors.New("keyprovider: master secret cannot be empty")
	}

	reader := hkdf.New(sha256.New, master, nil, info)
	key := make([]byte, keySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("keyprovider: hkdf expansion failed: %w", err)
	}
	return key, nil
}
