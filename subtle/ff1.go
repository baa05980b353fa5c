package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"math/big"
)

// ErrBadInput is returned when a numeral string contains a symbol
// that is not in [0, radix) for the instance's radix. FF1.Encrypt and
// FF1.Decrypt also reject inputs shorter than minInputLen or with a
// domain below minDomainSize, with separate (non-sentinel) errors.
var ErrBadInput = errors.New("subtle: numeral string invalid for radix")

// minDomainSize is the NIST SP 800-38G requirement that radix^n >= 100.
// Some FF1 implementations skip this check; this one enforces it.
const minDomainSize = 100

// minInputLen is the NIST SP 800-38G requirement that n >= 2, enforced
// for the same reason as minDomainSize.
const minInputLen = 2

// FF1 is an immutable FF1 instance bound to a keyed block cipher and a
// radix. It holds no per-call state and is safe to share across
// goroutines without locking. R is the radix implementation
// (Radix or PowerTwoRadix); callers pick one at construction and the
// compiler specializes the Feistel loop for it.
type FF1[R RadixOps] struct {
	block    cipher.Block
	radix    R
	radixBig *big.Int
}

// NewFF1 constructs an FF1 instance from an AES key (16, 24, or 32
// bytes selects AES-128/192/256) and a radix. The radix's big-integer
// form is memoized once here so every Encrypt/Decrypt call reuses it.
func NewFF1[R RadixOps](key []byte, radix R) (*FF1[R], error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("subtle: invalid AES key: %w", err)
	}
	return &FF1[R]{
		block:    block,
		radix:    radix,
		radixBig: radix.BigInt(),
	}, nil
}

// commonParams computes the per-call fixed quantities shared by
// Encrypt and Decrypt: the split point, b, d, and the 16-byte prefix
// P (SP 800-38G Algorithm 7 steps 1-5).
func (f *FF1[R]) commonParams(n, t int) (u, v, b, d int, p [blockSize]byte) {
	u = n / 2
	v = n - u
	b = f.radix.CalculateB(v)
	d = 4*((b+3)/4) + 4

	radix32 := f.radix.Uint32()
	p[0], p[1], p[2] = 1, 2, 1
	p[3] = byte(radix32 >> 16)
	p[4] = byte(radix32 >> 8)
	p[5] = byte(radix32)
	p[6] = 10
	p[7] = byte(u % 256)
	putUint32BE(p[8:12], uint32(n))
	putUint32BE(p[12:16], uint32(t))
	return
}

func putUint32BE(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

// qBase builds the part of Q shared by every round: the tweak
// followed by ((-t-b-1) mod 16) zero bytes (SP 800-38G step 6i).
func qBase(tweak []byte, b int) []byte {
	t := len(tweak)
	zeros := ((-(t + b + 1)) % blockSize + blockSize) % blockSize
	out := make([]byte, t+zeros, t+zeros+1+b)
	copy(out, tweak)
	return out
}

// round computes one Feistel round's PRF output y, given the operand
// numeral string and the round index i. The caller reduces modulo
// radix^m.
func (f *FF1[R]) round(p [blockSize]byte, base []byte, i int, operand NumeralString, b, d int) *big.Int {
	operandBytes := operand.NumRadix(f.radixBig).Bytes()
	q := make([]byte, 0, len(base)+1+b)
	q = append(q, base...)
	q = append(q, byte(i))
	q = append(q, make([]byte, b-len(operandBytes))...)
	q = append(q, operandBytes...)

	pq := make([]byte, 0, blockSize+len(q))
	pq = append(pq, p[:]...)
	pq = append(pq, q...)

	r := prf(f.block, pq)
	s := expandS(f.block, r, d)
	return new(big.Int).SetBytes(s)
}

// Encrypt implements the FF1.Encrypt operation of SP 800-38G: ten
// Feistel rounds over x, tweaked by tweak. Returns ErrBadInput if any
// symbol of x is not in [0, radix).
func (f *FF1[R]) Encrypt(tweak []byte, x NumeralString) (NumeralString, error) {
	if err := f.validate(x); err != nil {
		return nil, err
	}

	n, t := x.Len(), len(tweak)
	u, v, b, d, p := f.commonParams(n, t)
	a, bb := x.Split(u)
	base := qBase(tweak, b)

	for i := 0; i < 10; i++ {
		m := u
		if i%2 != 0 {
			m = v
		}

		y := f.round(p, base, i, bb, b, d)

		c := a.NumRadix(f.radixBig)
		c.Add(c, y)
		c.Mod(c, pow(f.radixBig, m))
		cc := StrRadix(c, f.radixBig, m)

		a, bb = bb, cc
	}

	return Concat(a, bb), nil
}

// Decrypt implements the FF1.Decrypt operation of SP 800-38G: the
// mirror of Encrypt, running the ten rounds in reverse order and
// subtracting instead of adding.
func (f *FF1[R]) Decrypt(tweak []byte, x NumeralString) (NumeralString, error) {
	if err := f.validate(x); err != nil {
		return nil, err
	}

	n, t := x.Len(), len(tweak)
	u, v, b, d, p := f.commonParams(n, t)
	a, bb := x.Split(u)
	base := qBase(tweak, b)

	for i := 9; i >= 0; i-- {
		m := u
		if i%2 != 0 {
			m = v
		}

		y := f.round(p, base, i, a, b, d)

		// Mod is Euclidean, so c is already non-negative after the
		// subtraction even when NUM(B) < y.
		c := bb.NumRadix(f.radixBig)
		c.Sub(c, y)
		c.Mod(c, pow(f.radixBig, m))
		cc := StrRadix(c, f.radixBig, m)

		bb, a = a, cc
	}

	return Concat(a, bb), nil
}

// validate checks the FF1 preconditions: every symbol in range,
// n >= 2, and radix^n >= 100.
func (f *FF1[R]) validate(x NumeralString) error {
	if !x.IsValid(f.radix) {
		return fmt.Errorf("%w", ErrBadInput)
	}
	n := x.Len()
	if n < minInputLen {
		return fmt.Errorf("subtle: numeral string length %d below minimum %d", n, minInputLen)
	}
	domain := pow(f.radixBig, n)
	if domain.Cmp(big.NewInt(minDomainSize)) < 0 {
		return fmt.Errorf("subtle: domain size radix^n = %s below minimum %d", domain.String(), minDomainSize)
	}
	return nil
}

// pow computes base^exp for a non-negative exponent via repeated
// multiplication, which is adequate for exponents of the size FF1
// uses.
func pow(base *big.Int, exp int) *big.Int {
	res := big.NewInt(1)
	for i := 0; i < exp; i++ {
		res.Mul(res, base)
	}
	return res
}
