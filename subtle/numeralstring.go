package subtle

import "math/big"

// NumeralString is the reference numeral-string representation: an
// ordered sequence of symbols, each in [0, 65535], big-endian
// positional notation (the leftmost symbol is most significant). An
// implementer is free to add a byte- or nibble-packed representation
// as long as it honors the same contract; FF1 only relies on
// this one.
type NumeralString []uint16

// IsValid reports whether every symbol of x satisfies radix.CheckInRange.
func (x NumeralString) IsValid(radix RadixOps) bool {
	for _, s := range x {
		if !radix.CheckInRange(uint32(s)) {
			return false
		}
	}
	return true
}

// Len returns the number of symbols in x.
func (x NumeralString) Len() int {
	return len(x)
}

// Split divides x into a front numeral string of length u and a back
// numeral string of length len(x)-u. The returned slices share no
// backing array with x, so later in-place edits of either half cannot
// alias the original.
func (x NumeralString) Split(u int) (front, back NumeralString) {
	front = make(NumeralString, u)
	back = make(NumeralString, len(x)-u)
	copy(front, x[:u])
	copy(back, x[u:])
	return front, back
}

// Concat returns a || b as a single numeral string.
func Concat(a, b NumeralString) NumeralString {
	out := make(NumeralString, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

// NumRadix interprets x as a big-endian positional integer in the
// given radix (NUM(X, R) in the glossary).
func (x NumeralString) NumRadix(radixBig *big.Int) *big.Int {
	res := new(big.Int)
	for _, s := range x {
		res.Mul(res, radixBig)
		res.Add(res, big.NewInt(int64(s)))
	}
	return res
}

// StrRadix is the inverse of NumRadix: it represents a non-negative
// integer x as an m-symbol big-endian numeral string in the given
// radix (STR(x, R, m)). It fills from the least significant symbol
// upward, so the result is automatically zero-padded on the left; if
// x >= radix^m the high symbols are silently truncated by the same
// positional algorithm. FF1 only ever calls this with
// x < radix^m by construction, so callers reusing it directly must
// enforce that precondition themselves.
func StrRadix(x *big.Int, radixBig *big.Int, m int) NumeralString {
	out := make(NumeralString, m)
	rem := new(big.Int).Set(x)
	var mod big.Int
	for i := m - 1; i >= 0; i-- {
		rem.DivMod(rem, radixBig, &mod)
		out[i] = uint16(mod.Uint64())
	}
	return out
}
