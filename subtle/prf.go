package subtle

import "crypto/cipher"

const blockSize = 16

// prf computes CBC-MAC over AES using the session key: Y = 0^128,
// then Y <- AES_K(Y xor X_j) for each successive 16-byte block X_j of
// x. The caller (FF1) guarantees len(x) is a positive multiple of 16;
// any other length is a programmer error, not adversarial
// input, so it panics rather than returning an error.
func prf(block cipher.Block, x []byte) [blockSize]byte {
	if len(x) == 0 || len(x)%blockSize != 0 {
		panic("subtle: prf input must be a positive multiple of the block size")
	}

	var y [blockSize]byte
	var xored [blockSize]byte
	for off := 0; off < len(x); off += blockSize {
		for i := 0; i < blockSize; i++ {
			xored[i] = y[i] ^ x[off+i]
		}
		block.Encrypt(y[:], xored[:])
	}
	return y
}
