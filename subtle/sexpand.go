package subtle

import "crypto/cipher"

// expandS expands the 16-byte PRF output r into exactly d bytes:
// S_0 = r, and for j = 1, 2, ... (starting at 1, not 0) until the
// total length reaches d, S_j = AES_K(r xor [j]_16) where [j]_16 is j
// encoded as a 16-byte big-endian integer. The concatenation is
// truncated to exactly d bytes (SP 800-38G Algorithm 7 step 6iii-iv).
func expandS(block cipher.Block, r [blockSize]byte, d int) []byte {
	s := make([]byte, 0, d+blockSize)
	s = append(s, r[:]...)

	var block16 [blockSize]byte
	for j := uint64(1); len(s) < d; j++ {
		block16 = [blockSize]byte{}
		putUint64BE(block16[8:], j)
		for i := 0; i < blockSize; i++ {
			block16[i] ^= r[i]
		}
		var enc [blockSize]byte
		block.Encrypt(enc[:], block16[:])
		s = append(s, enc[:]...)
	}

	return s[:d]
}

func putUint64BE(dst []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}
