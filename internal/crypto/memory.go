package crypto

// Overwrites secret material in place.
// Slice header and backing array are retained so every reference sees the zeroes.
func Memzero(secret []byte) {
	for i := range secret {
		secret[i] = 0
	}
}
