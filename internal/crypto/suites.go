package crypto

import (
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

type SuiteInfo struct {
	Name           string
	SaltSize       int
	KeySize        int
	NonceSize      int
	CipherOverhead int
}

// Passphrase sealing suite used by envelope version 1
const SealSuiteID uint8 = 1

const saltSize int = 16

var cryptoSuiteMu sync.Mutex
var cryptoSuiteMap = map[uint8]SuiteInfo{
	SealSuiteID: {
		Name:           "argon2id-xchacha20poly1305",
		SaltSize:       saltSize,
		KeySize:        chacha20poly1305.KeySize,
		NonceSize:      chacha20poly1305.NonceSizeX,
		CipherOverhead: chacha20poly1305.Overhead,
	},
}

// Query crypto suite (concurrent safe)
func GetSuiteInfo(id uint8) (info SuiteInfo, validID bool) {
	cryptoSuiteMu.Lock()
	defer cryptoSuiteMu.Unlock()
	info, validID = cryptoSuiteMap[id]
	return
}
