package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters (RFC 9106 second recommended option)
const (
	Time    uint32 = 1
	Memory  uint32 = 64 * 1024 // KiB
	Threads uint8  = 4
	KeyLen  uint32 = 32

	MinSaltLen int = 8
)

// Derives an AEAD key from a user passphrase
func DeriveKey(passphrase, salt []byte) (key []byte, err error) {
	if len(passphrase) == 0 {
		err = fmt.Errorf("passphrase is empty")
		return
	}
	if len(salt) < MinSaltLen {
		err = fmt.Errorf("salt must be at least %d bytes, got %d", MinSaltLen, len(salt))
		return
	}

	key = argon2.IDKey(passphrase, salt, Time, Memory, Threads, KeyLen)
	return
}
