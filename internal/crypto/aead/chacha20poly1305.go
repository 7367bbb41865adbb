package aead

import (
	"fmt"
	"pngme/internal/crypto"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encrypts provided plain text with XChaCha20-Poly1305.
// Nonce must be 24 bytes and unique per key. Zeroes key memory after encryption.
func Encrypt(plaintext, key, nonce, additional []byte) (ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	crypto.Memzero(key)
	if err != nil {
		err = fmt.Errorf("failed creation of AEAD: %w", err)
		return
	}
	if len(nonce) != aead.NonceSize() {
		err = fmt.Errorf("nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
		return
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, additional)
	return
}

// Decrypts provided cipher text with XChaCha20-Poly1305.
// Zeroes key memory after decryption.
func Decrypt(ciphertext, key, nonce, additional []byte) (plaintext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	crypto.Memzero(key)
	if err != nil {
		err = fmt.Errorf("failed creation of AEAD: %w", err)
		return
	}
	if len(nonce) != aead.NonceSize() {
		err = fmt.Errorf("nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
		return
	}
	if len(ciphertext) < aead.Overhead() {
		err = fmt.Errorf("cipher text shorter than authentication tag")
		return
	}

	plaintext, err = aead.Open(nil, nonce, ciphertext, additional)
	if err != nil {
		err = fmt.Errorf("failed decryption of cipher text: %w", err)
		return
	}
	return
}
