package gateway

import "context"

// Cipher encrypts and decrypts serialized stores.
type Cipher interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error)
}

// FileDecrypter is implemented by ciphers that read the encrypted file
// themselves. The gateway prefers it over Cipher.Decrypt.
type FileDecrypter interface {
	DecryptFile(ctx context.Context, path string) ([]byte, error)
}
