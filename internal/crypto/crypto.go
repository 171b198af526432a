package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

// keyLen — длина ключа для AES-256 (в байтах).
const keyLen = 32

// keySalt — фиксированная соль для вывода серверного ключа из секрета.
const keySalt = "passvault/key/v1"

// DeriveKey разворачивает секрет из конфигурации в ключ AES-256 через scrypt.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("empty vault secret")
	}
	return scrypt.Key([]byte(secret), []byte(keySalt), 1<<15, 8, 1, keyLen)
}

// Encrypt шифрует данные plain с помощью AES-GCM и заданного ключа.
// Возвращает шифртекст и nonce.
func Encrypt(plain []byte, key []byte) ([]byte, []byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	out := gcm.Seal(nil, nonce, plain, nil)
	return out, nonce, nil
}

// Decrypt расшифровывает шифртекст с использованием AES-GCM, ключа и nonce.
func Decrypt(cipherText []byte, key []byte, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, errors.New("invalid nonce length")
	}
	return gcm.Open(nil, nonce, cipherText, nil)
}
