// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault encrypts account profiles for redistribution and installs
// them as working configuration.
//
// The blob format is AES in ECB mode with PKCS#7 padding, keyed by the
// password itself: the password is padded with '0' (or truncated) to 32
// characters and base64 decoded into a 24 byte key. There is no salt, no
// key stretching and no authentication tag. Because of the padding, a
// password and the same password followed by '0' characters derive the same
// key, as do passwords that only differ after the 32nd character. The format
// is kept so existing bundles stay readable; do not use it for production
// keys.
package vault

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	keyChars   = 32
	keyPadding = "0"
)

var (
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidPassword  = errors.New("password must only use base64 characters (A-Z a-z 0-9 + /)")
)

// Encrypt returns the base64 encoded ciphertext of plaintext under password.
func Encrypt(plaintext string, password string) (string, error) {
	key, err := deriveKey(password)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += block.BlockSize() {
		block.Encrypt(out[i:], padded[i:])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. A wrong password is only detected when it breaks
// the padding; otherwise the result is garbage.
func Decrypt(blob string, password string) (string, error) {
	key, err := deriveKey(password)
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	size := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%size != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a multiple of %d", ErrDecryptionFailed, len(ciphertext), size)
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += size {
		block.Decrypt(out[i:], ciphertext[i:])
	}
	plain, err := pkcs7Unpad(out, size)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func deriveKey(password string) ([]byte, error) {
	if len(password) > keyChars {
		password = password[:keyChars]
	}
	password += strings.Repeat(keyPadding, keyChars-len(password))
	key, err := base64.StdEncoding.DecodeString(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPassword, err)
	}
	return key, nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
		}
	}
	return b[:len(b)-n], nil
}

// ValidatePassword reports whether password can key a vault.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: empty password", ErrInvalidPassword)
	}
	_, err := deriveKey(password)
	return err
}
