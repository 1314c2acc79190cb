package core

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"
	"strings"
)

// GetHashImpl gets an implementation of hash.Hash for the given hash type string
func GetHashImpl(hashType string) (hash.Hash, error) {
	switch strings.ToLower(hashType) {
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "md5":
		return md5.New(), nil
	}
	return nil, errors.New("hash implementation not found: " + hashType)
}

// DecodeHash converts a stored hex digest to raw bytes
func DecodeHash(digest string) ([]byte, error) {
	return hex.DecodeString(strings.TrimSpace(digest))
}

// EncodeHash is the inverse of DecodeHash
func EncodeHash(sum []byte) string {
	return hex.EncodeToString(sum)
}

// HashMatches compares a computed sum with the expected digest byte for byte
func HashMatches(expected string, sum []byte) bool {
	want, err := DecodeHash(expected)
	if err != nil {
		return false
	}
	return bytes.Equal(want, sum)
}
