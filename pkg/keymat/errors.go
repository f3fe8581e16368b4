package keymat

import "errors"

var (
	// ErrInvalidKeyMaterial is returned at construction when a key or IV doesn't have the exact length an algorithm requires.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrMalformedCiphertext is returned at decryption when the input can't have been produced by the matching Encrypt.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrEmptyKey is returned when a stream cipher is given a zero-length key.
	ErrEmptyKey = errors.New("cannot use empty key")
	// ErrUnknownAlgorithm is returned for an Algorithm id or name that isn't supported.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrInvalidHeader is returned when a serialized KeyMaterial can't be read.
	ErrInvalidHeader = errors.New("invalid key material header")
)
