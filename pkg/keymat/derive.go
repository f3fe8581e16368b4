package keymat

import (
	"crypto/sha1"
	"errors"
	"slices"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/encoding/unicode/utf32"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used by every provider constructor.
	DefaultIterations = 10
	// DefaultEntropyLength is the number of bytes returned by Entropy when no length is given.
	DefaultEntropyLength = 32
)

// Deriver stretches a password into deterministic pseudo-random bytes.
// The salt is the byte-reversed encoding of the password itself, so the same password always yields the same output.
type Deriver struct {
	iterations int
}

type DeriverOpt = func(*Deriver) error

// SetIterations overrides DefaultIterations.
// Key material derived with a different count won't interoperate with the default providers.
func SetIterations(iterations int) DeriverOpt {
	return func(d *Deriver) error {
		if iterations < 1 {
			return errors.New("iterations must be at least 1")
		}
		d.iterations = iterations
		return nil
	}
}

// NewDeriver creates a Deriver using DefaultIterations unless overridden with SetIterations.
func NewDeriver(opts ...DeriverOpt) (*Deriver, error) {
	d := &Deriver{
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

var defaultDeriver = &Deriver{iterations: DefaultIterations}

// Derive returns length bytes of PBKDF2-HMAC-SHA1 output for the password.
// Requesting a longer output returns the shorter output as its prefix.
func (d *Deriver) Derive(password string, length int) []byte {
	if length <= 0 {
		return []byte{}
	}
	pass := EncodePassword(password)
	salt := slices.Clone(pass)
	slices.Reverse(salt)
	return pbkdf2.Key(pass, salt, d.iterations, length, sha1.New)
}

// KeyMaterial derives the key, then the IV, for alg from one continuous derivation stream.
func (d *Deriver) KeyMaterial(alg Algorithm, password string) (*KeyMaterial, error) {
	if !alg.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	keySize, ivSize := alg.KeySize(), alg.IVSize()
	stream := d.Derive(password, keySize+ivSize)
	km := &KeyMaterial{
		Algorithm: alg,
		Key:       stream[:keySize:keySize],
	}
	if ivSize > 0 {
		km.IV = stream[keySize:]
	}
	return km, nil
}

// Derive uses the default Deriver to stretch password into length bytes.
func Derive(password string, length int) []byte {
	return defaultDeriver.Derive(password, length)
}

// Entropy derives pseudo-random bytes from a seed string.
// The length defaults to DefaultEntropyLength.
func Entropy(seed string, length ...int) []byte {
	n := DefaultEntropyLength
	if len(length) > 0 {
		n = length[0]
	}
	return defaultDeriver.Derive(seed, n)
}

// EncodePassword encodes a password as UTF-32 little-endian without a byte order mark.
// Invalid UTF-8 sequences are encoded as U+FFFD.
func EncodePassword(password string) []byte {
	enc := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes([]byte(password))
	if err != nil {
		// The encoder replaces invalid input rather than failing, so this is unreachable in practice.
		panic("keymat: failed to encode password: " + err.Error())
	}
	return out
}
