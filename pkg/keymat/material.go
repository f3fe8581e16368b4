package keymat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	bin "github.com/saylorsolutions/binmap"
)

const (
	magicBytes        uint16 = 0x5cc5
	magicBytesInverse uint16 = 0xc55c
)

// KeyMaterial is the key, and optionally IV, that parameterizes one provider instance.
// Providers copy what they need out of it, so mutating a KeyMaterial after construction has no effect on them.
type KeyMaterial struct {
	Algorithm Algorithm
	Key       []byte
	IV        []byte
}

// NewKeyMaterial derives KeyMaterial for alg from a password using the default Deriver.
func NewKeyMaterial(alg Algorithm, password string) (*KeyMaterial, error) {
	return defaultDeriver.KeyMaterial(alg, password)
}

// FromBytes wraps externally supplied key and IV bytes, validating their lengths for alg.
// The given slices are copied.
func FromBytes(alg Algorithm, key, iv []byte) (*KeyMaterial, error) {
	km := &KeyMaterial{
		Algorithm: alg,
		Key:       slices.Clone(key),
		IV:        slices.Clone(iv),
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// Validate checks that the Key and IV lengths exactly match the requirements of the Algorithm.
func (m *KeyMaterial) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil KeyMaterial", ErrInvalidKeyMaterial)
	}
	if !m.Algorithm.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, m.Algorithm)
	}
	return CheckSizes(m.Algorithm, m.Key, m.IV)
}

// Expect validates the KeyMaterial and checks that it was produced for alg.
func (m *KeyMaterial) Expect(alg Algorithm) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Algorithm != alg {
		return fmt.Errorf("%w: expected %s key material, but got %s", ErrInvalidKeyMaterial, alg, m.Algorithm)
	}
	return nil
}

// CheckSizes returns ErrInvalidKeyMaterial if key or iv don't have exactly the lengths alg requires.
func CheckSizes(alg Algorithm, key, iv []byte) error {
	if len(key) != alg.KeySize() {
		return fmt.Errorf("%w: %s key must be %d bytes, but got %d", ErrInvalidKeyMaterial, alg, alg.KeySize(), len(key))
	}
	if len(iv) != alg.IVSize() {
		return fmt.Errorf("%w: %s IV must be %d bytes, but got %d", ErrInvalidKeyMaterial, alg, alg.IVSize(), len(iv))
	}
	return nil
}

// Clone returns a deep copy.
func (m *KeyMaterial) Clone() *KeyMaterial {
	return &KeyMaterial{
		Algorithm: m.Algorithm,
		Key:       slices.Clone(m.Key),
		IV:        slices.Clone(m.IV),
	}
}

type header struct {
	algorithm uint16
	keyLen    uint16
	ivLen     uint16
}

func (h *header) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.algorithm),
		bin.Int(&h.keyLen),
		bin.Int(&h.ivLen),
	)
}

// Write serializes the KeyMaterial as a magic number, a fixed header, and then the key and IV bytes.
func (m *KeyMaterial) Write(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	magic := magicBytes
	if err := bin.Int(&magic).Write(w, binary.BigEndian); err != nil {
		return err
	}
	h := header{
		algorithm: uint16(m.Algorithm),
		keyLen:    uint16(len(m.Key)),
		ivLen:     uint16(len(m.IV)),
	}
	if err := h.mapper().Write(w, binary.BigEndian); err != nil {
		return err
	}
	if _, err := w.Write(m.Key); err != nil {
		return err
	}
	if _, err := w.Write(m.IV); err != nil {
		return err
	}
	return nil
}

// Read replaces the contents of this KeyMaterial with what's read from r.
// A byte-swapped magic number indicates a little-endian header.
func (m *KeyMaterial) Read(r io.Reader) error {
	var (
		magic  uint16
		endian binary.ByteOrder = binary.BigEndian
		h      header
	)
	if err := bin.Int(&magic).Read(r, endian); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	switch magic {
	case magicBytes:
	case magicBytesInverse:
		endian = binary.LittleEndian
	default:
		return fmt.Errorf("%w: unrecognized magic bytes 0x%04x", ErrInvalidHeader, magic)
	}
	if err := h.mapper().Read(r, endian); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	alg := Algorithm(h.algorithm)
	if !alg.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
	key := make([]byte, h.keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return fmt.Errorf("%w: failed to read key: %v", ErrInvalidHeader, err)
	}
	iv := make([]byte, h.ivLen)
	if _, err := io.ReadFull(r, iv); err != nil {
		return fmt.Errorf("%w: failed to read IV: %v", ErrInvalidHeader, err)
	}
	if h.ivLen == 0 {
		iv = nil
	}
	if err := CheckSizes(alg, key, iv); err != nil {
		return err
	}
	m.Algorithm = alg
	m.Key = key
	m.IV = iv
	return nil
}

func (m *KeyMaterial) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *KeyMaterial) UnmarshalBinary(data []byte) error {
	return m.Read(bytes.NewReader(data))
}
