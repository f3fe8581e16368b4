package xtea

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	bin "github.com/saylorsolutions/binmap"
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

// prefixSize is the size of the little-endian plaintext length written before the plaintext.
const prefixSize = 4

// Provider encrypts arbitrary-length buffers with XTEA.
// Each 8 byte block is encrypted independently, so repeated plaintext blocks produce repeated ciphertext blocks.
type Provider struct {
	block *Cipher
}

// New creates a Provider from a CoreKeySize or KeySize key.
func New(key []byte) (*Provider, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Provider{block: c}, nil
}

// FromPassword creates a Provider with a KeySize key derived from password.
func FromPassword(password string) (*Provider, error) {
	km, err := keymat.NewKeyMaterial(keymat.XTEA, password)
	if err != nil {
		return nil, err
	}
	return FromKeyMaterial(km)
}

// FromKeyMaterial creates a Provider from XTEA KeyMaterial.
func FromKeyMaterial(km *keymat.KeyMaterial) (*Provider, error) {
	if err := km.Expect(keymat.XTEA); err != nil {
		return nil, err
	}
	return New(km.Key)
}

// FramedLen returns the ciphertext length produced for a plaintext of n bytes.
func FramedLen(n int) int {
	return (n + prefixSize + BlockSize - 1) / BlockSize * BlockSize
}

// Encrypt frames msg as a 4 byte little-endian length, msg, and zero padding up to a block boundary, then encrypts each block.
func (p *Provider) Encrypt(msg []byte) ([]byte, error) {
	if uint64(len(msg)) > math.MaxUint32 {
		return nil, fmt.Errorf("message of %d bytes is too long to frame", len(msg))
	}
	var (
		buf    bytes.Buffer
		length = uint32(len(msg))
		total  = FramedLen(len(msg))
	)
	buf.Grow(total)
	if err := bin.Int(&length).Write(&buf, binary.LittleEndian); err != nil {
		return nil, err
	}
	buf.Write(msg)
	buf.Write(make([]byte, total-buf.Len()))

	out := buf.Bytes()
	for i := 0; i < len(out); i += BlockSize {
		p.block.Encrypt(out[i:i+BlockSize], out[i:i+BlockSize])
	}
	return out, nil
}

// Decrypt reverses Encrypt, truncating the result to the framed length.
func (p *Provider) Decrypt(msg []byte) ([]byte, error) {
	if len(msg) == 0 || len(msg)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: xtea ciphertext length %d is not a positive multiple of %d", keymat.ErrMalformedCiphertext, len(msg), BlockSize)
	}
	out := make([]byte, len(msg))
	for i := 0; i < len(msg); i += BlockSize {
		p.block.Decrypt(out[i:i+BlockSize], msg[i:i+BlockSize])
	}
	var length uint32
	if err := bin.Int(&length).Read(bytes.NewReader(out[:prefixSize]), binary.LittleEndian); err != nil {
		return nil, err
	}
	if uint64(length) > uint64(len(out)-prefixSize) {
		return nil, fmt.Errorf("%w: xtea length prefix %d exceeds the %d available bytes", keymat.ErrMalformedCiphertext, length, len(out)-prefixSize)
	}
	end := prefixSize + int(length)
	return out[prefixSize:end:end], nil
}
