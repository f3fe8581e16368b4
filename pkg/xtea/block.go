package xtea

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

const (
	// BlockSize is the XTEA block size in bytes.
	BlockSize = 8
	// CoreKeySize is the number of key bytes that are actually used, as four 32-bit subkeys.
	CoreKeySize = 16
	// KeySize is the length of a key derived from a password. Only the first CoreKeySize bytes are significant.
	KeySize = 128

	rounds = 32
	delta  = 0x9E3779B9
	// finalSum is delta*rounds truncated to 32 bits.
	finalSum = (delta * rounds) & 0xFFFFFFFF
)

var _ cipher.Block = (*Cipher)(nil)

// Cipher is a single XTEA block cipher instance.
// Each 8 byte block is read as two little-endian 32-bit halves.
type Cipher struct {
	k [4]uint32
}

// NewCipher creates a Cipher from either a CoreKeySize key or a full KeySize derived key.
// Subkeys are read little-endian from the first CoreKeySize bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != CoreKeySize && len(key) != KeySize {
		return nil, fmt.Errorf("%w: xtea key must be %d or %d bytes, but got %d", keymat.ErrInvalidKeyMaterial, CoreKeySize, KeySize, len(key))
	}
	c := new(Cipher)
	for i := range c.k {
		c.k[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return c, nil
}

func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block of src into dst. dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	v0, v1 := c.encryptBlock(binary.LittleEndian.Uint32(src), binary.LittleEndian.Uint32(src[4:]))
	binary.LittleEndian.PutUint32(dst, v0)
	binary.LittleEndian.PutUint32(dst[4:], v1)
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	v0, v1 := c.decryptBlock(binary.LittleEndian.Uint32(src), binary.LittleEndian.Uint32(src[4:]))
	binary.LittleEndian.PutUint32(dst, v0)
	binary.LittleEndian.PutUint32(dst[4:], v1)
}

// All arithmetic relies on uint32 wraparound.
func (c *Cipher) encryptBlock(v0, v1 uint32) (uint32, uint32) {
	var sum uint32
	for i := 0; i < rounds; i++ {
		v0 += (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.k[sum&3])
		sum += delta
		v1 += (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.k[(sum>>11)&3])
	}
	return v0, v1
}

func (c *Cipher) decryptBlock(v0, v1 uint32) (uint32, uint32) {
	sum := uint32(finalSum)
	for i := 0; i < rounds; i++ {
		v1 -= (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.k[(sum>>11)&3])
		sum -= delta
		v0 -= (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.k[sum&3])
	}
	return v0, v1
}
