package cbc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"github.com/dgryski/go-rc2"
	"github.com/saylorsolutions/symcrypt/internal/pkcs7"
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

// RC2EffectiveKeyBits is the RC2 effective key length, so the whole 16 byte key is significant.
const RC2EffectiveKeyBits = 128

// Provider encrypts buffers with a standard block cipher in CBC mode with PKCS #7 padding.
type Provider struct {
	alg   keymat.Algorithm
	block cipher.Block
	iv    []byte
}

// NewAES creates an AES-256-CBC Provider from a 32 byte key and 16 byte IV.
func NewAES(key, iv []byte) (*Provider, error) {
	return newProvider(keymat.AESCBC, key, iv)
}

// NewTripleDES creates a TripleDES-CBC Provider from a 24 byte key and 8 byte IV.
func NewTripleDES(key, iv []byte) (*Provider, error) {
	return newProvider(keymat.TripleDESCBC, key, iv)
}

// NewRC2 creates an RC2-CBC Provider from a 16 byte key and 8 byte IV, using all 128 key bits.
func NewRC2(key, iv []byte) (*Provider, error) {
	return newProvider(keymat.RC2CBC, key, iv)
}

// FromPassword derives key material for alg from password, which must be one of the CBC algorithms.
func FromPassword(alg keymat.Algorithm, password string) (*Provider, error) {
	km, err := keymat.NewKeyMaterial(alg, password)
	if err != nil {
		return nil, err
	}
	return FromKeyMaterial(km)
}

// FromKeyMaterial creates a Provider for the algorithm named by km.
func FromKeyMaterial(km *keymat.KeyMaterial) (*Provider, error) {
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return newProvider(km.Algorithm, km.Key, km.IV)
}

// IsCBC reports whether alg is one of the algorithms this package adapts.
func IsCBC(alg keymat.Algorithm) bool {
	switch alg {
	case keymat.AESCBC, keymat.TripleDESCBC, keymat.RC2CBC:
		return true
	default:
		return false
	}
}

func newProvider(alg keymat.Algorithm, key, iv []byte) (*Provider, error) {
	if !IsCBC(alg) {
		return nil, fmt.Errorf("%w: %s is not a CBC algorithm", keymat.ErrUnknownAlgorithm, alg)
	}
	if err := keymat.CheckSizes(alg, key, iv); err != nil {
		return nil, err
	}
	var (
		block cipher.Block
		err   error
	)
	switch alg {
	case keymat.AESCBC:
		block, err = aes.NewCipher(key)
	case keymat.TripleDESCBC:
		block, err = des.NewTripleDESCipher(key)
	case keymat.RC2CBC:
		block, err = rc2.New(key, RC2EffectiveKeyBits)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keymat.ErrInvalidKeyMaterial, err)
	}
	return &Provider{
		alg:   alg,
		block: block,
		iv:    append([]byte(nil), iv...),
	}, nil
}

// Algorithm reports which block cipher this Provider uses.
func (p *Provider) Algorithm() keymat.Algorithm {
	return p.alg
}

// Encrypt pads msg and encrypts it. The output is always between 1 and BlockSize bytes longer than msg.
func (p *Provider) Encrypt(msg []byte) ([]byte, error) {
	padded := pkcs7.Pad(msg, p.block.BlockSize())
	cipher.NewCBCEncrypter(p.block, p.iv).CryptBlocks(padded, padded)
	return padded, nil
}

// Decrypt decrypts msg and strips its padding.
func (p *Provider) Decrypt(msg []byte) ([]byte, error) {
	bs := p.block.BlockSize()
	if len(msg) == 0 || len(msg)%bs != 0 {
		return nil, fmt.Errorf("%w: %s ciphertext length %d is not a positive multiple of %d", keymat.ErrMalformedCiphertext, p.alg, len(msg), bs)
	}
	out := make([]byte, len(msg))
	cipher.NewCBCDecrypter(p.block, p.iv).CryptBlocks(out, msg)
	plain, err := pkcs7.Unpad(out, bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keymat.ErrMalformedCiphertext, err)
	}
	return plain, nil
}
