package provider

import (
	"fmt"

	"github.com/saylorsolutions/symcrypt/pkg/cbc"
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
	"github.com/saylorsolutions/symcrypt/pkg/rc4"
	"github.com/saylorsolutions/symcrypt/pkg/xor"
	"github.com/saylorsolutions/symcrypt/pkg/xtea"
)

// Provider is the capability shared by every supported algorithm.
// For any Provider p and buffer x, p.Decrypt(p.Encrypt(x)) returns x.
type Provider interface {
	// Encrypt transforms a plaintext buffer into ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)
	// Decrypt reverses Encrypt. Malformed input results in an error wrapping keymat.ErrMalformedCiphertext.
	Decrypt(ciphertext []byte) ([]byte, error)
}

var (
	_ Provider = (*cbc.Provider)(nil)
	_ Provider = (*rc4.Provider)(nil)
	_ Provider = (*xor.Provider)(nil)
	_ Provider = (*xtea.Provider)(nil)
)

// New derives key material for alg from password and constructs the matching Provider.
// Providers constructed independently with the same arguments interoperate.
func New(alg keymat.Algorithm, password string) (Provider, error) {
	km, err := keymat.NewKeyMaterial(alg, password)
	if err != nil {
		return nil, err
	}
	return FromKeyMaterial(km)
}

// FromKeyMaterial constructs the Provider for km.Algorithm.
// The Provider keeps its own copy of the key material.
func FromKeyMaterial(km *keymat.KeyMaterial) (Provider, error) {
	if err := km.Validate(); err != nil {
		return nil, err
	}
	switch km.Algorithm {
	case keymat.AESCBC, keymat.TripleDESCBC, keymat.RC2CBC:
		return cbc.FromKeyMaterial(km)
	case keymat.RC4:
		return rc4.FromKeyMaterial(km)
	case keymat.MultiXOR:
		return xor.FromKeyMaterial(km)
	case keymat.XTEA:
		return xtea.FromKeyMaterial(km)
	default:
		return nil, fmt.Errorf("%w: %s", keymat.ErrUnknownAlgorithm, km.Algorithm)
	}
}

// Parse is a convenience for New with an algorithm name, as accepted by keymat.ParseAlgorithm.
func Parse(name, password string) (Provider, error) {
	alg, err := keymat.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return New(alg, password)
}
