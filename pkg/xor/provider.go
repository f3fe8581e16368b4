package xor

import (
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

// KeySize is the length of a key derived from a password.
const KeySize = 100

// Provider applies a repeating-key XOR to whole buffers.
// Encrypt and Decrypt are the same operation.
type Provider struct {
	key []byte
}

// New creates a Provider with an explicit key of any positive length.
// The key is copied.
func New(key []byte) (*Provider, error) {
	if len(key) == 0 {
		return nil, keymat.ErrEmptyKey
	}
	return &Provider{key: copyKey(key)}, nil
}

// FromPassword creates a Provider with a KeySize key derived from password.
func FromPassword(password string) (*Provider, error) {
	km, err := keymat.NewKeyMaterial(keymat.MultiXOR, password)
	if err != nil {
		return nil, err
	}
	return FromKeyMaterial(km)
}

// FromKeyMaterial creates a Provider from MultiXOR KeyMaterial.
func FromKeyMaterial(km *keymat.KeyMaterial) (*Provider, error) {
	if err := km.Expect(keymat.MultiXOR); err != nil {
		return nil, err
	}
	return New(km.Key)
}

// Encrypt returns msg XORed with the key, which restarts at index 0 for every call.
func (p *Provider) Encrypt(msg []byte) ([]byte, error) {
	scr, err := newScreen(p.key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(msg))
	scr.applyAll(out, msg)
	return out, nil
}

// Decrypt is identical to Encrypt.
func (p *Provider) Decrypt(msg []byte) ([]byte, error) {
	return p.Encrypt(msg)
}
