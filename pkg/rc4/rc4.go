package rc4

import (
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

// KeySize is the length of a key derived from a password.
const KeySize = 256

// state is the RC4 permutation with its two cursors.
type state struct {
	s    [256]byte
	i, j uint8
}

// schedule runs the key-scheduling algorithm.
// The key is cycled to cover all 256 entries regardless of its length.
func schedule(key []byte) *state {
	st := new(state)
	for i := range st.s {
		st.s[i] = byte(i)
	}
	var j uint8
	for i := 0; i < 256; i++ {
		j += st.s[i] + key[i%len(key)]
		st.s[i], st.s[j] = st.s[j], st.s[i]
	}
	return st
}

// xorKeyStream XORs src with the keystream into dst, advancing the cursors.
func (st *state) xorKeyStream(dst, src []byte) {
	i, j := st.i, st.j
	for n, b := range src {
		i++
		j += st.s[i]
		st.s[i], st.s[j] = st.s[j], st.s[i]
		dst[n] = b ^ st.s[st.s[i]+st.s[j]]
	}
	st.i, st.j = i, j
}

// Provider encrypts whole buffers with RC4.
// Every call starts a fresh keystream, so Encrypt and Decrypt are the same function.
type Provider struct {
	key []byte
}

// New creates a Provider with an explicit key of any positive length.
// Keys longer than 256 bytes are accepted, but only the first 256 bytes affect the keystream.
func New(key []byte) (*Provider, error) {
	if len(key) == 0 {
		return nil, keymat.ErrEmptyKey
	}
	return &Provider{key: append([]byte(nil), key...)}, nil
}

// FromPassword creates a Provider with a KeySize key derived from password.
func FromPassword(password string) (*Provider, error) {
	km, err := keymat.NewKeyMaterial(keymat.RC4, password)
	if err != nil {
		return nil, err
	}
	return FromKeyMaterial(km)
}

// FromKeyMaterial creates a Provider from RC4 KeyMaterial.
func FromKeyMaterial(km *keymat.KeyMaterial) (*Provider, error) {
	if err := km.Expect(keymat.RC4); err != nil {
		return nil, err
	}
	return New(km.Key)
}

func (p *Provider) Encrypt(msg []byte) ([]byte, error) {
	out := make([]byte, len(msg))
	schedule(p.key).xorKeyStream(out, msg)
	return out, nil
}

func (p *Provider) Decrypt(msg []byte) ([]byte, error) {
	return p.Encrypt(msg)
}
