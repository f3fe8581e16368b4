package provider

import (
	"bytes"
	"testing"

	"github.com/saylorsolutions/symcrypt/pkg/keymat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleData = keymat.EncodePassword("Hello, I am a secret UTF32 message!")

func TestNew_RoundTrip(t *testing.T) {
	for _, alg := range keymat.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			p, err := New(alg, "Hello World")
			require.NoError(t, err)

			for _, size := range []int{0, 1, 7, 8, 9, 15, 16, 17, 255, 256, 1000} {
				msg := bytes.Repeat([]byte{byte(size)}, size)
				enc, err := p.Encrypt(msg)
				require.NoError(t, err)
				dec, err := p.Decrypt(enc)
				require.NoError(t, err)
				assert.Equal(t, msg, dec, "size %d", size)
			}

			enc, err := p.Encrypt(sampleData)
			require.NoError(t, err)
			assert.NotEqual(t, sampleData, enc)
			dec, err := p.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, sampleData, dec)
		})
	}
}

func TestNew_CrossInstance(t *testing.T) {
	for _, alg := range keymat.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			a, err := New(alg, "interop")
			require.NoError(t, err)
			b, err := New(alg, "interop")
			require.NoError(t, err)

			enc, err := a.Encrypt(sampleData)
			require.NoError(t, err)
			encB, err := b.Encrypt(sampleData)
			require.NoError(t, err)
			assert.Equal(t, enc, encB, "Encryption is deterministic for identical key material")

			dec, err := b.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, sampleData, dec)
		})
	}
}

func TestNew_Isolation(t *testing.T) {
	for _, alg := range keymat.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			a, err := New(alg, "first password")
			require.NoError(t, err)
			before, err := a.Encrypt(sampleData)
			require.NoError(t, err)

			b, err := New(alg, "second password")
			require.NoError(t, err)
			other, err := b.Encrypt(sampleData)
			require.NoError(t, err)

			after, err := a.Encrypt(sampleData)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.NotEqual(t, before, other)
		})
	}
}

func TestFromKeyMaterial(t *testing.T) {
	km, err := keymat.NewKeyMaterial(keymat.TripleDESCBC, "material")
	require.NoError(t, err)
	data, err := km.MarshalBinary()
	require.NoError(t, err)

	p, err := FromKeyMaterial(km)
	require.NoError(t, err)
	enc, err := p.Encrypt(sampleData)
	require.NoError(t, err)

	// Mutating the key material after construction must not affect the provider.
	km.Key[0] ^= 0xff
	km.IV[0] ^= 0xff
	again, err := p.Encrypt(sampleData)
	require.NoError(t, err)
	assert.Equal(t, enc, again)

	var imported keymat.KeyMaterial
	require.NoError(t, imported.UnmarshalBinary(data))
	q, err := FromKeyMaterial(&imported)
	require.NoError(t, err)
	dec, err := q.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, sampleData, dec)
}

func TestFromKeyMaterial_Neg(t *testing.T) {
	_, err := FromKeyMaterial(nil)
	assert.ErrorIs(t, err, keymat.ErrInvalidKeyMaterial)
	_, err = FromKeyMaterial(&keymat.KeyMaterial{Algorithm: keymat.AESCBC, Key: make([]byte, 31), IV: make([]byte, 16)})
	assert.ErrorIs(t, err, keymat.ErrInvalidKeyMaterial)
	_, err = FromKeyMaterial(&keymat.KeyMaterial{Algorithm: 0x42})
	assert.ErrorIs(t, err, keymat.ErrUnknownAlgorithm)
	_, err = New(keymat.Algorithm(0), "password")
	assert.ErrorIs(t, err, keymat.ErrUnknownAlgorithm)
}

func TestParse(t *testing.T) {
	p, err := Parse("rc4", "jumanji")
	require.NoError(t, err)
	msg := []byte("Stones are all changed now in Nine grounds out of ten..")
	enc, err := p.Encrypt(msg)
	require.NoError(t, err)
	dec, err := p.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, msg, dec)

	_, err = Parse("rot13", "jumanji")
	assert.ErrorIs(t, err, keymat.ErrUnknownAlgorithm)
}

func TestDecrypt_Malformed(t *testing.T) {
	for _, alg := range []keymat.Algorithm{keymat.AESCBC, keymat.TripleDESCBC, keymat.RC2CBC, keymat.XTEA} {
		t.Run(alg.String(), func(t *testing.T) {
			p, err := New(alg, "malformed")
			require.NoError(t, err)
			_, err = p.Decrypt([]byte{1, 2, 3})
			assert.ErrorIs(t, err, keymat.ErrMalformedCiphertext)
		})
	}
}
