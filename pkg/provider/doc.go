/*
Package provider exposes every supported symmetric algorithm through a single Provider interface.

# How it works:

A caller picks a keymat.Algorithm and supplies a password (New) or pre-derived key material (FromKeyMaterial).
The key material is derived, handed to the concrete implementation, and from then on Encrypt and Decrypt are pure functions of the key material and the input buffer.

	p, err := provider.New(keymat.AESCBC, "shared secret")
	if err != nil {
		return err
	}
	ciphertext, err := p.Encrypt(plaintext)

# General guidelines:
  - None of these algorithms authenticate the ciphertext. Add a MAC if tampering matters.
  - RC4, MultiXOR, and XTEA (with its unchained blocks) are provided for compatibility, not for protecting anything valuable.
  - Each Provider owns its key material. Providers may be created freely, and are safe for sequential use by one caller.
*/
package provider
