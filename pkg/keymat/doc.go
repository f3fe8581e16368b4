/*
Package keymat derives deterministic key material from a password for each supported symmetric algorithm.

# How it works:

The password is encoded as UTF-32 little-endian (no byte order mark).
That encoding, byte-reversed, is used as the salt for PBKDF2-HMAC-SHA1 with DefaultIterations rounds.
The output stream is then split into a key and, for CBC algorithms, an IV, in that order.

Because nothing random is involved, two parties that share a password and agree on an Algorithm always arrive at the same KeyMaterial.

	| Algorithm    | Key bytes | IV bytes |
	|--------------|-----------|----------|
	| AESCBC       | 32        | 16       |
	| TripleDESCBC | 24        | 8        |
	| RC2CBC       | 16        | 8        |
	| RC4          | 256       | -        |
	| MultiXOR     | 100       | -        |
	| XTEA         | 128       | -        |

# General guidelines:
  - The salt is derived from the password, so identical passwords produce identical keys across every user of this package. Use a unique password per purpose.
  - The iteration count is intentionally low. This is for interoperability, not for resisting offline guessing.
  - KeyMaterial may be exported with MarshalBinary and imported with UnmarshalBinary to skip derivation on the other end.
*/
package keymat
