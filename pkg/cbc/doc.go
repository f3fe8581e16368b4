/*
Package cbc adapts AES, TripleDES, and RC2 to a uniform Encrypt/Decrypt API using CBC chaining and PKCS #7 padding.

The block cipher mathematics come from the standard library (AES, TripleDES) and an RFC 2268 implementation (RC2).
This package is only responsible for sizing the key and IV correctly, and for padding.

# General guidelines:
  - Key and IV lengths must match exactly. Nothing is truncated or zero filled.
  - The IV is fixed per Provider, so encrypting the same plaintext twice produces the same ciphertext.
  - Ciphertext is not authenticated. Tampering is only detected when it happens to corrupt the padding.
*/
package cbc
