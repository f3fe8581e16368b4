/*
Package xtea implements the XTEA block cipher along with a length-prefixed framing that supports arbitrary-length messages.

# How it works:

Cipher is a 64-bit block, 32 round Feistel network keyed by four 32-bit subkeys, and implements crypto/cipher.Block.

Provider frames the plaintext before encryption:

	| length (4 bytes, little-endian) | plaintext | zero padding to a multiple of 8 |

Each 8 byte block of the frame is then encrypted on its own.
Decryption reverses each block, reads the length, and discards the padding.

# General guidelines:
  - Blocks are not chained, so identical plaintext blocks at block-aligned positions produce identical ciphertext blocks. Compose your own mode on top of Cipher if that matters.
  - The ciphertext is not authenticated. A modified ciphertext usually decrypts to garbage rather than failing.
  - A password-derived key is 128 bytes for compatibility, but only the first 16 bytes are used.
*/
package xtea
