/*
Package xor provides a repeating-key XOR "cipher", either over whole buffers with Provider or over streams with Reader and Writer.

Note that this is NOT encryption in any meaningful sense, since it is easily reversible with known plaintext.
This falls squarely under the obfuscation category.
As such, it is NOT recommended for security critical use.

# How it works:

Every input byte is XORed with the next byte of the key.
When the last key byte is used, the first will be used again, operating like a ring buffer.
Provider always starts at the first key byte, so Encrypt and Decrypt are the same function.

Reader and Writer optionally start at an offset within the key, and keep their position across calls until Reset.

# General guidelines:
  - FromPassword derives a 100 byte key. New accepts any non-empty key.
  - Longer keys are better, but have limited usefulness with a short payload.
  - Using securely generated keys with GenKey or GenKeyAndOffset is better than using a password.
*/
package xor
