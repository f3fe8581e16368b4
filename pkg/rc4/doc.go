// Package rc4 implements the RC4 stream cipher over whole buffers.
//
// RC4 is broken and is only provided for compatibility with peers that use it.
// The key schedule runs again for every Encrypt or Decrypt call, so no keystream state is shared between calls.
package rc4
