/*
Package totp generates time-based one-time codes from a shared seed string.

# How it works:

Time is bucketed into 60 second windows in UTC.
The start of the current window is rendered as text ("MM/DD/YYYY hh:mm:ss") and used as the HMAC-SHA256 key over the ASCII bytes of the seed.
The low nibble of the last MAC byte picks an offset, and the four bytes starting there are assembled big-endian with the top bit cleared.

By default the reduction modulo 1,000,000 is applied to the last of those four bytes only, so codes are effectively 31-bit values rather than six digits.
This is kept for compatibility with existing peers. Use WithStandardTruncation to reduce the whole value instead.

The code for the previous window is reported as LastCode, so a code entered just before a rollover can still be accepted.

# General guidelines:
  - Both ends must agree on truncation mode. Mixing modes never validates.
  - Non-ASCII seed characters are replaced with '?' before hashing, so seeds that differ only in those characters produce the same codes.
  - Clocks must be within one window of each other for LastCode to help.
*/
package totp
