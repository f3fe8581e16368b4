package totp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
	"unicode/utf8"
)

const (
	// Window is the lifetime of a single code.
	Window = 60 * time.Second
	// Modulus bounds a code when WithStandardTruncation is set.
	Modulus = 1_000_000

	// timestampLayout matches the invariant culture rendering of a date and time, e.g. "10/17/2026 13:45:00".
	timestampLayout = "01/02/2006 15:04:05"
)

// TOTP holds the code for the current window, the code for the window before it, and the seconds until the current window rolls over.
type TOTP struct {
	Seconds  uint32
	Code     uint32
	LastCode uint32
}

type generator struct {
	now      func() time.Time
	standard bool
}

type Opt = func(*generator)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Opt {
	return func(g *generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithStandardTruncation reduces the whole 31-bit value modulo Modulus, so every code is at most six digits.
// Codes generated this way don't match codes generated without it.
func WithStandardTruncation() Opt {
	return func(g *generator) {
		g.standard = true
	}
}

func newGenerator(opts []Opt) *generator {
	g := &generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate computes the TOTP for seed at the current time.
func Generate(seed string, opts ...Opt) TOTP {
	g := newGenerator(opts)
	return g.generate(seed, g.now())
}

// GenerateAt computes the TOTP for seed at the given instant.
func GenerateAt(seed string, t time.Time, opts ...Opt) TOTP {
	return newGenerator(opts).generate(seed, t)
}

// Validate reports whether code is the current code for seed.
// If allowLastCode is true, the code for the previous window is accepted too.
func Validate(seed string, code uint32, allowLastCode bool, opts ...Opt) bool {
	return Generate(seed, opts...).Validate(code, allowLastCode)
}

// Validate reports whether code matches Code, or LastCode when allowLastCode is given as true.
func (t TOTP) Validate(code uint32, allowLastCode ...bool) bool {
	if code == t.Code {
		return true
	}
	return len(allowLastCode) > 0 && allowLastCode[0] && code == t.LastCode
}

func (g *generator) generate(seed string, now time.Time) TOTP {
	now = now.UTC()
	window := now.Truncate(time.Minute)
	msg := asciiBytes(seed)
	return TOTP{
		Seconds:  uint32(60 - now.Second()),
		Code:     g.code(window, msg),
		LastCode: g.code(window.Add(-Window), msg),
	}
}

func (g *generator) code(window time.Time, msg []byte) uint32 {
	mac := hmac.New(sha256.New, []byte(window.Format(timestampLayout)))
	mac.Write(msg)
	sum := mac.Sum(nil)
	offset := sum[len(sum)-1] & 0xf
	b := sum[offset : offset+4]
	if g.standard {
		return (binary.BigEndian.Uint32(b) & 0x7fffffff) % Modulus
	}
	// Only the low byte is reduced, which leaves it unchanged.
	return uint32(b[0]&0x7f)<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])%Modulus
}

// asciiBytes encodes s as 7-bit ASCII, replacing anything outside that range with '?'.
func asciiBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		out = append(out, '?')
	}
	return out
}
