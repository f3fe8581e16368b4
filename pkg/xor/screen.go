package xor

import (
	"fmt"

	"github.com/saylorsolutions/symcrypt/pkg/keymat"
)

// screen walks a repeating key like a ring buffer, starting at an offset.
type screen struct {
	key  []byte
	init int
	cur  int
}

func newScreen(key []byte, offset ...int) (*screen, error) {
	if len(key) == 0 {
		return nil, keymat.ErrEmptyKey
	}
	s := &screen{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= len(key) {
			return nil, fmt.Errorf("offset %d out of range for provided key of len %d", offset[0], len(key))
		}
		s.init = offset[0]
		s.cur = s.init
	}
	return s, nil
}

func (s *screen) apply(b byte) byte {
	b ^= s.key[s.cur]
	s.cur++
	if s.cur == len(s.key) {
		s.cur = 0
	}
	return b
}

// applyAll screens src into dst, which must be at least as long as src.
func (s *screen) applyAll(dst, src []byte) {
	for i, b := range src {
		dst[i] = s.apply(b)
	}
}

func (s *screen) reset() {
	s.cur = s.init
}
