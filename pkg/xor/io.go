package xor

import (
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and reset the offset position within the key to its initial value.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and reset the offset position within the key to its initial value.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	scr    *screen
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	r.scr.applyAll(out[:n], out[:n])
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.scr.reset()
}

// NewReader constructs a Reader that XORs every byte read from r with the key, starting at offset.
// Reading with offset 0 produces the same bytes as Provider.Decrypt with the same key.
func NewReader(r io.Reader, key []byte, offset ...int) (Reader, error) {
	scr, err := newScreen(copyKey(key), offset...)
	if err != nil {
		return nil, err
	}
	return &reader{
		source: r,
		scr:    scr,
	}, nil
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	scr    *screen
}

// NewWriter constructs a Writer that XORs every byte written with the key, starting at offset, before passing it to target.
// Writing with offset 0 produces the same bytes as Provider.Encrypt with the same key.
func NewWriter(target io.Writer, key []byte, offset ...int) (Writer, error) {
	scr, err := newScreen(copyKey(key), offset...)
	if err != nil {
		return nil, err
	}
	return &writer{
		target: target,
		scr:    scr,
	}, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	buf := make([]byte, len(in))
	w.scr.applyAll(buf, in)
	return w.target.Write(buf)
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.scr.reset()
}

func copyKey(key []byte) []byte {
	if len(key) == 0 {
		return nil
	}
	return append([]byte(nil), key...)
}
