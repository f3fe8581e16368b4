package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrCompression   = errors.New("compression failed")
	ErrDecompression = errors.New("decompression failed")
)

var writerPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// compress wraps data in an lz4 frame.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := writerPool.Get().(*lz4.Writer)
	defer writerPool.Put(w)

	w.Reset(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level4)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return buf.Bytes(), nil
}

// decompress reads a single lz4 frame. An empty frame yields an empty, non-nil slice.
func decompress(data []byte) ([]byte, error) {
	r := readerPool.Get().(*lz4.Reader)
	defer readerPool.Put(r)

	r.Reset(bytes.NewReader(data))
	buf := bytes.NewBuffer(make([]byte, 0, len(data)))
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return buf.Bytes(), nil
}
