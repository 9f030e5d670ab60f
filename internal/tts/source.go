package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

const streamChunkSize = 32 * 1024

// ByteSource is provider audio in whatever shape it was delivered. Drain
// returns the whole payload as one contiguous buffer.
type ByteSource interface {
	Drain(ctx context.Context) ([]byte, error)
}

// Buffer is audio that arrived in one piece.
type Buffer []byte

func (b Buffer) Drain(_ context.Context) ([]byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Stream is audio read incrementally from a reader. Chunks are appended in
// the order they are read. The reader is closed after draining when it
// implements io.Closer.
type Stream struct {
	R io.Reader
}

func NewStream(r io.Reader) *Stream {
	return &Stream{R: r}
}

func (s *Stream) Drain(ctx context.Context) (data []byte, err error) {
	if c, ok := s.R.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close audio stream: %w", cerr)
			}
		}()
	}

	var buf bytes.Buffer
	chunk := make([]byte, streamChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read audio stream: %w", err)
		}

		n, rerr := s.R.Read(chunk)
		buf.Write(chunk[:n])

		if errors.Is(rerr, io.EOF) {
			return buf.Bytes(), nil
		}
		if rerr != nil {
			return nil, fmt.Errorf("read audio stream: %w", rerr)
		}
	}
}
