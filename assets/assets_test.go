package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// memSource is an in-memory Source that counts fetches. When gate is set,
// Fetch blocks until it is closed.
type memSource struct {
	name  string
	mu    sync.Mutex
	files map[string][]byte
	calls atomic.Int32
	gate  chan struct{}
}

func newMemSource(name string, files map[string][]byte) *memSource {
	if files == nil {
		files = map[string][]byte{}
	}
	return &memSource{name: name, files: files}
}

func (s *memSource) Location() string { return s.name }

func (s *memSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	s.calls.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: not found", name)
	}
	return data, nil
}

func (s *memSource) put(name string, data []byte) {
	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()
}

// rawDecoder wraps the payload as PCM without decoding.
type rawDecoder struct {
	calls atomic.Int32
	fail  error
}

func (d *rawDecoder) Decode(key, filename string, payload []byte) (*Buffer, error) {
	d.calls.Add(1)
	if d.fail != nil {
		return nil, &DecodeError{Key: key, Filename: filename, Err: d.fail}
	}
	return NewBuffer(key, filename, 44100, payload), nil
}

var errBadPayload = errors.New("bad payload")

// wavPayload builds a 16-bit stereo PCM WAV file with frames frames.
func wavPayload(sampleRate, frames int) []byte {
	var b bytes.Buffer
	dataLen := uint32(frames * 4)
	le := binary.LittleEndian

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, 36+dataLen)
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(1)) // PCM
	_ = binary.Write(&b, le, uint16(2)) // channels
	_ = binary.Write(&b, le, uint32(sampleRate))
	_ = binary.Write(&b, le, uint32(sampleRate*4))
	_ = binary.Write(&b, le, uint16(4))
	_ = binary.Write(&b, le, uint16(16))

	b.WriteString("data")
	_ = binary.Write(&b, le, dataLen)
	for i := 0; i < frames; i++ {
		v := int16(i * 64)
		_ = binary.Write(&b, le, v)
		_ = binary.Write(&b, le, -v)
	}
	return b.Bytes()
}
