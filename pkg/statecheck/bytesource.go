package statecheck

import "encoding/binary"

// ByteSource is a rand.Source that reads its output from a byte slice.
//
// Fuzz targets use it to derive command sequences from fuzz input. When the
// bytes run out every read returns zero, so the same input always produces
// the same sequence and the fuzzer can minimize failing inputs.
type ByteSource struct {
	bytes []byte
	pos   int
}

// NewByteSource creates a source over b.
func NewByteSource(b []byte) *ByteSource {
	return &ByteSource{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteSource) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteSource) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// Uint64 reads 8 bytes as a little-endian uint64, zero-padded.
func (s *ByteSource) Uint64() uint64 {
	var raw [8]byte
	for i := range raw {
		raw[i] = s.NextByte()
	}

	return binary.LittleEndian.Uint64(raw[:])
}
