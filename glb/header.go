package glb

import (
	"encoding/binary"
	"io"
)

const (
	HeaderSize      = 12
	ChunkHeaderSize = 8

	Version2 uint32 = 2
)

// Header is the fixed container header. Only Magic is checked on read;
// Version and Length are left for the caller to judge.
type Header struct {
	Magic   Tag
	Version uint32
	Length  uint32
}

// ReadHeader reads and validates the magic, then reads version and length.
// The magic is checked before the rest of the header is read.
func ReadHeader(r io.Reader) (Header, error) {
	var magic Tag
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, &IOError{Err: err}
	}
	if magic != Magic() {
		return Header{}, &MagicError{Magic: magic}
	}
	var rest [8]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return Header{}, &IOError{Err: err}
	}
	return Header{
		Magic:   magic,
		Version: binary.LittleEndian.Uint32(rest[0:4]),
		Length:  binary.LittleEndian.Uint32(rest[4:8]),
	}, nil
}

// EncodeHeader is the inverse of ReadHeader. Used to build fixtures.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Length)
	return buf
}
