package glb

import (
	"bytes"
	"errors"
	"io"
	"math"
	"slices"
)

// Container is a decoded .glb. JSON and BIN alias the bytes the container was
// decoded from; BIN is nil when the container has no BIN chunk.
type Container struct {
	Header Header
	JSON   []byte
	BIN    []byte
}

// HasBIN reports whether a BIN chunk was present, including an empty one.
func (c Container) HasBIN() bool { return c.BIN != nil }

// Limits constrains the streaming decoder's memory use.
type Limits struct {
	// MaxLength caps the declared length accepted by DecodeReaderLimits.
	// Zero means no cap.
	MaxLength uint32
}

// Decode splits an in-memory container into its chunks without copying.
//
// The header length must not exceed the bytes after the header, but the
// chunks are located in everything after the header, not only the declared
// length, and trailing bytes after the BIN chunk are ignored.
func Decode(data []byte) (Container, error) {
	header, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return Container{}, err
	}
	data = data[HeaderSize:]
	if uint64(header.Length) > uint64(len(data)) {
		return Container{}, &LengthError{Length: header.Length, Available: len(data)}
	}
	switch header.Version {
	case Version2:
		json, bin, err := splitV2(data)
		if err != nil {
			return Container{}, err
		}
		return Container{Header: header, JSON: json, BIN: bin}, nil
	default:
		return Container{}, &VersionError{Version: header.Version}
	}
}

// DecodeReader reads one container from r into *buf and splits it. *buf is
// reused: its previous contents are discarded and its capacity is grown as
// needed. The returned slices alias *buf.
//
// *buf is left untouched when the header fails to read or names an
// unsupported version. Once the body read has started, any failure leaves
// len(*buf) == 0 so no partially read bytes are observable.
//
// Exactly header.Length bytes are read after the header.
func DecodeReader(r io.Reader, buf *[]byte) (Container, error) {
	return DecodeReaderLimits(r, buf, Limits{})
}

// DecodeReaderLimits is DecodeReader with a cap on the declared length. A
// container above the cap fails with *LimitError before *buf is touched.
func DecodeReaderLimits(r io.Reader, buf *[]byte, limits Limits) (Container, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Container{}, err
	}
	if header.Version != Version2 {
		return Container{}, &VersionError{Version: header.Version}
	}
	if limits.MaxLength > 0 && header.Length > limits.MaxLength {
		return Container{}, &LimitError{Length: header.Length, Max: limits.MaxLength}
	}
	if uint64(header.Length) > math.MaxInt {
		return Container{}, &LengthError{Length: header.Length, Available: math.MaxInt}
	}

	n := int(header.Length)
	// body is write-only until ReadFull confirms all n bytes landed; it may
	// still hold bytes from an earlier call.
	body := slices.Grow((*buf)[:0], n)[:n]
	read, err := io.ReadFull(r, body)
	if err != nil {
		*buf = body[:0]
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Container{}, &LengthError{Length: header.Length, Available: read}
		}
		return Container{}, &IOError{Err: err}
	}
	*buf = body

	json, bin, err := splitV2(body)
	if err != nil {
		return Container{}, err
	}
	return Container{Header: header, JSON: json, BIN: bin}, nil
}
