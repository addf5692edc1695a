package glb

import (
	"encoding/binary"
	"errors"
	"io"
)

// container assembles header + chunks with the header length set to the byte
// count following the header.
func container(version uint32, chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := EncodeHeader(Header{Magic: Magic(), Version: version, Length: uint32(len(body))})
	return append(out, body...)
}

func rawChunkHeader(length uint32, ty Tag) []byte {
	buf := make([]byte, ChunkHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], length)
	copy(buf[4:8], ty[:])
	return buf
}

// failingReader yields data, then fails with err.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

var errBrokenPipe = errors.New("broken pipe")

var _ io.Reader = (*failingReader)(nil)
