package glb

import (
	"bytes"
	"encoding/binary"
	"io"
)

// chunkHeader precedes every chunk's data. ty is not checked here; which tags
// are allowed depends on the chunk position.
type chunkHeader struct {
	length uint32
	ty     Tag
}

func readChunkHeader(r io.Reader) (chunkHeader, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return chunkHeader{}, &IOError{Err: err}
	}
	var ty Tag
	if _, err := io.ReadFull(r, ty[:]); err != nil {
		return chunkHeader{}, &IOError{Err: err}
	}
	return chunkHeader{length: binary.LittleEndian.Uint32(lenBuf[:]), ty: ty}, nil
}

// takeChunk reads a chunk header from the front of data, checks its tag
// against want and its length against what is left, and splits off the
// chunk's data.
func takeChunk(data []byte, want Tag) (chunk, rest []byte, err error) {
	r := bytes.NewReader(data)
	h, err := readChunkHeader(r)
	if err != nil {
		return nil, nil, err
	}
	if h.ty != want {
		return nil, nil, &ChunkTypeError{Type: h.ty}
	}
	data = data[ChunkHeaderSize:]
	if uint64(h.length) > uint64(len(data)) {
		return nil, nil, &LengthError{Chunk: h.ty, Length: h.length, Available: len(data)}
	}
	return data[:h.length:h.length], data[h.length:], nil
}

// splitV2 locates the JSON chunk and the optional BIN chunk. Bytes after the
// BIN chunk are ignored. A nil bin means no BIN chunk was present.
func splitV2(data []byte) (json, bin []byte, err error) {
	json, rest, err := takeChunk(data, ChunkJSON())
	if err != nil {
		return nil, nil, err
	}
	if len(rest) == 0 {
		return json, nil, nil
	}
	bin, _, err = takeChunk(rest, ChunkBIN())
	if err != nil {
		return nil, nil, err
	}
	return json, bin, nil
}

// EncodeChunk frames data as a chunk of type ty. Used to build fixtures.
func EncodeChunk(ty Tag, data []byte) []byte {
	buf := make([]byte, ChunkHeaderSize+len(data))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(data)))
	copy(buf[4:8], ty[:])
	copy(buf[ChunkHeaderSize:], data)
	return buf
}
