package glb

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"
)

func TestDecodeReaderExampleContainer(t *testing.T) {
	var buf []byte
	c, err := DecodeReader(bytes.NewReader(exampleContainer()), &buf)
	if err != nil {
		t.Fatalf("decode reader: %v", err)
	}
	if string(c.JSON) != "{}" || !bytes.Equal(c.BIN, []byte{0xDE, 0xAD, 0xBE}) {
		t.Fatalf("chunk mismatch: json=%q bin=%x", c.JSON, c.BIN)
	}
	if len(buf) != int(c.Header.Length) {
		t.Fatalf("buffer length mismatch: got=%d want=%d", len(buf), c.Header.Length)
	}
}

func TestDecodeReaderResultAliasesBuffer(t *testing.T) {
	var buf []byte
	c, err := DecodeReader(bytes.NewReader(exampleContainer()), &buf)
	if err != nil {
		t.Fatalf("decode reader: %v", err)
	}
	buf[ChunkHeaderSize] = '['
	if c.JSON[0] != '[' {
		t.Fatalf("json does not alias scratch buffer")
	}
}

func TestDecodeReaderReusesCapacity(t *testing.T) {
	buf := make([]byte, 0, 4096)
	base := &buf[:1][0]
	for i := 0; i < 3; i++ {
		if _, err := DecodeReader(bytes.NewReader(exampleContainer()), &buf); err != nil {
			t.Fatalf("decode reader %d: %v", i, err)
		}
		if &buf[0] != base {
			t.Fatalf("decode reader %d reallocated the scratch buffer", i)
		}
	}
}

func TestDecodeReaderOneByteReads(t *testing.T) {
	var buf []byte
	c, err := DecodeReader(iotest.OneByteReader(bytes.NewReader(exampleContainer())), &buf)
	if err != nil {
		t.Fatalf("decode reader: %v", err)
	}
	if string(c.JSON) != "{}" {
		t.Fatalf("json mismatch: %q", c.JSON)
	}
}

func TestDecodeReaderShortBodyResetsBuffer(t *testing.T) {
	data := exampleContainer()
	buf := append(make([]byte, 0, 64), "stale bytes from a previous container"...)

	_, err := DecodeReader(bytes.NewReader(data[:len(data)-2]), &buf)
	var lengthErr *LengthError
	if !errors.As(err, &lengthErr) {
		t.Fatalf("expected LengthError, got %v", err)
	}
	if lengthErr.Length != uint32(len(data)-HeaderSize) || lengthErr.Available != len(data)-HeaderSize-2 {
		t.Fatalf("length payload mismatch: %+v", lengthErr)
	}
	if len(buf) != 0 {
		t.Fatalf("expected empty buffer after short read, got %d bytes: %q", len(buf), buf)
	}
}

func TestDecodeReaderFailingReaderResetsBuffer(t *testing.T) {
	data := exampleContainer()
	buf := []byte("stale bytes from a previous container, long enough to hold it all")

	r := &failingReader{data: data[:HeaderSize+5], err: errBrokenPipe}
	_, err := DecodeReader(r, &buf)
	var ioErr *IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, errBrokenPipe) {
		t.Fatalf("expected IOError wrapping broken pipe, got %v", err)
	}
	if len(buf) != 0 {
		t.Fatalf("expected empty buffer after failed read, got %d bytes", len(buf))
	}
}

func TestDecodeReaderHeaderFailureLeavesBufferUntouched(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{name: "bad magic", data: []byte("GLTF\x02\x00\x00\x00\x00\x00\x00\x00"), want: ErrBadMagic},
		{name: "short header", data: []byte("glTF\x02"), want: ErrIO},
		{name: "version", data: container(1, EncodeChunk(ChunkJSON(), []byte("{}"))), want: ErrUnsupportedVersion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := []byte("previous")
			_, err := DecodeReader(bytes.NewReader(tc.data), &buf)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if string(buf) != "previous" {
				t.Fatalf("buffer mutated: %q", buf)
			}
		})
	}
}

func TestDecodeReaderChunkErrorAfterFullRead(t *testing.T) {
	data := container(Version2, EncodeChunk(ChunkBIN(), []byte{1}))
	var buf []byte
	_, err := DecodeReader(bytes.NewReader(data), &buf)
	if !errors.Is(err, ErrUnexpectedChunkType) {
		t.Fatalf("expected ErrUnexpectedChunkType, got %v", err)
	}
}

func TestDecodeReaderLimits(t *testing.T) {
	data := exampleContainer()
	buf := []byte("previous")

	_, err := DecodeReaderLimits(bytes.NewReader(data), &buf, Limits{MaxLength: 4})
	var limitErr *LimitError
	if !errors.As(err, &limitErr) || !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected LimitError, got %v", err)
	}
	if limitErr.Max != 4 || limitErr.Length != uint32(len(data)-HeaderSize) {
		t.Fatalf("limit payload mismatch: %+v", limitErr)
	}
	if string(buf) != "previous" {
		t.Fatalf("buffer mutated: %q", buf)
	}

	if _, err := DecodeReaderLimits(bytes.NewReader(data), &buf, Limits{MaxLength: uint32(len(data))}); err != nil {
		t.Fatalf("decode within limit: %v", err)
	}
}
