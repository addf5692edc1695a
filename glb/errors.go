package glb

import (
	"errors"
	"fmt"
)

var (
	ErrIO                  = errors.New("glb: io failure")
	ErrBadMagic            = errors.New("glb: bad magic")
	ErrUnsupportedVersion  = errors.New("glb: unsupported version")
	ErrLengthMismatch      = errors.New("glb: length mismatch")
	ErrUnexpectedChunkType = errors.New("glb: unexpected chunk type")
	ErrTooLarge            = errors.New("glb: container too large")
)

// IOError wraps a read failure from the byte source, including short reads.
type IOError struct {
	Err error
}

func (e *IOError) Error() string        { return fmt.Sprintf("glb: read failed: %v", e.Err) }
func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// MagicError carries the four bytes actually found where the magic belongs.
type MagicError struct {
	Magic Tag
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("glb: bad magic %s (want %s)", e.Magic, Magic())
}
func (e *MagicError) Is(target error) bool { return target == ErrBadMagic }

// VersionError carries the header version when it is not Version2.
type VersionError struct {
	Version uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("glb: unsupported version %d", e.Version)
}
func (e *VersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// LengthError reports a declared length that exceeds the bytes available.
// Chunk is the zero Tag when the file-level header length was checked.
type LengthError struct {
	Chunk     Tag
	Length    uint32
	Available int
}

// FileLevel reports whether the error came from the header length check
// rather than a chunk.
func (e *LengthError) FileLevel() bool { return e.Chunk == Tag{} }

func (e *LengthError) Error() string {
	if e.FileLevel() {
		return fmt.Sprintf("glb: declared length %d exceeds %d available bytes", e.Length, e.Available)
	}
	return fmt.Sprintf("glb: chunk %s declared length %d exceeds %d available bytes", e.Chunk, e.Length, e.Available)
}
func (e *LengthError) Is(target error) bool { return target == ErrLengthMismatch }

// ChunkTypeError carries the tag found where a JSON or BIN chunk was required.
type ChunkTypeError struct {
	Type Tag
}

func (e *ChunkTypeError) Error() string {
	return fmt.Sprintf("glb: unexpected chunk type %s", e.Type)
}
func (e *ChunkTypeError) Is(target error) bool { return target == ErrUnexpectedChunkType }

// LimitError is returned by DecodeReaderLimits when the declared length is
// above the configured maximum.
type LimitError struct {
	Length uint32
	Max    uint32
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("glb: declared length %d above limit %d", e.Length, e.Max)
}
func (e *LimitError) Is(target error) bool { return target == ErrTooLarge }
