package inspect

import (
	"errors"
	"net/http"

	"github.com/danmuck/glbctl/glb"
)

const (
	KindOK                  = "ok"
	KindIO                  = "io"
	KindBadMagic            = "bad_magic"
	KindUnsupportedVersion  = "unsupported_version"
	KindLengthMismatch      = "length_mismatch"
	KindUnexpectedChunkType = "unexpected_chunk_type"
	KindTooLarge            = "too_large"
	KindJSON                = "json"
	KindUnknown             = "unknown"
)

// Kind maps an error to a stable label for metrics and API responses. A
// request body cut off by http.MaxBytesReader counts as too_large.
func Kind(err error) string {
	var maxErr *http.MaxBytesError
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, glb.ErrBadMagic):
		return KindBadMagic
	case errors.Is(err, glb.ErrUnsupportedVersion):
		return KindUnsupportedVersion
	case errors.Is(err, glb.ErrLengthMismatch):
		return KindLengthMismatch
	case errors.Is(err, glb.ErrUnexpectedChunkType):
		return KindUnexpectedChunkType
	case errors.Is(err, glb.ErrTooLarge), errors.As(err, &maxErr):
		return KindTooLarge
	case errors.Is(err, glb.ErrIO):
		return KindIO
	case errors.Is(err, ErrInvalidJSON):
		return KindJSON
	default:
		return KindUnknown
	}
}
