// Package inspect turns decoded containers into reports. Stream inputs are
// decoded into scratch buffers drawn from a bounded pool, so steady-state
// inspection of uploads does not allocate a new body buffer per request.
package inspect

import (
	"errors"
	"io"

	"github.com/danmuck/glbctl/glb"
	"github.com/danmuck/glbctl/internal/gltfmeta"
	"github.com/danmuck/glbctl/internal/observability"
	"github.com/rs/zerolog"
)

const (
	SourceSlice  = "slice"
	SourceStream = "stream"
)

var ErrInvalidJSON = errors.New("inspect: json chunk is not valid glTF json")

// Report summarizes one container. It never aliases decoder buffers.
type Report struct {
	Name      string             `json:"name,omitempty"`
	Version   uint32             `json:"version"`
	Length    uint32             `json:"length"`
	JSONBytes int                `json:"json_bytes"`
	BINBytes  int                `json:"bin_bytes"`
	HasBIN    bool               `json:"has_bin"`
	Document  *gltfmeta.Document `json:"document,omitempty"`
}

// Options configures an Inspector.
type Options struct {
	// Limits applies to stream inputs only.
	Limits glb.Limits
	// PoolSize bounds the number of idle scratch buffers kept.
	PoolSize int
	// SkipJSON disables the gltfmeta peek.
	SkipJSON bool
	Logger   zerolog.Logger
}

// Inspector decodes containers and builds reports. It is safe for concurrent use.
type Inspector struct {
	opts    Options
	buffers chan *[]byte
}

// New returns an Inspector with an empty buffer pool of opts.PoolSize slots.
func New(opts Options) *Inspector {
	size := opts.PoolSize
	if size < 0 {
		size = 0
	}
	return &Inspector{opts: opts, buffers: make(chan *[]byte, size)}
}

// Bytes inspects an in-memory container.
func (in *Inspector) Bytes(data []byte) (Report, error) {
	c, err := glb.Decode(data)
	return in.finish(SourceSlice, c, err)
}

// Reader inspects one container read from r.
func (in *Inspector) Reader(r io.Reader) (Report, error) {
	buf := in.acquire()
	defer in.release(buf)

	c, err := glb.DecodeReaderLimits(r, buf, in.opts.Limits)
	return in.finish(SourceStream, c, err)
}

func (in *Inspector) finish(source string, c glb.Container, err error) (Report, error) {
	if err != nil {
		kind := Kind(err)
		observability.RecordDecode(source, kind, 0)
		in.opts.Logger.Debug().Str("source", source).Str("kind", kind).Err(err).Msg("decode failed")
		return Report{}, err
	}

	report := Report{
		Version:   c.Header.Version,
		Length:    c.Header.Length,
		JSONBytes: len(c.JSON),
		BINBytes:  len(c.BIN),
		HasBIN:    c.HasBIN(),
	}
	if !in.opts.SkipJSON {
		doc, err := gltfmeta.Peek(c.JSON)
		if err != nil {
			observability.RecordDecode(source, KindJSON, 0)
			return Report{}, errors.Join(ErrInvalidJSON, err)
		}
		report.Document = &doc
	}
	observability.RecordDecode(source, KindOK, c.Header.Length)
	in.opts.Logger.Debug().
		Str("source", source).
		Uint32("length", c.Header.Length).
		Int("json_bytes", report.JSONBytes).
		Int("bin_bytes", report.BINBytes).
		Msg("decoded container")
	return report, nil
}

func (in *Inspector) acquire() *[]byte {
	select {
	case buf := <-in.buffers:
		return buf
	default:
		buf := make([]byte, 0)
		return &buf
	}
}

func (in *Inspector) release(buf *[]byte) {
	*buf = (*buf)[:0]
	select {
	case in.buffers <- buf:
	default:
	}
}
