// Package glb decodes the binary glTF container (.glb).
//
// A container is a 12-byte header followed by a mandatory JSON chunk and an
// optional BIN chunk. Decode works over bytes already in memory; DecodeReader
// reads a stream into a caller-owned scratch buffer that can be reused across
// calls.
//
// The JSON and BIN slices of a decoded Container alias the source bytes. They
// stay valid only while the source slice (or scratch buffer) is kept alive and
// unmodified.
//
// Ownership boundary:
// - header and chunk framing
// - bounds checks on every declared length
// - nothing about the meaning of the JSON or BIN contents
package glb
