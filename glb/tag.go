package glb

import "strconv"

// Tag is a raw 4-byte identifier as it appears on the wire.
type Tag [4]byte

var (
	magicTag = Tag{'g', 'l', 'T', 'F'}
	jsonTag  = Tag{'J', 'S', 'O', 'N'}
	binTag   = Tag{'B', 'I', 'N', 0}
)

// Magic returns the container signature "glTF".
func Magic() Tag { return magicTag }

// ChunkJSON returns the tag of the mandatory first chunk.
func ChunkJSON() Tag { return jsonTag }

// ChunkBIN returns the tag of the optional second chunk, "BIN" plus a NUL.
func ChunkBIN() Tag { return binTag }

func (t Tag) String() string {
	return strconv.Quote(string(t[:]))
}
