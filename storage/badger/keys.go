package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	chunkPrefix = "chunk:"
	manifestKey = "idxmanifest"
)

// makeChunkKey generates a key for a chunk by sequence number.
// Format: prefix + 8 byte BigEndian seq, so iteration follows Seq order.
func makeChunkKey(seq uint64) []byte {
	buf := make([]byte, len(chunkPrefix)+8)
	offset := copy(buf, chunkPrefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}
