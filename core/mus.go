package core

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// ChunkMUS serializes Chunk values in MUS format.
var ChunkMUS = chunkMUS{}

// ManifestMUS serializes Manifest values in MUS format.
var ManifestMUS = manifestMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = varint.Uint64.Marshal(c.Seq, bs)
	n += varint.Int64.Marshal(int64(c.SourceID), bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(len(c.Vector), bs[n:])
	for _, v := range c.Vector {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	c.Seq, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	var (
		n1       int
		sourceID int64
		length   int
	)
	sourceID, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.SourceID = GameID(sourceID)
	c.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	// Each float32 occupies four bytes in raw encoding
	if length < 0 || length > (len(bs)-n)/4 {
		err = fmt.Errorf("%w: vector length %d", ErrMalformedRecord, length)
		return
	}
	if length > 0 {
		c.Vector = make([]float32, length)
		for i := range c.Vector {
			c.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}
	return
}

func (chunkMUS) Size(c Chunk) (size int) {
	size = varint.Uint64.Size(c.Seq)
	size += varint.Int64.Size(int64(c.SourceID))
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(len(c.Vector))
	for _, v := range c.Vector {
		size += raw.Float32.Size(v)
	}
	return
}

type manifestMUS struct{}

func (manifestMUS) Marshal(m Manifest, bs []byte) (n int) {
	n = varint.Int.Marshal(m.ChunkCount, bs)
	n += varint.Int.Marshal(m.Dimensions, bs[n:])
	n += ord.String.Marshal(m.EmbeddingModel, bs[n:])
	n += ord.String.Marshal(m.Fingerprint, bs[n:])
	n += varint.Int64.Marshal(m.BuiltAt, bs[n:])
	return
}

func (manifestMUS) Unmarshal(bs []byte) (m Manifest, n int, err error) {
	m.ChunkCount, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	m.Dimensions, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.Fingerprint, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.BuiltAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (manifestMUS) Size(m Manifest) (size int) {
	size = varint.Int.Size(m.ChunkCount)
	size += varint.Int.Size(m.Dimensions)
	size += ord.String.Size(m.EmbeddingModel)
	size += ord.String.Size(m.Fingerprint)
	size += varint.Int64.Size(m.BuiltAt)
	return
}
