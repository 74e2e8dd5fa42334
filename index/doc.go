// Package index builds and serves the nearest-neighbor index over the game
// corpus.
//
// An index is built once: chunks are embedded in batches on a worker pool,
// normalized to unit length and persisted together with a manifest. Later
// opens verify the persisted data against the manifest instead of calling
// the embedding service again. Search embeds the query and ranks chunks by
// dot product.
package index
