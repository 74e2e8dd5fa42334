// Package corpus turns catalog records into the ID-prefixed text chunks that
// are embedded by the index, and recovers game IDs from retrieved chunks.
package corpus
