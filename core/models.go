// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// GameID is the catalog's primary key for a game.
type GameID int64

// Emotion names one of the affinity score columns carried by the catalog.
type Emotion string

const (
	EmotionJoy      Emotion = "joy"
	EmotionSurprise Emotion = "surprise"
	EmotionAnger    Emotion = "anger"
	EmotionFear     Emotion = "fear"
	EmotionSadness  Emotion = "sadness"
)

// Emotions is the fixed emotion vocabulary, in catalog column order.
var Emotions = []Emotion{
	EmotionJoy,
	EmotionSurprise,
	EmotionAnger,
	EmotionFear,
	EmotionSadness,
}

// Game is a single catalog entry.
type Game struct {
	ID             GameID
	Title          string
	Description    string
	Developers     string // Semicolon-delimited developer names
	Genres         string
	Price          float64
	ReleaseDate    string
	HeaderImageURL string   // Resolved display URL, computed at load time
	Screenshots    []string // Ordered screenshot URLs
	Videos         string
	Emotions       map[Emotion]float64 // Absent key means no score for that emotion
}

// EmotionScore returns the game's score for e and whether one is present.
func (g *Game) EmotionScore(e Emotion) (float64, bool) {
	if g == nil || g.Emotions == nil {
		return 0, false
	}
	score, ok := g.Emotions[e]
	return score, ok
}

// Chunk is an ID-prefixed slice of a game description used for embedding.
type Chunk struct {
	Seq      uint64 // Position within the corpus
	SourceID GameID
	Text     string
	Vector   []float32 // Populated when the index is built
}

// ScoredChunk is a chunk returned from a similarity search.
type ScoredChunk struct {
	Chunk *Chunk
	Score float32
}

// Manifest describes a fully built index. It is written after every chunk
// has been stored, so its presence marks the index as complete.
type Manifest struct {
	ChunkCount     int
	Dimensions     int
	EmbeddingModel string
	Fingerprint    string
	BuiltAt        int64 // Unix seconds
}

// Fingerprint computes a BLAKE2b-256 digest over chunk texts in order.
// Identical corpora always produce identical fingerprints.
func Fingerprint(texts []string) string {
	h, _ := blake2b.New(32, nil)
	var length [8]byte
	for _, text := range texts {
		// Length prefix keeps ("ab","c") distinct from ("a","bc")
		binary.BigEndian.PutUint64(length[:], uint64(len(text)))
		h.Write(length[:])
		h.Write([]byte(text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
