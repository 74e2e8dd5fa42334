package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTone(t *testing.T) {
	cases := map[string]Tone{
		"happy":         ToneHappy,
		"  HAPPY ":      ToneHappy,
		"Surprising":    ToneSurprising,
		"angry":         ToneAngry,
		"suspenseful":   ToneSuspenseful,
		"sad":           ToneSad,
		"all":           ToneAll,
		"":              ToneAll,
		"melancholic":   ToneAll,
		"joy":           ToneAll, // emotion names are not tones
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseTone(input), "input %q", input)
	}
}

func TestTone_Emotion(t *testing.T) {
	t.Run("mapped tones", func(t *testing.T) {
		expected := map[Tone]Emotion{
			ToneHappy:       EmotionJoy,
			ToneSurprising:  EmotionSurprise,
			ToneAngry:       EmotionAnger,
			ToneSuspenseful: EmotionFear,
			ToneSad:         EmotionSadness,
		}
		for tone, want := range expected {
			got, ok := tone.Emotion()
			require.True(t, ok, "tone %q", tone)
			assert.Equal(t, want, got)
		}
	})

	t.Run("all has no emotion", func(t *testing.T) {
		_, ok := ToneAll.Emotion()
		assert.False(t, ok)
	})
}

func TestGame_EmotionScore(t *testing.T) {
	g := &Game{ID: 1, Emotions: map[Emotion]float64{EmotionJoy: 0.4}}

	score, ok := g.EmotionScore(EmotionJoy)
	assert.True(t, ok)
	assert.InDelta(t, 0.4, score, 1e-9)

	_, ok = g.EmotionScore(EmotionFear)
	assert.False(t, ok)

	var nilGame *Game
	_, ok = nilGame.EmotionScore(EmotionJoy)
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"1 alpha", "2 beta"})
	b := Fingerprint([]string{"1 alpha", "2 beta"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Fingerprint([]string{"2 beta", "1 alpha"}), "order matters")
	assert.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
}

func TestChunkMUS_RoundTrip(t *testing.T) {
	chunk := Chunk{
		Seq:      42,
		SourceID: 730,
		Text:     "730 Counter-Strike is a tactical shooter",
		Vector:   []float32{0.5, -0.25, 0.125},
	}
	buf := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, buf)

	decoded, n, err := ChunkMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, chunk, decoded)
}

func TestChunkMUS_RejectsOversizedVectorLength(t *testing.T) {
	chunk := Chunk{Seq: 1, SourceID: 1, Text: "1 x", Vector: []float32{1, 2}}
	buf := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, buf)

	// Drop the last float so the declared length overruns the buffer
	_, _, err := ChunkMUS.Unmarshal(buf[:len(buf)-4])
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
