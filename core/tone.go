package core

import "strings"

// Tone is a categorical re-ranking hint supplied with a query.
type Tone string

const (
	ToneAll         Tone = "all"
	ToneHappy       Tone = "happy"
	ToneSurprising  Tone = "surprising"
	ToneAngry       Tone = "angry"
	ToneSuspenseful Tone = "suspenseful"
	ToneSad         Tone = "sad"
)

var toneEmotions = map[Tone]Emotion{
	ToneHappy:       EmotionJoy,
	ToneSurprising:  EmotionSurprise,
	ToneAngry:       EmotionAnger,
	ToneSuspenseful: EmotionFear,
	ToneSad:         EmotionSadness,
}

// ParseTone normalizes s and matches it against the tone vocabulary.
// Unknown or empty values map to ToneAll.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toneEmotions[t]; ok {
		return t
	}
	return ToneAll
}

// Emotion returns the emotion column the tone ranks by.
// The second result is false for ToneAll and unknown tones.
func (t Tone) Emotion() (Emotion, bool) {
	e, ok := toneEmotions[t]
	return e, ok
}
