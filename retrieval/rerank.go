package retrieval

import (
	"slices"

	"github.com/poiesic/gamerec/core"
)

// rerankByEmotion sorts games in place by descending score for emotion.
// Games without a score go after every scored game. The sort is stable, so
// ties and unscored games keep their incoming order.
func rerankByEmotion(games []*core.Game, emotion core.Emotion) {
	slices.SortStableFunc(games, func(a, b *core.Game) int {
		sa, okA := a.EmotionScore(emotion)
		sb, okB := b.EmotionScore(emotion)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case !okA && !okB:
			return 0
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
}
