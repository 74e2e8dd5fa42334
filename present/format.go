// Package present shapes catalog games into the records returned to clients.
package present

import (
	"strings"

	"github.com/poiesic/gamerec/core"
)

const (
	descriptionWords  = 30
	descriptionSuffix = "..."
)

// Recommendation is the client-facing view of a game.
type Recommendation struct {
	AppID       int64    `json:"app_id"`
	Title       string   `json:"title"`
	HeaderImage string   `json:"header_image"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"release_date"`
	Genres      string   `json:"genres"`
	Developer   string   `json:"developer"`
	Price       float64  `json:"price"`
	Screenshots []string `json:"screenshots"`
	Videos      string   `json:"videos"`
}

// Format converts game into a Recommendation.
func Format(game *core.Game) Recommendation {
	screenshots := game.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}

	return Recommendation{
		AppID:       int64(game.ID),
		Title:       game.Title,
		HeaderImage: game.HeaderImageURL,
		Description: TruncateDescription(game.Description),
		ReleaseDate: game.ReleaseDate,
		Genres:      game.Genres,
		Developer:   JoinDevelopers(game.Developers),
		Price:       game.Price,
		Screenshots: screenshots,
		Videos:      game.Videos,
	}
}

// FormatAll formats games in order. The result is never nil.
func FormatAll(games []*core.Game) []Recommendation {
	out := make([]Recommendation, len(games))
	for i, game := range games {
		out[i] = Format(game)
	}
	return out
}

// TruncateDescription keeps the first 30 words, joined by single spaces,
// and always appends "...".
func TruncateDescription(description string) string {
	words := strings.Fields(description)
	if len(words) > descriptionWords {
		words = words[:descriptionWords]
	}
	return strings.Join(words, " ") + descriptionSuffix
}

// JoinDevelopers renders a semicolon-delimited developer list as prose:
// "A", "A and B", or "A, B, and C".
func JoinDevelopers(developers string) string {
	parts := strings.Split(developers, ";")
	switch len(parts) {
	case 1:
		return developers
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}
