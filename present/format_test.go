package present

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/poiesic/gamerec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinDevelopers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Valve", "Valve"},
		{"", ""},
		{"A;B", "A and B"},
		{"A;B;C", "A, B, and C"},
		{"A;B;C;D", "A, B, C, and D"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinDevelopers(tt.in))
		})
	}
}

func TestTruncateDescription(t *testing.T) {
	t.Run("long", func(t *testing.T) {
		words := make([]string, 45)
		for i := range words {
			words[i] = "w"
		}
		got := TruncateDescription(strings.Join(words, "\n\t  "))
		assert.Equal(t, strings.Repeat("w ", 29)+"w...", got)
	})

	t.Run("short keeps suffix", func(t *testing.T) {
		assert.Equal(t, "A tiny game....", TruncateDescription("  A tiny   game. "))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "...", TruncateDescription(""))
	})
}

func TestFormat(t *testing.T) {
	game := &core.Game{
		ID:             10,
		Title:          "Alpha",
		Description:    "Jump around.",
		Developers:     "Studio A;Studio B",
		Genres:         "Platformer",
		Price:          9.99,
		ReleaseDate:    "Jan 1, 2020",
		HeaderImageURL: "https://img/alpha.jpg&fife=w800",
	}

	rec := Format(game)
	assert.Equal(t, int64(10), rec.AppID)
	assert.Equal(t, "Studio A and Studio B", rec.Developer)
	assert.Equal(t, "Jump around....", rec.Description)
	assert.Equal(t, "https://img/alpha.jpg&fife=w800", rec.HeaderImage)
	assert.NotNil(t, rec.Screenshots)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"app_id", "title", "header_image", "description", "release_date",
		"genres", "developer", "price", "screenshots", "videos"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, []any{}, decoded["screenshots"])
	assert.Equal(t, "", decoded["videos"])
}

func TestFormatAll(t *testing.T) {
	assert.NotNil(t, FormatAll(nil))
	assert.Empty(t, FormatAll(nil))

	recs := FormatAll([]*core.Game{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}})
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].Title)
	assert.Equal(t, "a", recs[1].Title)
}
