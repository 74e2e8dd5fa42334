package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/gamerec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `AppID,Name,About the game,Developers,Genres,Price,Released_date,Header image,Screenshots,Movies,joy,surprise,anger,fear,sadness
10,Alpha,"A bright, cheerful platformer.",Studio A,Platformer,9.99,"Jan 1, 2020",https://img/alpha.jpg,https://s/1.jpg|https://s/2.jpg,https://m/alpha.mp4,0.9,0.1,0.0,0.2,0.1
20,Beta,A dark horror story.,Studio B;Studio C,Horror,19.99,"Feb 2, 2021",,,,0.1,0.3,0.2,0.95,
abc,Broken,Should be skipped.,X,X,1,,,,,,,,,
30,Gamma,,Studio D;Studio E;Studio F,Puzzle,0,"Mar 3, 2022",https://img/gamma.jpg,,,,,,,
`

func TestLoadCSV(t *testing.T) {
	store, err := LoadCSV(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	for _, e := range core.Emotions {
		assert.True(t, store.HasEmotion(e), string(e))
	}

	alpha, ok := lookup(store, 10)
	require.True(t, ok)
	assert.Equal(t, "Alpha", alpha.Title)
	assert.Equal(t, "A bright, cheerful platformer.", alpha.Description)
	assert.Equal(t, "https://img/alpha.jpg&fife=w800", alpha.HeaderImageURL)
	assert.Equal(t, []string{"https://s/1.jpg", "https://s/2.jpg"}, alpha.Screenshots)
	assert.Equal(t, "https://m/alpha.mp4", alpha.Videos)
	assert.InDelta(t, 9.99, alpha.Price, 0.0001)
	assert.Equal(t, "Jan 1, 2020", alpha.ReleaseDate)
	score, ok := alpha.EmotionScore(core.EmotionJoy)
	require.True(t, ok)
	assert.InDelta(t, 0.9, score, 0.0001)

	beta, ok := lookup(store, 20)
	require.True(t, ok)
	assert.Equal(t, MissingHeaderImage+HeaderImageSuffix, beta.HeaderImageURL)
	assert.NotNil(t, beta.Screenshots)
	assert.Empty(t, beta.Screenshots)
	assert.Equal(t, "", beta.Videos)
	_, ok = beta.EmotionScore(core.EmotionSadness)
	assert.False(t, ok, "empty cell means no score")

	gamma, ok := lookup(store, 30)
	require.True(t, ok)
	assert.Equal(t, "", gamma.Description)
	_, ok = gamma.EmotionScore(core.EmotionJoy)
	assert.False(t, ok)

	_, ok = lookup(store, 0)
	assert.False(t, ok)
}

func TestLoadCSV_HeaderVariants(t *testing.T) {
	input := "\ufeff appid , NAME,About The Game\n5,Five,desc\n"
	store, err := LoadCSV(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	game, ok := lookup(store, 5)
	require.True(t, ok)
	assert.Equal(t, "Five", game.Title)
	assert.Equal(t, MissingHeaderImage+HeaderImageSuffix, game.HeaderImageURL)

	for _, e := range core.Emotions {
		assert.False(t, store.HasEmotion(e))
	}
}

func TestLoadCSV_Errors(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("AppID,Name\n1,x\n"), nil)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("duplicate id", func(t *testing.T) {
		input := "AppID,Name,About the game\n1,a,x\n1,b,y\n"
		_, err := LoadCSV(strings.NewReader(input), nil)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("non-positive id skipped", func(t *testing.T) {
		input := "AppID,Name,About the game\n0,a,x\n-3,b,y\n4,c,z\n"
		store, err := LoadCSV(strings.NewReader(input), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader(""), nil)
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	store, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.Error(t, err)
}

func TestStore_Select(t *testing.T) {
	games := []*core.Game{
		{ID: 5, Title: "five"},
		{ID: 1, Title: "one"},
		{ID: 9, Title: "nine"},
		{ID: 3, Title: "three"},
	}
	store, err := New(games, core.EmotionJoy)
	require.NoError(t, err)

	t.Run("catalog order", func(t *testing.T) {
		selected := store.Select([]core.GameID{3, 5, 9})
		require.Len(t, selected, 3)
		assert.Equal(t, core.GameID(5), selected[0].ID)
		assert.Equal(t, core.GameID(9), selected[1].ID)
		assert.Equal(t, core.GameID(3), selected[2].ID)
	})

	t.Run("unknown and duplicate ids", func(t *testing.T) {
		selected := store.Select([]core.GameID{1, 42, 1, 1000})
		require.Len(t, selected, 1)
		assert.Equal(t, core.GameID(1), selected[0].ID)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, store.Select(nil))
	})

	assert.True(t, store.HasEmotion(core.EmotionJoy))
	assert.False(t, store.HasEmotion(core.EmotionFear))
	assert.Len(t, store.All(), 4)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New([]*core.Game{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = New([]*core.Game{{ID: 2}})
	assert.ErrorIs(t, err, core.ErrInvalidGame)
}

func lookup(store *Store, id core.GameID) (*core.Game, bool) {
	games := store.Select([]core.GameID{id})
	if len(games) == 0 {
		return nil, false
	}
	return games[0], true
}
