package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/gamerec/core"
)

const (
	// MissingHeaderImage replaces an absent header image.
	MissingHeaderImage = "cover-not_found.jpg"

	// HeaderImageSuffix requests the wide rendition of header images.
	HeaderImageSuffix = "&fife=w800"
)

// Column names, matched case-insensitively.
const (
	colID          = "appid"
	colName        = "name"
	colDescription = "about the game"
	colDevelopers  = "developers"
	colGenres      = "genres"
	colPrice       = "price"
	colReleased    = "released_date"
	colHeaderImage = "header image"
	colScreenshots = "screenshots"
	colMovies      = "movies"
)

var requiredColumns = []string{colID, colName, colDescription}

// LoadFile opens path and loads it with LoadCSV.
func LoadFile(path string, logger *slog.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return LoadCSV(f, logger)
}

// LoadCSV reads a catalog from CSV. AppID, Name and About the game are
// required columns; everything else is optional. Rows whose AppID is not a
// positive integer are skipped with a warning. A repeated AppID is an error.
func LoadCSV(r io.Reader, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := readHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var emotions []core.Emotion
	for _, e := range core.Emotions {
		if _, ok := header[string(e)]; ok {
			emotions = append(emotions, e)
		}
	}

	var games []*core.Game
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading catalog line %d: %w", line, err)
		}

		game, err := parseRow(header, row, emotions)
		if err != nil {
			logger.Warn("skipping catalog row", "line", line, "err", err)
			continue
		}
		games = append(games, game)
	}

	store, err := New(games, emotions...)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded catalog", "games", store.Len(), "emotions", len(emotions))
	return store, nil
}

func parseRow(header map[string]int, row []string, emotions []core.Emotion) (*core.Game, error) {
	rawID := valueAt(header, row, colID)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: AppID %q", core.ErrInvalidGameID, rawID)
	}

	game := &core.Game{
		ID:             core.GameID(id),
		Title:          valueAt(header, row, colName),
		Description:    valueAt(header, row, colDescription),
		Developers:     valueAt(header, row, colDevelopers),
		Genres:         valueAt(header, row, colGenres),
		ReleaseDate:    valueAt(header, row, colReleased),
		HeaderImageURL: headerImage(valueAt(header, row, colHeaderImage)),
		Screenshots:    splitScreenshots(valueAt(header, row, colScreenshots)),
		Videos:         valueAt(header, row, colMovies),
		Emotions:       make(map[core.Emotion]float64, len(emotions)),
	}

	if raw := valueAt(header, row, colPrice); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			game.Price = price
		}
	}

	for _, e := range emotions {
		raw := valueAt(header, row, string(e))
		if raw == "" {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		game.Emotions[e] = score
	}

	if err := core.ValidateGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

func headerImage(raw string) string {
	if raw == "" {
		raw = MissingHeaderImage
	}
	return raw + HeaderImageSuffix
}

func splitScreenshots(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "|")
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
