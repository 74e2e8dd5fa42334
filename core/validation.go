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

import "fmt"

// ValidateGame validates a Game according to domain rules.
//
// Validation rules:
//   - ID must be positive
//   - Title must not be empty
//
// NOT validated (display fields may legitimately be blank):
//   - Description, Developers, Genres, ReleaseDate
//   - Emotions (any subset of the vocabulary may be present)
func ValidateGame(game *Game) error {
	if game == nil {
		return fmt.Errorf("%w: game is nil", ErrInvalidGame)
	}

	if err := ValidateGameID(game.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGame, err)
	}

	if game.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGame, ErrEmptyTitle)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - SourceID must be positive
//   - Text must not be empty
//
// Vector is not validated; it is empty until the index is built.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if err := ValidateGameID(chunk.SourceID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	return nil
}

// ValidateGameID checks that id is a positive integer.
func ValidateGameID(id GameID) error {
	if id <= 0 {
		return fmt.Errorf("%w: value %d", ErrInvalidGameID, id)
	}
	return nil
}
