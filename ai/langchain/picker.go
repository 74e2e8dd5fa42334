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


package langchain

import (
	"context"
	"log/slog"

	"github.com/poiesic/gamerec/ai"
	"github.com/tmc/langchaingo/llms"
)

const maxPickAttempts = 3

// Picker implements ai.CandidatePicker using a langchaingo chat model.
type Picker struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.CandidatePicker = (*Picker)(nil)

// NewPicker creates a picker backed by client.
func NewPicker(client llms.Model, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{
		client: client,
		logger: logger.With("component", "picker"),
	}
}

// PickCandidates asks the model to choose up to limit candidates for the query.
// The reply must be a strict JSON list of integer IDs. IDs the model invents
// are dropped, duplicates collapse and the model's order is kept.
func (p *Picker) PickCandidates(ctx context.Context, query, tone string, candidates []ai.Candidate, limit int) ([]int64, error) {
	if len(candidates) == 0 || limit < 1 {
		return []int64{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(limit)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(query, tone, candidates)),
			},
		},
	}

	// Retry on malformed replies, never on transport errors
	var ids []int64
	var lastErr error
	for attempt := 0; attempt < maxPickAttempts; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			return []int64{}, nil
		}

		ids, lastErr = ParseIDList(stripCodeFence(response.Choices[0].Content))
		if lastErr != nil {
			p.logger.Warn("error parsing picker response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", lastErr)
			continue
		}
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse picker response after retries", "err", lastErr)
		return nil, lastErr
	}

	allowed := make(map[int64]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c.ID] = struct{}{}
	}

	picked := make([]int64, 0, limit)
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := allowed[id]; !ok {
			p.logger.Debug("dropping id not among candidates", "id", id)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		picked = append(picked, id)
		if len(picked) == limit {
			break
		}
	}

	p.logger.Debug("picked candidates", "offered", len(candidates), "returned", len(ids), "kept", len(picked))
	return picked, nil
}
