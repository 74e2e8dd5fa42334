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


// Package ai provides abstractions for the AI services used by gamerec.
//
// The package defines two services and an aggregate:
//
//   - Embedder: turns game descriptions and queries into vectors
//   - CandidatePicker: optionally asks a chat model to narrow a candidate list
//   - AIProvider: owns both and their shared configuration
//
// # Implementation Packages
//
//   - ai/langchain: Embedder and CandidatePicker over langchaingo clients
//   - ai/googleai: provider backed by Google Generative AI
//   - ai/openai: provider backed by OpenAI-compatible APIs (OpenAI, Ollama, vLLM)
//   - ai/mock: test doubles with deterministic vectors
//
// Public provider constructors return ai.AIProvider so callers never couple
// to a specific backend. Mock constructors return concrete types so tests can
// inject behavior and inspect call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("GOOGLE_API_KEY")))
//	provider, err := googleai.NewProvider(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "cozy farming sim")
package ai
