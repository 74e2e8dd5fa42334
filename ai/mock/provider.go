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


package mock

import "github.com/poiesic/gamerec/ai"

// MockEmbeddingModel is the model name reported by MockProvider.
const MockEmbeddingModel = "mock-embedding"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	embedder *MockEmbedder
	picker   *MockPicker
	closed   bool
}

// NewMockProvider creates a new mock provider with a default mock embedder
// and no candidate picker.
//
// Use GetMockEmbedder() to access the concrete embedder for test assertions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// A nil picker leaves candidate picking disabled.
func NewMockProviderWithServices(embedder *MockEmbedder, picker *MockPicker) *MockProvider {
	return &MockProvider{
		embedder: embedder,
		picker:   picker,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// CandidatePicker returns the mock picker, or nil if none was supplied.
func (p *MockProvider) CandidatePicker() ai.CandidatePicker {
	if p.picker == nil {
		return nil
	}
	return p.picker
}

// EmbeddingModel returns MockEmbeddingModel.
func (p *MockProvider) EmbeddingModel() string {
	return MockEmbeddingModel
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockPicker returns the underlying mock picker, which may be nil.
func (p *MockProvider) GetMockPicker() *MockPicker {
	return p.picker
}
