package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/gamerec/ai"
)

// MockPicker is a test double for ai.CandidatePicker.
type MockPicker struct {
	// PickFunc is called by PickCandidates if set.
	// If nil, the first limit candidates are returned in the order given.
	PickFunc func(ctx context.Context, query, tone string, candidates []ai.Candidate, limit int) ([]int64, error)

	callCount atomic.Int64
}

// NewMockPicker creates a mock picker with default pass-through behavior.
func NewMockPicker() *MockPicker {
	return &MockPicker{}
}

// PickCandidates returns candidate IDs according to PickFunc or the default behavior.
func (m *MockPicker) PickCandidates(ctx context.Context, query, tone string, candidates []ai.Candidate, limit int) ([]int64, error) {
	m.callCount.Add(1)

	if m.PickFunc != nil {
		return m.PickFunc(ctx, query, tone, candidates, limit)
	}

	ids := make([]int64, 0, limit)
	for _, c := range candidates {
		if len(ids) == limit {
			break
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// CallCount returns the number of PickCandidates calls.
func (m *MockPicker) CallCount() int {
	return int(m.callCount.Load())
}
