package retrieval

import "github.com/poiesic/gamerec/core"

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate results of each stage.
type Monitor interface {
	Start(query string, tone core.Tone)
	AfterVectorSearch(chunks []*core.ScoredChunk)
	AfterIDExtraction(ids []core.GameID)
	AfterCatalogSelect(games []*core.Game)
	AfterPick(games []*core.Game)
	AfterRerank(games []*core.Game)
	Finish(results []*core.Game)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.Tone)              {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.ScoredChunk) {}
func (n *noopMonitor) AfterIDExtraction(_ []core.GameID)        {}
func (n *noopMonitor) AfterCatalogSelect(_ []*core.Game)        {}
func (n *noopMonitor) AfterPick(_ []*core.Game)                 {}
func (n *noopMonitor) AfterRerank(_ []*core.Game)               {}
func (n *noopMonitor) Finish(_ []*core.Game)                    {}
