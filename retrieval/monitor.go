package retrieval

import (
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
)

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during retrieval.
type Monitor interface {
	Start(query string)
	AfterEmbedding(vector []float32)
	AfterStoreQuery(matches []vectorstore.Match)
	AfterThreshold(kept []core.SearchResult)
	Finish(result *core.RetrievalResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterEmbedding(_ []float32)             {}
func (n *noopMonitor) AfterStoreQuery(_ []vectorstore.Match)  {}
func (n *noopMonitor) AfterThreshold(_ []core.SearchResult)   {}
func (n *noopMonitor) Finish(_ *core.RetrievalResult)         {}
