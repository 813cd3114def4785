// Package result holds the aggregated outcome of one report batch.
package result

import (
	"sort"
	"sync"

	"github.com/dahlj/integrity-report/pkg/summary"
)

// Leaf is the outcome of one successfully processed report file. It is
// built once by the batch coordinator and never mutated afterwards.
type Leaf struct {
	// FileName is the report's path relative to the scan root.
	FileName string
	// ContentType is the sniffed MIME type of the raw bytes.
	ContentType string
	// Data is the raw file content, retained for archival and rendering.
	Data []byte
	// Counts are the extracted summary counters.
	Counts summary.Counts
}

// Tree is an ordered collection of leaves under a single root label.
// AddChild is safe for concurrent use; everything else expects the
// populating phase to have finished.
type Tree struct {
	// Root labels the tree, normally the scan root path.
	Root string

	mu       sync.Mutex
	children []Leaf
}

// NewTree creates an empty tree labelled with root.
func NewTree(root string) *Tree {
	return &Tree{Root: root}
}

// AddChild appends a leaf. This is the single synchronized insertion point
// shared by all parse workers.
func (t *Tree) AddChild(leaf Leaf) {
	t.mu.Lock()
	t.children = append(t.children, leaf)
	t.mu.Unlock()
}

// SortByFileName orders the children by file name. Insertion order is
// completion order of concurrent workers, so callers wanting deterministic
// output sort once after the batch joins.
func (t *Tree) SortByFileName() {
	sort.Slice(t.children, func(i, j int) bool {
		return t.children[i].FileName < t.children[j].FileName
	})
}

// Children returns the leaves in their current order.
func (t *Tree) Children() []Leaf {
	return t.children
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.children)
}

// Aggregate sums the counters of all children. It is recomputed on every
// call; the tree is small and a cache would just be one more thing to keep
// consistent.
func (t *Tree) Aggregate() summary.Counts {
	var agg summary.Counts
	for _, c := range t.children {
		agg = agg.Add(c.Counts)
	}
	return agg
}
