package libpsm

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// walker enumerates the simple walks that start at each instance of a part.
type walker struct {
	X        *Structure
	depth    int
	doublets bool
	levels   []*treeset.Set
	path     []int
	onPath   []bool
}

// enumerateWalks returns, for k = 1..depth, the sorted distinct renderings of every walk of k distinct instances
// within [first, first+count).  A level with no walks is nil.
func (X *Structure) enumerateWalks(first, count, depth int, allowDoublets bool) [][]string {
	if depth < 1 || count == 0 {
		return nil
	}
	w := walker{
		X:        X,
		depth:    depth,
		doublets: allowDoublets,
		levels:   make([]*treeset.Set, depth),
		onPath:   make([]bool, len(X.inst)),
	}
	for k := range w.levels {
		w.levels[k] = treeset.NewWithStringComparator()
	}
	for i := first; i < first+count; i++ {
		w.visit(i)
	}

	table := make([][]string, depth)
	for k, set := range w.levels {
		if set.Empty() {
			continue
		}
		walks := make([]string, 0, set.Size())
		for _, s := range set.Values() {
			walks = append(walks, s.(string))
		}
		table[k] = walks
	}
	return table
}

func (w *walker) visit(i int) {
	w.path = append(w.path, i)
	w.onPath[i] = true
	w.levels[len(w.path)-1].Add(w.render())

	if len(w.path) < w.depth {
		for _, j := range w.X.adj[i] {
			if !w.onPath[j] {
				w.visit(j)
			}
		}
	}

	w.onPath[i] = false
	w.path = w.path[:len(w.path)-1]
}

// render joins the names along the current path.  Without doublets, a walk and its reverse share one rendering.
func (w *walker) render() string {
	n := len(w.path)
	names := make([]string, n)
	for k, i := range w.path {
		names[k] = w.X.inst[i].name
	}
	fwd := strings.Join(names, "-")
	if w.doublets || n < 2 {
		return fwd
	}
	for k := 0; k < n/2; k++ {
		names[k], names[n-1-k] = names[n-1-k], names[k]
	}
	if rev := strings.Join(names, "-"); rev < fwd {
		return rev
	}
	return fwd
}
