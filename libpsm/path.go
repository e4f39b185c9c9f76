package libpsm

import (
	"github.com/dominikbraun/graph"
	"github.com/plan-systems/klog"
)

// PathStartToEnd returns the 0-based positions, within this part, of the shortest path from START to END.
func (P *part) PathStartToEnd() []int {
	if P.start < 0 || P.end < 0 || P.g == nil {
		return nil
	}
	path, err := graph.ShortestPath(P.g, P.start-P.first, P.end-P.first)
	if err != nil {
		klog.Warningf("no path from START to END in %q: %v", P.Input(), err)
		return nil
	}
	return path
}
