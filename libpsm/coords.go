package libpsm

import (
	"math"

	"github.com/2x3systems/psmiles/psm"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/plan-systems/klog"
)

// Coordinates places every instance of every part along its principal chain.
func (X *Structure) Coordinates(opts psm.CoordOpts) ([][]psm.Point3, error) {
	if X.err != nil {
		return nil, psm.ErrInvalidStructure
	}
	if len(X.inst) == 0 {
		return nil, psm.ErrEmptyStructure
	}

	bondLen := opts.BondLength
	if bondLen == 0 {
		bondLen = psm.DefaultBondLength
	}
	if bondLen < 0 || math.IsNaN(bondLen) || math.IsInf(bondLen, 0) {
		return nil, psm.ErrBadBondLength
	}

	numAnchors := len(opts.Anchors)
	if numAnchors != 1 && numAnchors != len(X.parts) {
		klog.Warningf("%d anchor pairs given for %d parts", numAnchors, len(X.parts))
		return nil, psm.ErrBadAnchors
	}

	tree := adjacency(len(X.inst), X.bonds, false)
	coords := make([][]psm.Point3, len(X.parts))
	for i, P := range X.parts {
		anchors := opts.Anchors[0]
		if numAnchors > 1 {
			anchors = opts.Anchors[i]
		}
		coords[i] = P.place(tree, anchors, bondLen)
	}
	return coords, nil
}

// place positions the chain instances evenly from anchors.First towards anchors.Last and gives every other
// instance the position of the instance it hangs from.
func (P *part) place(tree [][]int, anchors psm.AnchorPair, bondLen float64) []psm.Point3 {
	pos := make([]psm.Point3, P.count)
	placed := make([]bool, P.count)

	chain := P.principalChain(tree)
	span := anchors.Last.Sub(anchors.First)

	// delta is the offset between neighboring chain instances: one bond length along span, or span/(n-1)
	// when the chain would otherwise overshoot anchors.Last.
	delta := span.Normalize().Scale(bondLen)
	if n := len(chain); n > 1 {
		if spacing := span.Length() / float64(n-1); spacing < bondLen {
			delta = span.Scale(1 / float64(n-1))
		}
	}

	queue := linkedlistqueue.New()
	for i, id := range chain {
		local := id - P.first
		pos[local] = anchors.First.Add(delta.Scale(float64(i)))
		placed[local] = true
		queue.Enqueue(id)
	}

	// Spread outward over branch and sequential bonds first, then let ring bonds reach anything still unplaced.
	P.spread(queue, tree, pos, placed)
	for _, id := range chain {
		queue.Enqueue(id)
	}
	for local := range placed {
		if placed[local] && !onChain(chain, P.first+local) {
			queue.Enqueue(P.first + local)
		}
	}
	P.spread(queue, P.X.adj, pos, placed)
	return pos
}

func (P *part) spread(queue *linkedlistqueue.Queue, adj [][]int, pos []psm.Point3, placed []bool) {
	for !queue.Empty() {
		val, _ := queue.Dequeue()
		id := val.(int)
		for _, nbr := range adj[id] {
			if local := nbr - P.first; !placed[local] {
				pos[local] = pos[id-P.first]
				placed[local] = true
				queue.Enqueue(nbr)
			}
		}
	}
}

// principalChain returns the instances from START to END, or otherwise the longest path in tree from the
// part's first instance.  Ties go to the path ending at the later instance.
func (P *part) principalChain(tree [][]int) []int {
	if path := P.PathStartToEnd(); path != nil {
		chain := make([]int, len(path))
		for i, local := range path {
			chain[i] = P.first + local
		}
		return chain
	}

	parent := make([]int, P.count)
	dist := make([]int, P.count)
	for i := range parent {
		parent[i] = -1
		dist[i] = -1
	}

	root := P.first
	far := root
	dist[0] = 0
	queue := linkedlistqueue.New()
	queue.Enqueue(root)
	for !queue.Empty() {
		val, _ := queue.Dequeue()
		id := val.(int)
		d := dist[id-P.first]
		if d > dist[far-P.first] || (d == dist[far-P.first] && id > far) {
			far = id
		}
		for _, nbr := range tree[id] {
			if local := nbr - P.first; dist[local] < 0 {
				dist[local] = d + 1
				parent[local] = id
				queue.Enqueue(nbr)
			}
		}
	}

	chain := make([]int, dist[far-P.first]+1)
	for id, i := far, len(chain)-1; i >= 0; i-- {
		chain[i] = id
		id = parent[id-P.first]
	}
	return chain
}

func onChain(chain []int, id int) bool {
	for _, c := range chain {
		if c == id {
			return true
		}
	}
	return false
}
