package libpsm

import (
	"errors"

	"github.com/2x3systems/psmiles/psm"
	"github.com/dominikbraun/graph"
)

// part is one replica of a partExpr: a contiguous range of instances in the parent Structure.
type part struct {
	X         *Structure
	expr      *partExpr
	first     int // position of the first instance within X
	count     int
	start     int // instance tagged START, or -1
	end       int // instance tagged END, or -1
	fragments int // number of top-level (...) fragments
	g         graph.Graph[int, int]
}

// buildGraph forms P's bond graph over local instance positions.
func (P *part) buildGraph(bonds []bond) error {
	g := graph.New(graph.IntHash)
	for i := 0; i < P.count; i++ {
		if err := g.AddVertex(i); err != nil {
			return err
		}
	}
	for _, bd := range bonds {
		if bd.a < P.first || bd.a >= P.first+P.count {
			continue
		}
		err := g.AddEdge(bd.a-P.first, bd.b-P.first)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return err
		}
	}
	P.g = g
	return nil
}

// isConnected reports if every instance of P can be reached from its first.
// A part written as (...) fragments must have at least two of them.
func (P *part) isConnected() bool {
	if P.fragments == 1 {
		return false
	}
	if P.count == 0 {
		return true
	}
	reached := 0
	graph.BFS(P.g, 0, func(int) bool {
		reached++
		return false
	})
	return reached == P.count
}

func (P *part) Input() string {
	return P.expr.input
}

func (P *part) InstanceRange() (first, count int) {
	return P.first, P.count
}

func (P *part) Particles() []string {
	names := make([]string, P.count)
	for i := range names {
		names[i] = P.X.inst[P.first+i].name
	}
	return names
}

func (P *part) Tokens() []string {
	return renderTokens(P.X.toks, P.X.sig[P.expr.lo:P.expr.hi])
}

func (P *part) ParticleIndices() []int {
	return particleOffsets(P.Tokens())
}

func (P *part) Frequencies() psm.ParticleCounts {
	return countParticles(P.X.inst[P.first : P.first+P.count])
}

func (P *part) Neighbors(depth int, allowDoublets bool) [][]string {
	if depth < 1 {
		return nil
	}
	return P.X.enumerateWalks(P.first, P.count, depth, allowDoublets)
}
