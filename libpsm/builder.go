package libpsm

import (
	"sort"
)

type unitKind int8

const (
	unitParticle   unitKind = iota // a particle name, possibly repeated
	unitMonomerTag                 // #Name
	unitBranch                     // (...)
	unitMonomer                    // {...}, possibly repeated
)

// unit is a node of the tree parsed from a validated token sequence.
type unit struct {
	kind     unitKind
	tok      *token
	rings    []int
	tags     []tagKind
	backbone int
	body     []*unit
	fragment bool // for unitBranch, set if the branch hangs off nothing
}

// partExpr is the tree of one <...> group, or of the whole input when it has no groups.
type partExpr struct {
	count int
	lo    int // sig range of the body
	hi    int
	input string
	body  []*unit
}

// treeParser turns a validated token sequence into partExprs.
type treeParser struct {
	v     *validator
	input string
	j     int
}

func (tp *treeParser) parseParts() []*partExpr {
	v := tp.v
	if first := v.at(0); !first.isOpen(angleBracket) {
		return []*partExpr{{
			count: 1,
			lo:    0,
			hi:    len(v.sig),
			input: tp.input,
			body:  tp.parseSeq(),
		}}
	}

	var parts []*partExpr
	for tp.j < len(v.sig) {
		open := v.at(tp.j)
		tp.j++
		expr := &partExpr{
			count: open.replicas(),
			lo:    tp.j,
		}
		expr.body = tp.parseSeq()
		expr.hi = tp.j
		end := v.at(tp.j)
		tp.j++
		expr.input = tp.input[open.offset+len(open.text) : end.offset]
		parts = append(parts, expr)
	}
	return parts
}

// parseSeq consumes units until a closing bracket or the end of input.  The closing bracket is left for the caller.
func (tp *treeParser) parseSeq() []*unit {
	var seq []*unit
	for ; tp.j < len(tp.v.sig); tp.j++ {
		tok := tp.v.at(tp.j)
		var last *unit
		if len(seq) > 0 {
			last = seq[len(seq)-1]
		}

		switch tok.kind {
		case tokParticle:
			seq = append(seq, &unit{kind: unitParticle, tok: tok})
		case tokMonomer:
			seq = append(seq, &unit{kind: unitMonomerTag, tok: tok})
		case tokOpen:
			u := &unit{tok: tok}
			if tok.bracket == curlyBracket {
				u.kind = unitMonomer
			} else {
				u.kind = unitBranch
				u.fragment = last == nil || (last.kind == unitBranch && last.fragment)
			}
			tp.j++
			u.body = tp.parseSeq()
			seq = append(seq, u)
		case tokClose:
			return seq
		case tokRing:
			last.rings = append(last.rings, tok.value)
		case tokTag:
			last.tags = append(last.tags, tok.tag)
		case tokBackbone:
			last.backbone = tok.value
		}
	}
	return seq
}

// instance is one particle in the expanded structure.
type instance struct {
	name     string
	part     int
	monomer  bool // set for a #Name node
	head     bool
	tail     bool
	start    bool
	end      bool
	backbone int
}

type edgeKind int8

const (
	edgeSequential edgeKind = iota
	edgeBranch
	edgeRing
	edgeMonomer
	numEdgeKinds
)

type bond struct {
	a, b int
	kind edgeKind
}

type monomerRefs struct {
	head int
	tail int
}

// structureBuilder expands a parsed tree into an arena of instances and the bonds between them.
type structureBuilder struct {
	inst   []instance
	bonds  []bond
	parts  []*part
	rings  map[int]int
	scopes []*monomerRefs
	cur    *part
}

func (Xb *structureBuilder) build(exprs []*partExpr) {
	Xb.rings = make(map[int]int)
	for _, expr := range exprs {
		for r := 0; r < expr.count; r++ {
			Xb.cur = &part{
				expr:  expr,
				first: len(Xb.inst),
				start: -1,
				end:   -1,
			}
			for k := range Xb.rings {
				delete(Xb.rings, k)
			}
			Xb.expandSeq(expr.body, -1, edgeSequential)
			Xb.cur.count = len(Xb.inst) - Xb.cur.first
			Xb.parts = append(Xb.parts, Xb.cur)
		}
	}
}

// expandSeq adds the instances of seq, attaching the first one to cursor (if any) with a bond of the given kind.
// It returns the instance that following units attach to.
func (Xb *structureBuilder) expandSeq(seq []*unit, cursor int, kind edgeKind) int {
	for _, u := range seq {
		switch u.kind {
		case unitParticle, unitMonomerTag:
			for r := u.tok.replicas(); r > 0; r-- {
				id := len(Xb.inst)
				Xb.inst = append(Xb.inst, instance{
					name:    u.tok.name,
					part:    len(Xb.parts),
					monomer: u.kind == unitMonomerTag,
				})
				if cursor >= 0 {
					Xb.link(cursor, id, kind)
				}
				kind = edgeSequential
				cursor = id
			}
			Xb.applyAttrs(u, cursor)

		case unitBranch:
			if u.fragment {
				Xb.cur.fragments++
				Xb.expandSeq(u.body, -1, edgeSequential)
			} else {
				Xb.expandSeq(u.body, cursor, edgeBranch)
			}

		case unitMonomer:
			for r := u.tok.replicas(); r > 0; r-- {
				refs := &monomerRefs{-1, -1}
				Xb.scopes = append(Xb.scopes, refs)
				Xb.expandSeq(u.body, -1, edgeSequential)
				Xb.scopes = Xb.scopes[:len(Xb.scopes)-1]
				if cursor >= 0 && refs.head >= 0 {
					Xb.link(cursor, refs.head, edgeMonomer)
				}
				cursor = refs.tail
			}
			kind = edgeSequential
		}
	}
	return cursor
}

func (Xb *structureBuilder) applyAttrs(u *unit, id int) {
	for _, ring := range u.rings {
		if other, open := Xb.rings[ring]; open {
			Xb.link(other, id, edgeRing)
			delete(Xb.rings, ring)
		} else {
			Xb.rings[ring] = id
		}
	}

	in := &Xb.inst[id]
	in.backbone = u.backbone
	for _, tag := range u.tags {
		switch tag {
		case tagHead:
			in.head = true
			if n := len(Xb.scopes); n > 0 {
				Xb.scopes[n-1].head = id
			}
		case tagTail:
			in.tail = true
			if n := len(Xb.scopes); n > 0 {
				Xb.scopes[n-1].tail = id
			}
		case tagStart:
			in.start = true
			Xb.cur.start = id
		case tagEnd:
			in.end = true
			Xb.cur.end = id
		}
	}
}

func (Xb *structureBuilder) link(a, b int, kind edgeKind) {
	if a == b {
		return
	}
	Xb.bonds = append(Xb.bonds, bond{a, b, kind})
}

// adjacency returns the sorted, distinct neighbors of every instance, optionally leaving out ring bonds.
func adjacency(numInst int, bonds []bond, withRings bool) [][]int {
	adj := make([][]int, numInst)
	for _, bd := range bonds {
		if bd.kind == edgeRing && !withRings {
			continue
		}
		adj[bd.a] = append(adj[bd.a], bd.b)
		adj[bd.b] = append(adj[bd.b], bd.a)
	}
	for i, nbrs := range adj {
		sort.Ints(nbrs)
		out := nbrs[:0]
		for _, n := range nbrs {
			if len(out) == 0 || n != out[len(out)-1] {
				out = append(out, n)
			}
		}
		adj[i] = out
	}
	return adj
}
