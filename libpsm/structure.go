package libpsm

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/psmiles/psm"
	"github.com/plan-systems/klog"
)

// Structure is the parse of one notation string.  It implements psm.Structure.
type Structure struct {
	input    string
	opts     psm.ParseOpts
	toks     []token
	sig      []int
	err      *psm.ParseError
	rendered []string
	inst     []instance
	bonds    []bond
	adj      [][]int
	parts    []*part
	coords   [][]psm.Point3 // set when ParseOpts.Coords was given
	monomers []string
}

// New parses the given notation string.  The result is never nil; check IsValid() or Err().
func New(input string, opts psm.ParseOpts) *Structure {
	X := &Structure{}
	X.SetInput(input, opts)
	return X
}

// Parse returns the parse of input, or the *psm.ParseError describing its first defect.
func Parse(input string, opts psm.ParseOpts) (*Structure, error) {
	X := New(input, opts)
	if X.err != nil {
		return nil, X.err
	}
	return X, nil
}

func (X *Structure) SetInput(input string, opts psm.ParseOpts) {
	*X = Structure{
		input: input,
		opts:  opts,
	}
	if X.opts.StartIndex == 0 {
		X.opts.StartIndex = psm.DefaultStartIndex
	}

	toks, err := tokenize(input)
	if err != nil {
		klog.Warningf("lexer failed on %q: %v", input, err)
		X.err = &psm.ParseError{Kind: psm.InvalidCharacter}
		return
	}
	X.toks = toks

	v := newValidator(toks, opts.Particles)
	X.sig = v.sig
	X.err = v.validate()
	if X.err == nil && opts.RequireMonomer {
		X.err = v.checkMonomerMode()
	}

	if X.err == nil || (X.err.Kind != psm.NoTokens && X.err.Kind != psm.InvalidCharacter) {
		X.rendered = renderTokens(X.toks, X.sig)
	}

	if X.err == nil {
		X.err = X.build(v)
	}

	if X.err != nil {
		klog.V(2).Infof("%q: %d tokens, %v", input, len(X.sig), X.err)
		return
	}
	klog.V(2).Infof("%q: %d tokens, %d parts, %d particles", input, len(X.sig), len(X.parts), len(X.inst))

	if opts.Coords != nil {
		X.coords, err = X.Coordinates(*opts.Coords)
		if err != nil {
			klog.Warningf("coordinates for %q: %v", input, err)
		}
	}
}

func (X *Structure) build(v *validator) *psm.ParseError {
	tp := treeParser{
		v:     v,
		input: X.input,
	}
	exprs := tp.parseParts()

	var Xb structureBuilder
	Xb.build(exprs)

	X.inst = Xb.inst
	X.bonds = Xb.bonds
	X.parts = Xb.parts
	X.adj = adjacency(len(X.inst), X.bonds, true)

	if klog.V(3) {
		var perKind [numEdgeKinds]int
		for _, bd := range X.bonds {
			perKind[bd.kind]++
		}
		klog.Infof("built %d instances; sequential %d, branch %d, ring %d, monomer %d",
			len(X.inst), perKind[edgeSequential], perKind[edgeBranch], perKind[edgeRing], perKind[edgeMonomer])
	}

	for _, P := range X.parts {
		P.X = X
		if err := P.buildGraph(X.bonds); err != nil {
			klog.Warningf("part graph for %q: %v", P.Input(), err)
		}
		if !P.isConnected() {
			return fail(psm.MissingConnection, X.partOpenToken(P))
		}
	}

	for _, i := range X.sig {
		if tok := &X.toks[i]; tok.kind == tokMonomer && !containsString(X.monomers, tok.name) {
			X.monomers = append(X.monomers, tok.name)
		}
	}
	return nil
}

// partOpenToken returns the first token of P's body.
func (X *Structure) partOpenToken(P *part) *token {
	if P.expr.lo < len(X.sig) {
		return &X.toks[X.sig[P.expr.lo]]
	}
	return nil
}

func (X *Structure) Input() string {
	return X.input
}

func (X *Structure) IsValid() bool {
	return X.err == nil
}

func (X *Structure) Err() error {
	if X.err == nil {
		return nil
	}
	return X.err
}

func (X *Structure) ErrorKind() psm.ErrorKind {
	if X.err == nil {
		return psm.Valid
	}
	return X.err.Kind
}

// ErrorOffset returns the byte offset of the first defect, or -1 if valid.
func (X *Structure) ErrorOffset() int {
	if X.err == nil {
		return -1
	}
	return X.err.Offset
}

func (X *Structure) Tokens() []string {
	return X.rendered
}

func (X *Structure) Key() string {
	return strings.Join(X.rendered, "")
}

func (X *Structure) Particles() []string {
	if X.err != nil {
		return nil
	}
	names := make([]string, len(X.inst))
	for i, in := range X.inst {
		names[i] = in.name
	}
	return names
}

func (X *Structure) ParticleIndices() []int {
	if X.err != nil || len(X.parts) != 1 {
		return nil
	}
	return particleOffsets(X.rendered)
}

func (X *Structure) BackboneIndices() []int {
	if X.err != nil {
		return nil
	}
	idx := make([]int, len(X.inst))
	for i, in := range X.inst {
		idx[i] = in.backbone
	}
	return idx
}

func (X *Structure) HasBackboneParticle() bool {
	for _, in := range X.inst {
		if in.backbone > 0 {
			return true
		}
	}
	return false
}

func (X *Structure) MonomerNames() []string {
	return X.monomers
}

func (X *Structure) Parts() []psm.Part {
	if X.err != nil {
		return nil
	}
	parts := make([]psm.Part, len(X.parts))
	for i, P := range X.parts {
		parts[i] = P
	}
	return parts
}

func (X *Structure) HasMultipleParts() bool {
	return len(X.parts) > 1
}

func (X *Structure) Neighbors(depth int, allowDoublets bool) [][]string {
	if X.err != nil || depth < 1 {
		return nil
	}
	var table [][]string
	for _, P := range X.parts {
		walks := P.Neighbors(depth, allowDoublets)
		if table == nil {
			table = make([][]string, depth)
		}
		for k := range walks {
			table[k] = append(table[k], walks[k]...)
		}
	}
	return table
}

func (X *Structure) Frequencies() psm.ParticleCounts {
	if X.err != nil {
		return countParticles(nil)
	}
	return countParticles(X.inst)
}

// MaxConnections returns the highest number of distinct instances bonded to any one instance.
func (X *Structure) MaxConnections() int {
	max := 0
	for _, nbrs := range X.adj {
		if len(nbrs) > max {
			max = len(nbrs)
		}
	}
	return max
}

func (X *Structure) PathStartToEnd() []int {
	if X.err != nil || len(X.parts) != 1 {
		return nil
	}
	return X.parts[0].PathStartToEnd()
}

func (X *Structure) WriteAsString(out io.Writer, opts psm.PrintOpts) {
	if opts.Tokens {
		io.WriteString(out, X.Key())
	} else {
		io.WriteString(out, X.input)
	}
	if opts.Error {
		fmt.Fprintf(out, ",%v,%d", X.ErrorKind(), X.ErrorOffset())
	}
	if opts.Counts {
		fmt.Fprintf(out, ",%d,%d", len(X.parts), len(X.inst))
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
