package psm

import "io"

const (

	// DefaultStartIndex is the index given to the first particle instance in a position table.
	DefaultStartIndex = 1

	// MaxParticleNameLen is the longest particle name accepted.
	MaxParticleNameLen = 16

	// DefaultBondLength is the bond length used when CoordOpts.BondLength is zero.
	DefaultBondLength = 1.0
)

// ParseOpts configures how a notation string is validated and built.
type ParseOpts struct {
	RequireMonomer bool       // if set, the whole structure must be a single {...} monomer group
	Particles      []string   // allowed particle names; empty means any name is allowed
	StartIndex     int        // index of the first particle instance in tables (0 denotes DefaultStartIndex)
	Coords         *CoordOpts // if set, coordinates are computed as part of parsing
}

// AnchorPair is the first and last point of a principal chain.
type AnchorPair struct {
	First Point3
	Last  Point3
}

// CoordOpts specifies how particle instances are placed in space.
type CoordOpts struct {
	Anchors    []AnchorPair // one pair per Part, or a single pair used for every Part
	BondLength float64      // 0 denotes DefaultBondLength
}

// NameCount is a particle name and how many instances carry it.
type NameCount struct {
	Name  string
	Count int
}

// ParticleCounts tallies particle names over a fully expanded instance sequence.
type ParticleCounts interface {
	TotalParticles() int
	DistinctParticles() int
	Frequency(name string) int
	HasParticle(name string) bool

	// InOrder lists names in order of first appearance.
	InOrder() []NameCount

	// Sorted lists names in lexical order.
	Sorted() []NameCount

	AsMap() map[string]int
}

// Part is one connected structure: a <...> group (or one replica of it) or the whole input when ungrouped.
type Part interface {

	// Input returns the source text of this part, without its angle brackets.
	Input() string

	// Particles returns the names of this part's particle instances in order.
	Particles() []string

	// ParticleIndices returns the offset of each particle instance within this part's compact rendering.
	ParticleIndices() []int

	// PathStartToEnd returns 0-based instance positions from the START particle to the END particle, or nil.
	PathStartToEnd() []int

	Frequencies() ParticleCounts

	// Neighbors returns, for k = 1..depth, the sorted set of k-particle walks in this part (nil where none exist).
	Neighbors(depth int, allowDoublets bool) [][]string

	// InstanceRange returns the 0-based position of this part's first instance within the whole structure and its instance count.
	InstanceRange() (first, count int)
}

// Structure is a parsed notation string.  Once built, it is read-only until SetInput is called.
type Structure interface {

	// SetInput discards the current parse and parses the given input.
	SetInput(input string, opts ParseOpts)

	Input() string
	IsValid() bool

	// Err returns nil if valid, otherwise a *ParseError.
	Err() error

	// ErrorKind returns Valid or the kind of the first defect found.
	ErrorKind() ErrorKind

	// Tokens returns the normalized token rendering, available whenever the input lexed.
	Tokens() []string

	// Key returns the compact normalized rendering, equal for spellings of the same structure.
	Key() string

	Particles() []string
	ParticleIndices() []int
	BackboneIndices() []int
	HasBackboneParticle() bool
	MonomerNames() []string

	Parts() []Part
	HasMultipleParts() bool

	// Neighbors concatenates the Neighbors of every Part.
	Neighbors(depth int, allowDoublets bool) [][]string

	Frequencies() ParticleCounts
	MaxConnections() int

	// PathStartToEnd returns the START to END path of a single-part structure.
	PathStartToEnd() []int

	// Coordinates places every particle instance, one slice per Part.
	Coordinates(opts CoordOpts) ([][]Point3, error)

	// PositionTable returns a row per particle instance: index, name, backbone, x, y, z, connection deltas.
	// Coordinates are filled in when ParseOpts.Coords was given.
	PositionTable() [][]string

	// ReplicaTable renders the whole structure once per anchor pair, with numbering continuing across replicas.
	ReplicaTable(opts CoordOpts) ([][]string, error)

	WriteAsString(out io.Writer, opts PrintOpts)
}

// StructureAdder accepts structures and reports if each was new.
type StructureAdder interface {

	// TryAdd adds X if an equivalent structure has not already been added and returns true if X was added.
	TryAdd(X Structure) bool
}

// StructureSet is a StructureAdder that must be closed when done.
type StructureSet interface {
	StructureAdder

	// Add is TryAdd that also reports a failure of the set's backing store.
	Add(X Structure) (bool, error)

	// Close removes all previously added items.
	Close()
}

// PrintOpts specifies what is printed for a structure.
type PrintOpts struct {
	Label  string // Prefix label
	Tokens bool   // If set, prints the normalized rendering instead of the input
	Error  bool   // If set, prints the error kind and offset
	Counts bool   // If set, prints part and particle counts
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Error:  true,
	Counts: true,
}
