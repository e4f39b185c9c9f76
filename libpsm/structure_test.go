package libpsm_test

import (
	"testing"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *libpsm.Structure {
	t.Helper()
	X, err := libpsm.Parse(input, psm.ParseOpts{})
	require.NoError(t, err, input)
	return X
}

func TestParts(t *testing.T) {
	X := mustParse(t, "<A-B>2<C>3<D-E>")
	parts := X.Parts()
	require.Len(t, parts, 6)
	assert.True(t, X.HasMultipleParts())

	var names [][]string
	for _, P := range parts {
		names = append(names, P.Particles())
	}
	assert.Equal(t, [][]string{{"A", "B"}, {"C"}, {"C"}, {"D", "E"}, {"D", "E"}, {"D", "E"}}, names)
	assert.Equal(t, "D-E", parts[5].Input())

	first, count := parts[3].InstanceRange()
	assert.Equal(t, 4, first)
	assert.Equal(t, 2, count)

	X = mustParse(t, "3<A>2<A><C-C-C>50<D>")
	assert.Len(t, X.Parts(), 56)
	assert.Len(t, X.Particles(), 3+2+3+50)

	X = mustParse(t, "A-B")
	require.Len(t, X.Parts(), 1)
	assert.False(t, X.HasMultipleParts())
	assert.Equal(t, "A-B", X.Parts()[0].Input())
}

func TestParticles(t *testing.T) {
	X := mustParse(t, "A-2{B[HEAD]-C[TAIL]}-#Dimer")
	assert.Equal(t, []string{"A", "B", "C", "B", "C", "#Dimer"}, X.Particles())
	assert.Equal(t, []string{"#Dimer"}, X.MonomerNames())

	X = mustParse(t, "A'1'-B-C'2'")
	assert.Equal(t, []int{1, 0, 2}, X.BackboneIndices())
	assert.True(t, X.HasBackboneParticle())
	assert.False(t, mustParse(t, "A-B").HasBackboneParticle())
}

func TestFrequencies(t *testing.T) {
	X := mustParse(t, "A-B(A)-A-B")
	assert.Equal(t, map[string]int{"A": 3, "B": 2}, X.Frequencies().AsMap())

	X = mustParse(t, "2<A-B><A-B-C>")
	assert.Equal(t, map[string]int{"A": 3, "B": 3, "C": 1}, X.Frequencies().AsMap())

	X = mustParse(t, "2{A[HEAD]-2B-C[TAIL]}")
	assert.Equal(t, map[string]int{"A": 2, "B": 4, "C": 2}, X.Frequencies().AsMap())

	X = mustParse(t, "A-2B-3{4A-B[HEAD]-C-D[TAIL]}-6B-A")
	counts := X.Frequencies()
	assert.Equal(t, 31, counts.TotalParticles())
	assert.Equal(t, 4, counts.DistinctParticles())
	assert.Equal(t, 14, counts.Frequency("A"))
	assert.Equal(t, 11, counts.Frequency("B"))
	assert.Equal(t, 3, counts.Frequency("C"))
	assert.Equal(t, 3, counts.Frequency("D"))
	assert.Equal(t, 0, counts.Frequency("F"))
	assert.True(t, counts.HasParticle("A"))
	assert.False(t, counts.HasParticle("F"))
	assert.Equal(t, []psm.NameCount{{"A", 14}, {"B", 11}, {"C", 3}, {"D", 3}}, counts.Sorted())

	X = mustParse(t, "C-A-#Hugo-B-A")
	counts = X.Frequencies()
	assert.Equal(t, 4, counts.TotalParticles())
	assert.Equal(t, []psm.NameCount{{"C", 1}, {"A", 2}, {"B", 1}}, counts.InOrder())
	assert.Equal(t, []psm.NameCount{{"A", 2}, {"B", 1}, {"C", 1}}, counts.Sorted())

	X = mustParse(t, "<A-B><C-C>")
	assert.Equal(t, map[string]int{"C": 2}, X.Parts()[1].Frequencies().AsMap())
}

func TestMaxConnections(t *testing.T) {
	tests := []struct {
		input string
		max   int
	}{
		{"A", 0},
		{"A-B", 1},
		{"A-B-C", 2},
		{"A(B)(C)-D", 3},
		{"A[1]-B-C[1]", 2},
		{"A[1][2]-B[1][2]", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.max, mustParse(t, tt.input).MaxConnections(), tt.input)
	}
}

func TestPathStartToEnd(t *testing.T) {
	X := mustParse(t, "A[START]-B-C[END]")
	assert.Equal(t, []int{0, 1, 2}, X.PathStartToEnd())

	X = mustParse(t, "A-B[END]-C(J-K[1])-D(E)(F-G)-H[1]-I[START]-L")
	assert.Equal(t, []int{10, 9, 5, 2, 1}, X.PathStartToEnd())

	X = mustParse(t, "<A'1'[START](B4-C[1])(C[END]-A'2')-D[1]-3E-4{A[HEAD]-B[TAIL]}><H2O-#Hugo>")
	parts := X.Parts()
	require.Len(t, parts, 2)
	assert.Equal(t, []int{0, 3}, parts[0].PathStartToEnd())
	assert.Nil(t, parts[1].PathStartToEnd())
	assert.Nil(t, X.PathStartToEnd())

	assert.Nil(t, mustParse(t, "A-B-C").PathStartToEnd())
}
