package libpsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	tests := []struct {
		input    string
		depth    int
		level    int
		doublets bool
		walks    []string
	}{
		{"A-B-C", 2, 1, true, []string{"A-B", "B-A", "B-C", "C-B"}},
		{"A-B-C", 2, 1, false, []string{"A-B", "B-C"}},
		{"C-C-B-A-B-A", 1, 0, true, []string{"A", "B", "C"}},
		{"<H2O><H2O>", 1, 0, true, []string{"H2O", "H2O"}},
		{"A[1]-B-C[1]", 2, 1, true, []string{"A-B", "A-C", "B-A", "B-C", "C-A", "C-B"}},
		{"3A", 2, 1, true, []string{"A-A"}},
		{"A-B-C", 3, 2, true, []string{"A-B-C", "C-B-A"}},
		{"A-B-C", 3, 2, false, []string{"A-B-C"}},
		{"A(B-C)(D)-E", 5, 4, true, nil},
		{"3A", 4, 3, true, nil},
		{"10A", 9, 8, true, []string{"A-A-A-A-A-A-A-A-A"}},
		{"A-2{B-C[HEAD]-3D-E[TAIL]}", 3, 2, false, []string{
			"A-C-B", "A-C-D", "B-C-D", "B-C-E", "C-D-D", "C-E-D", "D-C-E", "D-D-D", "D-D-E",
		}},
	}
	for _, tt := range tests {
		X := mustParse(t, tt.input)
		table := X.Neighbors(tt.depth, tt.doublets)
		require.Len(t, table, tt.depth, tt.input)
		assert.Equal(t, tt.walks, table[tt.level], tt.input)
	}
}

func TestNeighborCounts(t *testing.T) {
	tests := []struct {
		input string
		depth int
		level int
		count int
	}{
		{"A-{B-C[TAIL]-D[HEAD]-E}-F", 2, 1, 10},
		{"A-3B-C", 2, 1, 5},
		{"A[1]-B-C-D-E[1]", 6, 4, 10},
		{"A-2{B-C[HEAD]-3D-E[TAIL]}", 3, 2, 17},
	}
	for _, tt := range tests {
		table := mustParse(t, tt.input).Neighbors(tt.depth, true)
		require.Len(t, table, tt.depth, tt.input)
		assert.Len(t, table[tt.level], tt.count, tt.input)
	}
}

func TestNeighborsPerPart(t *testing.T) {
	X := mustParse(t, "<A-B><C-D>")
	assert.Equal(t, []string{"A-B", "B-A", "C-D", "D-C"}, X.Neighbors(2, true)[1])

	parts := X.Parts()
	assert.Equal(t, [][]string{{"C", "D"}, {"C-D", "D-C"}}, parts[1].Neighbors(2, true))

	assert.Nil(t, X.Neighbors(0, true))
	assert.Nil(t, parts[0].Neighbors(-1, true))
}
