package libpsm_test

import (
	"strconv"
	"testing"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionTable(t *testing.T) {
	X := mustParse(t, "A-B(C)-D'1'")
	assert.Equal(t, [][]string{
		{"1", "A", "0", "", "", "", "1"},
		{"2", "B", "0", "", "", "", "-1", "1", "2"},
		{"3", "C", "0", "", "", "", "-1"},
		{"4", "D", "1", "", "", "", "-2"},
	}, X.PositionTable())

	X, err := libpsm.Parse("A[1]-B-C[1]", psm.ParseOpts{StartIndex: 10})
	require.NoError(t, err)
	rows := X.PositionTable()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"10", "A", "0", "", "", "", "1", "2"}, rows[0])
	assert.Equal(t, []string{"12", "C", "0", "", "", "", "-2", "-1"}, rows[2])

	assert.Nil(t, libpsm.New("A-", psm.ParseOpts{}).PositionTable())
}

func TestReplicaTable(t *testing.T) {
	X := mustParse(t, "A-B")
	rows, err := X.ReplicaTable(psm.CoordOpts{
		Anchors: []psm.AnchorPair{
			{Last: psm.Point3{X: 10}},
			{First: psm.Point3{Y: 5}, Last: psm.Point3{X: 10, Y: 5}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
		{"2", "B", "0", "1.0", "0.0", "0.0", "-1"},
		{"3", "A", "0", "0.0", "5.0", "0.0", "1"},
		{"4", "B", "0", "1.0", "5.0", "0.0", "-1"},
	}, rows)

	_, err = X.ReplicaTable(psm.CoordOpts{})
	assert.ErrorIs(t, err, psm.ErrBadAnchors)
}

func unitCube(x float64) psm.Point3 {
	return psm.Point3{X: x, Y: x, Z: x}
}

func TestPositionTableCoordinates(t *testing.T) {
	tests := []struct {
		input   string
		anchors psm.AnchorPair
		bondLen float64
		rows    [][]string
	}{
		{"A-B-C(D)-E-F", psm.AnchorPair{Last: unitCube(10)}, 1, [][]string{
			{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
			{"2", "B", "0", "0.5773502691896257", "0.5773502691896257", "0.5773502691896257", "-1", "1"},
			{"3", "C", "0", "1.1547005383792515", "1.1547005383792515", "1.1547005383792515", "-1", "1", "2"},
			{"4", "D", "0", "1.1547005383792515", "1.1547005383792515", "1.1547005383792515", "-1"},
			{"5", "E", "0", "1.7320508075688772", "1.7320508075688772", "1.7320508075688772", "-2", "1"},
			{"6", "F", "0", "2.309401076758503", "2.309401076758503", "2.309401076758503", "-1"},
		}},
		{"A-B-C(D)-E-F", psm.AnchorPair{Last: unitCube(1)}, 1, [][]string{
			{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
			{"2", "B", "0", "0.25", "0.25", "0.25", "-1", "1"},
			{"3", "C", "0", "0.5", "0.5", "0.5", "-1", "1", "2"},
			{"4", "D", "0", "0.5", "0.5", "0.5", "-1"},
			{"5", "E", "0", "0.75", "0.75", "0.75", "-2", "1"},
			{"6", "F", "0", "1.0", "1.0", "1.0", "-1"},
		}},
		{"3A-B(2C)-3D", psm.AnchorPair{Last: unitCube(1)}, 1, [][]string{
			{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
			{"2", "A", "0", "0.16666666666666666", "0.16666666666666666", "0.16666666666666666", "-1", "1"},
			{"3", "A", "0", "0.3333333333333333", "0.3333333333333333", "0.3333333333333333", "-1", "1"},
			{"4", "B", "0", "0.5", "0.5", "0.5", "-1", "1", "3"},
			{"5", "C", "0", "0.5", "0.5", "0.5", "-1", "1"},
			{"6", "C", "0", "0.5", "0.5", "0.5", "-1"},
			{"7", "D", "0", "0.6666666666666666", "0.6666666666666666", "0.6666666666666666", "-3", "1"},
			{"8", "D", "0", "0.8333333333333333", "0.8333333333333333", "0.8333333333333333", "-1", "1"},
			{"9", "D", "0", "1.0", "1.0", "1.0", "-1"},
		}},
	}
	for _, tt := range tests {
		X, err := libpsm.Parse(tt.input, psm.ParseOpts{
			Coords: &psm.CoordOpts{
				Anchors:    []psm.AnchorPair{tt.anchors},
				BondLength: tt.bondLen,
			},
		})
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.rows, X.PositionTable(), "%s %v", tt.input, tt.anchors)
	}
}

func TestReplicaTableShortenedStep(t *testing.T) {
	X := mustParse(t, "A-3B-CD")
	rows, err := X.ReplicaTable(psm.CoordOpts{
		Anchors: []psm.AnchorPair{
			{First: unitCube(0), Last: unitCube(4)},
			{First: unitCube(4), Last: unitCube(0)},
			{First: psm.Point3{X: 1, Y: 2, Z: 3}, Last: psm.Point3{X: 3, Y: 2, Z: 1}},
		},
		BondLength: 2,
	})
	require.NoError(t, err)

	nbrs := [][]string{{"1"}, {"-1", "1"}, {"-1", "1"}, {"-1", "1"}, {"-1"}}
	names := []string{"A", "B", "B", "B", "CD"}
	xyz := [][3]string{
		{"0.0", "0.0", "0.0"}, {"1.0", "1.0", "1.0"}, {"2.0", "2.0", "2.0"}, {"3.0", "3.0", "3.0"}, {"4.0", "4.0", "4.0"},
		{"4.0", "4.0", "4.0"}, {"3.0", "3.0", "3.0"}, {"2.0", "2.0", "2.0"}, {"1.0", "1.0", "1.0"}, {"0.0", "0.0", "0.0"},
		{"1.0", "2.0", "3.0"}, {"1.5", "2.0", "2.5"}, {"2.0", "2.0", "2.0"}, {"2.5", "2.0", "1.5"}, {"3.0", "2.0", "1.0"},
	}

	require.Len(t, rows, len(xyz))
	for i, pt := range xyz {
		expected := append([]string{strconv.Itoa(i + 1), names[i%5], "0", pt[0], pt[1], pt[2]}, nbrs[i%5]...)
		assert.Equal(t, expected, rows[i], "row %d", i+1)
	}
}
