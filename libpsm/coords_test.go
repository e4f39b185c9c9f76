package libpsm_test

import (
	"math"
	"testing"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coordDelta = 1e-3

var diagonal = psm.AnchorPair{
	First: psm.Point3{},
	Last:  psm.Point3{X: 10, Y: 10, Z: 10},
}

func assertXs(t *testing.T, expected []float64, pts []psm.Point3, msg string) {
	t.Helper()
	require.Len(t, pts, len(expected), msg)
	for i, x := range expected {
		assert.InDelta(t, x, pts[i].X, coordDelta, "%s [%d]", msg, i)
		assert.InDelta(t, pts[i].X, pts[i].Y, coordDelta, "%s [%d]", msg, i)
		assert.InDelta(t, pts[i].X, pts[i].Z, coordDelta, "%s [%d]", msg, i)
	}
}

func TestCoordinates(t *testing.T) {
	tests := []struct {
		input string
		xs    [][]float64
	}{
		{"A-B-C(D)-E-F", [][]float64{{0, 0.57735, 1.1547, 1.1547, 1.73205, 2.3094}}},
		{"A-B-C(D[START])-E[END]-F", [][]float64{{0.57735, 0.57735, 0.57735, 0, 1.1547, 1.1547}}},
		{"<A-B><C-D-E>", [][]float64{{0, 0.57735}, {0, 0.57735, 1.1547}}},
		{"A[1]-B-C[1]", [][]float64{{0, 0.57735, 1.1547}}},
	}
	for _, tt := range tests {
		X := mustParse(t, tt.input)
		coords, err := X.Coordinates(psm.CoordOpts{
			Anchors: []psm.AnchorPair{diagonal},
		})
		require.NoError(t, err, tt.input)
		require.Len(t, coords, len(tt.xs), tt.input)
		for i := range tt.xs {
			assertXs(t, tt.xs[i], coords[i], tt.input)
		}
	}
}

func TestCoordinatesShortChain(t *testing.T) {
	X := mustParse(t, "A-3B-CD")
	coords, err := X.Coordinates(psm.CoordOpts{
		Anchors:    []psm.AnchorPair{{Last: psm.Point3{X: 4, Y: 4, Z: 4}}},
		BondLength: 2,
	})
	require.NoError(t, err)
	require.Len(t, coords, 1)
	assertXs(t, []float64{0, 1, 2, 3, 4}, coords[0], "A-3B-CD")
}

func TestCoordinatesSideChains(t *testing.T) {
	X := mustParse(t, "Methan(EtAcetate-14Methan)-Methan(EtAcetate-6Methan-CisButen-8Methan)-Methan-DMP-Ethylamin")
	coords, err := X.Coordinates(psm.CoordOpts{
		Anchors: []psm.AnchorPair{diagonal},
	})
	require.NoError(t, err)
	require.Len(t, coords, 1)

	pts := coords[0]
	require.Len(t, pts, 36)
	assert.InDelta(t, pts[33].X, pts[34].X, coordDelta)
	assert.InDelta(t, pts[34].X, pts[35].X, coordDelta)
}

func TestCoordinatesPerPartAnchors(t *testing.T) {
	X := mustParse(t, "<A-B><C-D>")
	coords, err := X.Coordinates(psm.CoordOpts{
		Anchors: []psm.AnchorPair{
			diagonal,
			{First: psm.Point3{X: 5}, Last: psm.Point3{X: 15}},
		},
	})
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assert.Equal(t, psm.Point3{X: 5}, coords[1][0])
	assert.Equal(t, psm.Point3{X: 6}, coords[1][1])
}

func TestCoordinatesErrors(t *testing.T) {
	X := mustParse(t, "<A-B><C-D><E>")

	_, err := X.Coordinates(psm.CoordOpts{
		Anchors: []psm.AnchorPair{diagonal, diagonal},
	})
	assert.ErrorIs(t, err, psm.ErrBadAnchors)

	_, err = X.Coordinates(psm.CoordOpts{})
	assert.ErrorIs(t, err, psm.ErrBadAnchors)

	for _, bondLen := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = X.Coordinates(psm.CoordOpts{
			Anchors:    []psm.AnchorPair{diagonal},
			BondLength: bondLen,
		})
		assert.ErrorIs(t, err, psm.ErrBadBondLength, "%v", bondLen)
	}

	invalid := libpsm.New("A--B", psm.ParseOpts{})
	_, err = invalid.Coordinates(psm.CoordOpts{
		Anchors: []psm.AnchorPair{diagonal},
	})
	assert.ErrorIs(t, err, psm.ErrInvalidStructure)
}

func TestParseWithCoords(t *testing.T) {
	X, err := libpsm.Parse("A-B", psm.ParseOpts{
		Coords: &psm.CoordOpts{
			Anchors: []psm.AnchorPair{{Last: psm.Point3{Z: 10}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
		{"2", "B", "0", "0.0", "0.0", "1.0", "-1"},
	}, X.PositionTable())
}
