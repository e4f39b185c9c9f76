package libpsm

import (
	"strconv"
	"strings"

	"github.com/2x3systems/psmiles/psm"
)

// PositionTable returns a row per instance: index, name, backbone, x, y, z and the signed index deltas to every
// bonded instance.  Coordinates are empty unless they were requested via ParseOpts.Coords.
func (X *Structure) PositionTable() [][]string {
	if X.err != nil {
		return nil
	}
	return X.appendRows(nil, X.opts.StartIndex, X.coords)
}

// ReplicaTable renders the structure once per anchor pair, each pair applying to every part.
func (X *Structure) ReplicaTable(opts psm.CoordOpts) ([][]string, error) {
	if X.err != nil {
		return nil, psm.ErrInvalidStructure
	}
	if len(opts.Anchors) == 0 {
		return nil, psm.ErrBadAnchors
	}

	var rows [][]string
	for k, anchors := range opts.Anchors {
		coords, err := X.Coordinates(psm.CoordOpts{
			Anchors:    []psm.AnchorPair{anchors},
			BondLength: opts.BondLength,
		})
		if err != nil {
			return nil, err
		}
		rows = X.appendRows(rows, X.opts.StartIndex+k*len(X.inst), coords)
	}
	return rows, nil
}

func (X *Structure) appendRows(rows [][]string, startIndex int, coords [][]psm.Point3) [][]string {
	for i, P := range X.parts {
		var partCoords []psm.Point3
		if i < len(coords) {
			partCoords = coords[i]
		}
		for local := 0; local < P.count; local++ {
			id := P.first + local
			in := &X.inst[id]
			row := make([]string, 6, 6+len(X.adj[id]))
			row[0] = strconv.Itoa(startIndex + id)
			row[1] = in.name
			row[2] = strconv.Itoa(in.backbone)
			if partCoords != nil {
				pt := partCoords[local]
				row[3] = formatFloat(pt.X)
				row[4] = formatFloat(pt.Y)
				row[5] = formatFloat(pt.Z)
			}
			for _, nbr := range X.adj[id] {
				row = append(row, strconv.Itoa(nbr-id))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// formatFloat gives the shortest form of f that parses back to f, always with a decimal point.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
