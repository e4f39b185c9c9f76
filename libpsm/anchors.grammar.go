package libpsm

import (
	"github.com/2x3systems/psmiles/psm"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// AnchorsExpr is one or more anchor pairs, e.g. "(0,0,0)->(10,10,10); (1,0,0)->(1,5,0)"
type AnchorsExpr struct {
	Pairs []*AnchorPairExpr `@@ (";" @@)*`
}

type AnchorPairExpr struct {
	First *PointExpr `@@ "->"`
	Last  *PointExpr `@@`
}

type PointExpr struct {
	X float64 `"(" @Number ","`
	Y float64 `@Number ","`
	Z float64 `@Number ")"`
}

func (pt *PointExpr) Point3() psm.Point3 {
	return psm.Point3{X: pt.X, Y: pt.Y, Z: pt.Z}
}

var sAnchorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Arrow", `->`},
	{"Number", `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{"Punct", `[(),;]`},
	{"whitespace", `\s+`},
})

var sParseAnchorsExpr = participle.MustBuild[AnchorsExpr](
	participle.Lexer(sAnchorLexer),
)

// ParseAnchors parses an anchor expression into anchor pairs.
func ParseAnchors(expr string) ([]psm.AnchorPair, error) {
	Xexpr, err := sParseAnchorsExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(psm.ErrBadAnchorExpr, "%q: %v", expr, err)
	}
	if len(Xexpr.Pairs) == 0 {
		return nil, errors.Wrapf(psm.ErrBadAnchorExpr, "%q: no anchor pairs", expr)
	}

	pairs := make([]psm.AnchorPair, len(Xexpr.Pairs))
	for i, pair := range Xexpr.Pairs {
		pairs[i] = psm.AnchorPair{
			First: pair.First.Point3(),
			Last:  pair.Last.Point3(),
		}
	}
	return pairs, nil
}
