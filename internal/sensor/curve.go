package sensor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrEmptyCurve is returned for a blank curve expression.
var ErrEmptyCurve = errors.New("empty curve expression")

// DefaultCurve weights sightings by how close to the view axis they are.
const DefaultCurve = "dot"

// CurveEnv is the evaluation environment of a sensitivity curve.
type CurveEnv struct {
	// Dot is the cosine between the view direction and the target.
	Dot float64 `expr:"dot"`
	// Distance is the target distance as a fraction of vision range.
	Distance float64 `expr:"distance"`
}

// Curve is a compiled vision sensitivity expression.
type Curve struct {
	source  string
	program *vm.Program
}

// NewCurve compiles src. The expression must yield a number.
func NewCurve(src string) (*Curve, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmptyCurve
	}
	program, err := expr.Compile(src,
		expr.Env(CurveEnv{}),
		expr.AsFloat64(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile curve %q: %w", src, err)
	}
	return &Curve{source: src, program: program}, nil
}

// MustCurve is NewCurve that panics on error.
func MustCurve(src string) *Curve {
	c, err := NewCurve(src)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Curve) String() string {
	return c.source
}

// Eval returns the sensitivity for env. Negative and failed evaluations
// yield 0.
func (c *Curve) Eval(env CurveEnv) float64 {
	out, err := expr.Run(c.program, env)
	if err != nil {
		return 0
	}
	v, ok := out.(float64)
	if !ok || v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
