package Poisson2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
)

type ProblemType uint8

const (
	PROBLEM_Quadratic ProblemType = iota
	PROBLEM_Sine
	PROBLEM_Constant
)

var (
	ProblemNames = map[string]ProblemType{
		"quadratic": PROBLEM_Quadratic,
		"sine":      PROBLEM_Sine,
		"constant":  PROBLEM_Constant,
	}
	ProblemPrintNames = []string{
		"Quadratic, u = 1 + x^2 + 2y^2",
		"Sine, u = sin(pi x) sin(pi y)",
		"Constant source f = 1, u = 0 on the boundary",
	}
)

func (pt ProblemType) Print() (txt string) {
	txt = ProblemPrintNames[pt]
	return
}

func NewProblemType(label string) (pt ProblemType, err error) {
	var ok bool
	label = strings.ToLower(label)
	if pt, ok = ProblemNames[label]; !ok {
		err = fmt.Errorf("unable to use problem named %s", label)
	}
	return
}

/*
Problem is -div(k grad u) = Source on the unit square with u = Boundary on its edge. Exact is nil
when no closed form solution is known.
*/
type Problem struct {
	Source         func(x utils.Vec2) float64
	Boundary       func(p geometry2D.Point) float64
	Exact          func(p geometry2D.Point) float64
	ConstantSource bool
}

func (pt ProblemType) Problem(k float64) (pr Problem) {
	switch pt {
	case PROBLEM_Quadratic:
		u := func(p geometry2D.Point) float64 {
			x, y := p.X[0], p.X[1]
			return 1 + x*x + 2*y*y
		}
		pr = Problem{
			Source:         func(utils.Vec2) float64 { return -6 * k },
			Boundary:       u,
			Exact:          u,
			ConstantSource: true,
		}
	case PROBLEM_Sine:
		u := func(p geometry2D.Point) float64 {
			return math.Sin(math.Pi*p.X[0]) * math.Sin(math.Pi*p.X[1])
		}
		pr = Problem{
			Source: func(x utils.Vec2) float64 {
				return 2 * math.Pi * math.Pi * k * math.Sin(math.Pi*x[0]) * math.Sin(math.Pi*x[1])
			},
			Boundary: func(geometry2D.Point) float64 { return 0 },
			Exact:    u,
		}
	case PROBLEM_Constant:
		pr = Problem{
			Source:         func(utils.Vec2) float64 { return 1 },
			Boundary:       func(geometry2D.Point) float64 { return 0 },
			ConstantSource: true,
		}
	default:
		panic(fmt.Errorf("unknown problem type %d", pt))
	}
	return
}
