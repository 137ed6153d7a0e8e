package utils

import (
	"gonum.org/v1/gonum/mat"
)

/*
Fixed size dense types for the element level math of a linear triangle in 2D.
Dimensions are part of the type, so the inner loops carry no bounds or shape checks.
*/
type Vec2 [2]float64

type Vec3 [3]float64

// Mat2 is row major: m[i][j] is row i, column j
type Mat2 [2][2]float64

type Mat2x3 [2][3]float64

type Mat3 [3][3]float64

func (v Vec2) Add(w Vec2) Vec2      { return Vec2{v[0] + w[0], v[1] + w[1]} }
func (v Vec2) Sub(w Vec2) Vec2      { return Vec2{v[0] - w[0], v[1] - w[1]} }
func (v Vec2) Scale(a float64) Vec2 { return Vec2{a * v[0], a * v[1]} }
func (v Vec2) Dot(w Vec2) float64   { return v[0]*w[0] + v[1]*w[1] }
func (v Vec3) Scale(a float64) Vec3 { return Vec3{a * v[0], a * v[1], a * v[2]} }
func (v Vec3) Sum() float64         { return v[0] + v[1] + v[2] }
func (m Mat2) Det() float64         { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }
func (m Mat2) T() Mat2              { return Mat2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}} }
func (m Mat2) MulVec(v Vec2) Vec2   { return Vec2{m[0][0]*v[0] + m[0][1]*v[1], m[1][0]*v[0] + m[1][1]*v[1]} }
func (m Mat3) At(i, j int) float64  { return m[i][j] }
func (m Mat2x3) Col(j int) Vec2     { return Vec2{m[0][j], m[1][j]} }

// Inv returns the inverse of m. The caller checks Det() != 0 first.
func (m Mat2) Inv() Mat2 {
	var (
		det = m.Det()
	)
	return Mat2{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}
}

func (m Mat2) Mul(a Mat2) (R Mat2) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			R[i][j] = m[i][0]*a[0][j] + m[i][1]*a[1][j]
		}
	}
	return
}

// Mul23 returns m * a for a 2x3 right operand, used to push reference
// gradients through J^-T.
func (m Mat2) Mul23(a Mat2x3) (R Mat2x3) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = m[i][0]*a[0][j] + m[i][1]*a[1][j]
		}
	}
	return
}

// TMul returns m^T * m, the 3x3 Gram matrix of the columns of m.
func (m Mat2x3) TMul() (R Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = m[0][i]*m[0][j] + m[1][i]*m[1][j]
		}
	}
	return
}

func (m Mat3) Scale(a float64) (R Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = a * m[i][j]
		}
	}
	return
}

func (m Mat3) Add(a Mat3) (R Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = m[i][j] + a[i][j]
		}
	}
	return
}

func (m Mat3) T() (R Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = m[j][i]
		}
	}
	return
}

func (m Mat3) MulVec(v Vec3) (r Vec3) {
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return
}

// Outer returns v w^T
func (v Vec3) Outer(w Vec3) (R Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = v[i] * w[j]
		}
	}
	return
}

func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Dense copies m into a gonum matrix, handy with mat.Formatted when debugging
// an element kernel.
func (m Mat3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

func (m Mat2) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{m[0][0], m[0][1], m[1][0], m[1][1]})
}
