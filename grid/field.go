/*
 * field.go, part of gorism.
 *
 * Copyright 2025 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package grid

import (
	"math"

	rism "github.com/rmera/gorism"
	"gonum.org/v1/gonum/floats"
)

//Field is a real-valued function sampled on a Grid.
type Field struct {
	g      *Grid
	d      []float64
	origin Origin
}

//NewField returns a zeroed, centered field on g.
func NewField(g *Grid) *Field {
	return &Field{g: g, d: make([]float64, g.Len())}
}

//FieldView returns a field that uses data as storage. No copy is made.
//data must have exactly g.Len() elements.
func FieldView(g *Grid, data []float64) *Field {
	if len(data) != g.Len() {
		panic(rism.ErrShape)
	}
	return &Field{g: g, d: data}
}

//Grid returns the grid of the field
func (F *Field) Grid() *Grid { return F.g }

//Raw returns the underlying slice. Changes to it change the field.
func (F *Field) Raw() []float64 { return F.d }

//Len returns the number of points in the field
func (F *Field) Len() int { return len(F.d) }

func (F *Field) Origin() Origin { return F.origin }

func (F *Field) SetOrigin(o Origin) { F.origin = o }

//At returns the value at point i,j,k
func (F *Field) At(i, j, k int) float64 {
	return F.d[F.g.Index(i, j, k)]
}

//SetAt sets the value at point i,j,k
func (F *Field) SetAt(i, j, k int, v float64) {
	F.d[F.g.Index(i, j, k)] = v
}

//Clone returns a new field with the same values.
func (F *Field) Clone() *Field {
	ret := &Field{g: F.g, d: make([]float64, len(F.d)), origin: F.origin}
	copy(ret.d, F.d)
	return ret
}

//Zeros sets all the points to 0.
func (F *Field) Zeros() {
	for i := range F.d {
		F.d[i] = 0
	}
}

//Set sets all the points to v
func (F *Field) Set(v float64) {
	for i := range F.d {
		F.d[i] = v
	}
}

//Copy copies src into the receiver.
func (F *Field) Copy(src *Field) {
	F.same(src)
	copy(F.d, src.d)
	F.origin = src.origin
}

//Scale multiplies the field by a
func (F *Field) Scale(a float64) {
	floats.Scale(a, F.d)
}

//Shift adds a to every point.
func (F *Field) Shift(a float64) {
	floats.AddConst(a, F.d)
}

//AXPY puts F+a*x in the receiver
func (F *Field) AXPY(a float64, x *Field) {
	F.same(x)
	floats.AddScaled(F.d, a, x.d)
}

//WAXPY puts a*x+y in the receiver. The receiver can be x or y.
func (F *Field) WAXPY(a float64, x, y *Field) {
	F.same(x)
	F.same(y)
	floats.AddScaledTo(F.d, y.d, a, x.d)
}

//Add puts a+b in the receiver.
func (F *Field) Add(a, b *Field) {
	F.same(a)
	F.same(b)
	floats.AddTo(F.d, a.d, b.d)
}

//Sub puts a-b in the receiver.
func (F *Field) Sub(a, b *Field) {
	F.same(a)
	F.same(b)
	floats.SubTo(F.d, a.d, b.d)
}

//Mul multiplies the receiver, point by point, by x.
func (F *Field) Mul(x *Field) {
	F.same(x)
	floats.Mul(F.d, x.d)
}

//Sum returns the sum of all the points
func (F *Field) Sum() float64 {
	return floats.Sum(F.d)
}

//Dot returns the dot product of the receiver and x
func (F *Field) Dot(x *Field) float64 {
	F.same(x)
	return floats.Dot(F.d, x.d)
}

//InfNorm returns the largest absolute value in the field
func (F *Field) InfNorm() float64 {
	if len(F.d) == 0 {
		return 0
	}
	return floats.Norm(F.d, math.Inf(1))
}

//Norm2 returns the euclidean norm of the field
func (F *Field) Norm2() float64 {
	return floats.Norm(F.d, 2)
}

//Map sets every point to fn of its current value.
func (F *Field) Map(fn func(float64) float64) {
	F.g.Parallel(len(F.d), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			F.d[i] = fn(F.d[i])
		}
	})
}

//Map2 sets every point of the receiver to fn(a,b), taking a and b
//at the same point. The receiver can be a or b.
func (F *Field) Map2(a, b *Field, fn func(a, b float64) float64) {
	F.same(a)
	F.same(b)
	F.g.Parallel(len(F.d), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			F.d[i] = fn(a.d[i], b.d[i])
		}
	})
}

//Map3 is Map2 with three fields.
func (F *Field) Map3(a, b, c *Field, fn func(a, b, c float64) float64) {
	F.same(a)
	F.same(b)
	F.same(c)
	F.g.Parallel(len(F.d), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			F.d[i] = fn(a.d[i], b.d[i], c.d[i])
		}
	})
}

//HasNaN returns true if any point is NaN or Inf.
func (F *Field) HasNaN() bool {
	for _, v := range F.d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func (F *Field) same(x *Field) {
	if x == nil {
		panic(rism.ErrNilField)
	}
	if len(F.d) != len(x.d) {
		panic(rism.ErrShape)
	}
	F.g.check(x.g)
}
