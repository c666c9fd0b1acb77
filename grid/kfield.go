/*
 * kfield.go, part of gorism.
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
	"math/cmplx"

	rism "github.com/rmera/gorism"
	"gonum.org/v1/gonum/cmplxs"
)

//KField is a complex-valued field, normally the transform of a Field.
//It uses the same layout as Field, and the frequency of index i is KFreq(i, N).
type KField struct {
	g      *Grid
	d      []complex128
	origin Origin
}

//NewKField returns a zeroed, centered, complex field on g.
func NewKField(g *Grid) *KField {
	return &KField{g: g, d: make([]complex128, g.Len())}
}

//KFieldView returns a complex field using data as storage.
func KFieldView(g *Grid, data []complex128) *KField {
	if len(data) != g.Len() {
		panic(rism.ErrShape)
	}
	return &KField{g: g, d: data}
}

func (F *KField) Grid() *Grid { return F.g }

//Raw returns the underlying slice.
func (F *KField) Raw() []complex128 { return F.d }

func (F *KField) Len() int { return len(F.d) }

func (F *KField) Origin() Origin { return F.origin }

func (F *KField) SetOrigin(o Origin) { F.origin = o }

func (F *KField) At(i, j, k int) complex128 {
	return F.d[F.g.Index(i, j, k)]
}

func (F *KField) SetAt(i, j, k int, v complex128) {
	F.d[F.g.Index(i, j, k)] = v
}

func (F *KField) Clone() *KField {
	ret := &KField{g: F.g, d: make([]complex128, len(F.d)), origin: F.origin}
	copy(ret.d, F.d)
	return ret
}

func (F *KField) Zeros() {
	for i := range F.d {
		F.d[i] = 0
	}
}

//Copy copies src, including its origin, into the receiver.
func (F *KField) Copy(src *KField) {
	F.same(src)
	copy(F.d, src.d)
	F.origin = src.origin
}

//Scale multiplies every mode by a.
func (F *KField) Scale(a complex128) {
	cmplxs.Scale(a, F.d)
}

//ScaleReal multiplies every mode by the real number a.
func (F *KField) ScaleReal(a float64) {
	cmplxs.ScaleReal(a, F.d)
}

//AXPY puts F+a*x in the receiver. The fields must have the same origin.
func (F *KField) AXPY(a complex128, x *KField) {
	F.sameOrigin(x)
	cmplxs.AddScaled(F.d, a, x.d)
}

//Mul multiplies the receiver, mode by mode, by x.
func (F *KField) Mul(x *KField) {
	F.same(x)
	cmplxs.Mul(F.d, x.d)
}

//MulTo puts a*b, mode by mode, in the receiver.
func (F *KField) MulTo(a, b *KField) {
	F.same(a)
	F.same(b)
	cmplxs.MulTo(F.d, a.d, b.d)
}

//InfNorm returns the largest modulus in the field.
func (F *KField) InfNorm() float64 {
	var max float64
	for _, v := range F.d {
		max = math.Max(max, cmplx.Abs(v))
	}
	return max
}

//Map sets every mode to fn of its current value.
func (F *KField) Map(fn func(complex128) complex128) {
	F.g.Parallel(len(F.d), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			F.d[i] = fn(F.d[i])
		}
	})
}

//Translate multiplies every mode by (-1)^(kx+ky+kz), which moves the origin of the
//corresponding real-space function between the center and the corner of the box.
//The origin tag of the field is flipped.
func (F *KField) Translate() {
	g := F.g
	g.Parallel(len(F.d), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			if Sign(i, j, k) < 0 {
				F.d[idx] = -F.d[idx]
			}
		}
	})
	if F.origin == Center {
		F.origin = Corner
	} else {
		F.origin = Center
	}
}

func (F *KField) same(x *KField) {
	if x == nil {
		panic(rism.ErrNilField)
	}
	if len(F.d) != len(x.d) {
		panic(rism.ErrShape)
	}
	F.g.check(x.g)
}

func (F *KField) sameOrigin(x *KField) {
	F.same(x)
	if F.origin != x.origin {
		panic(rism.ErrOriginMix)
	}
}
