/*
 * pairs.go, part of gorism.
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
	rism "github.com/rmera/gorism"
)

//PairCount returns the number of unique pairs of m sites, m(m+1)/2
func PairCount(m int) int {
	return m * (m + 1) / 2
}

//PairIndex returns the position of the pair i,j among the unique pairs.
//PairIndex(i,j) == PairIndex(j,i)
func PairIndex(i, j, m int) int {
	if i > j {
		i, j = j, i
	}
	if i < 0 || j >= m {
		panic(rism.ErrOutOfRange)
	}
	return i*m - i*(i-1)/2 + j - i
}

//Pairs is a symmetric m×m matrix of fields. Only the m(m+1)/2 unique fields
//are stored: At(i,j) and At(j,i) return the same *Field.
type Pairs struct {
	m     int
	f     []*Field
	nodia bool
}

//NewPairs returns a new arena of zeroed pair fields for m sites.
func NewPairs(g *Grid, m int) *Pairs {
	ret := &Pairs{m: m, f: make([]*Field, PairCount(m))}
	for i := range ret.f {
		ret.f[i] = NewField(g)
	}
	return ret
}

//PairsFromPacked returns an arena whose fields are views into data,
//which must have PairCount(m)*g.Len() elements. The first field is the pair 0,0,
//then 0,1 ... 0,m-1, 1,1 and so on.
func PairsFromPacked(g *Grid, m int, data []float64) *Pairs {
	n := g.Len()
	if len(data) != PairCount(m)*n {
		panic(rism.ErrShape)
	}
	ret := &Pairs{m: m, f: make([]*Field, PairCount(m))}
	for i := range ret.f {
		ret.f[i] = FieldView(g, data[i*n:(i+1)*n])
	}
	return ret
}

//M returns the number of sites.
func (P *Pairs) M() int { return P.m }

//At returns the field for the pair i,j. For arenas without diagonal,
//At(i,i) is nil.
func (P *Pairs) At(i, j int) *Field {
	if i == j && P.nodia {
		return nil
	}
	return P.f[PairIndex(i, j, P.m)]
}

//Unique returns the unique fields, in packed order.
func (P *Pairs) Unique() []*Field {
	return P.f
}

//Zeros sets every field to 0
func (P *Pairs) Zeros() {
	for _, v := range P.f {
		if v != nil {
			v.Zeros()
		}
	}
}

//Copy copies src into the receiver
func (P *Pairs) Copy(src *Pairs) {
	if src.m != P.m {
		panic(rism.ErrShape)
	}
	for i, v := range P.f {
		if v != nil {
			v.Copy(src.f[i])
		}
	}
}

//Clone returns a new arena with copies of the fields.
func (P *Pairs) Clone() *Pairs {
	ret := &Pairs{m: P.m, f: make([]*Field, len(P.f)), nodia: P.nodia}
	for i, v := range P.f {
		if v != nil {
			ret.f[i] = v.Clone()
		}
	}
	return ret
}

//KPairs is the k-space counterpart of Pairs.
type KPairs struct {
	m     int
	f     []*KField
	nodia bool
}

//NewKPairs returns a new arena of zeroed complex pair fields.
func NewKPairs(g *Grid, m int) *KPairs {
	ret := &KPairs{m: m, f: make([]*KField, PairCount(m))}
	for i := range ret.f {
		ret.f[i] = NewKField(g)
	}
	return ret
}

//NewKPairsNoDiagonal returns an arena where At(i,i) is nil. The
//diagonal fields are not allocated.
func NewKPairsNoDiagonal(g *Grid, m int) *KPairs {
	ret := &KPairs{m: m, f: make([]*KField, PairCount(m)), nodia: true}
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			ret.f[PairIndex(i, j, m)] = NewKField(g)
		}
	}
	return ret
}

func (P *KPairs) M() int { return P.m }

//NoDiagonal returns true if the diagonal fields are absent.
func (P *KPairs) NoDiagonal() bool { return P.nodia }

//At returns the field for the pair i,j.
func (P *KPairs) At(i, j int) *KField {
	if i == j && P.nodia {
		return nil
	}
	return P.f[PairIndex(i, j, P.m)]
}

func (P *KPairs) Unique() []*KField {
	return P.f
}

func (P *KPairs) Zeros() {
	for _, v := range P.f {
		if v != nil {
			v.Zeros()
		}
	}
}

//Translate translates every field. See KField.Translate.
func (P *KPairs) Translate() {
	for _, v := range P.f {
		if v != nil {
			v.Translate()
		}
	}
}

//Vector returns m fields that are views into data, which must
//have m*g.Len() elements.
func Vector(g *Grid, m int, data []float64) []*Field {
	n := g.Len()
	if len(data) != m*n {
		panic(rism.ErrShape)
	}
	ret := make([]*Field, m)
	for i := range ret {
		ret[i] = FieldView(g, data[i*n:(i+1)*n])
	}
	return ret
}

//NewVector returns m new fields.
func NewVector(g *Grid, m int) []*Field {
	ret := make([]*Field, m)
	for i := range ret {
		ret[i] = NewField(g)
	}
	return ret
}

//NewKVector returns m new complex fields.
func NewKVector(g *Grid, m int) []*KField {
	ret := make([]*KField, m)
	for i := range ret {
		ret[i] = NewKField(g)
	}
	return ret
}
