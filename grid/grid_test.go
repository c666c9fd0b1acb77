/*
 * grid_test.go, part of gorism.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexes(Te *testing.T) {
	g := New([3]int{4, 6, 8}, [3]float64{4, 6, 8})
	for idx := 0; idx < g.Len(); idx++ {
		i, j, k := g.Indexes(idx)
		require.Equal(Te, idx, g.Index(i, j, k))
	}
	x := g.X(0, 3, 4)
	assert.Equal(Te, [3]float64{-2, 0, 0}, x)
}

func TestKFreq(Te *testing.T) {
	got := make([]int, 8)
	for i := range got {
		got[i] = KFreq(i, 8)
	}
	assert.Equal(Te, []int{0, 1, 2, 3, 4, -3, -2, -1}, got)
}

func TestPairAliasing(Te *testing.T) {
	g := New([3]int{2, 2, 2}, [3]float64{1, 1, 1})
	p := NewPairs(g, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Same(Te, p.At(i, j), p.At(j, i))
		}
	}
	p.At(0, 2).Set(3)
	assert.Equal(Te, 3.0, p.At(2, 0).At(1, 1, 1))
	data := make([]float64, PairCount(2)*g.Len())
	pk := PairsFromPacked(g, 2, data)
	pk.At(1, 0).Set(1)
	assert.Equal(Te, 1.0, data[g.Len()])
	assert.Equal(Te, 0.0, data[0])
	kp := NewKPairsNoDiagonal(g, 2)
	assert.Nil(Te, kp.At(1, 1))
	assert.Same(Te, kp.At(0, 1), kp.At(1, 0))
}

func TestTranslate(Te *testing.T) {
	g := New([3]int{4, 4, 4}, [3]float64{1, 1, 1})
	f := NewKField(g)
	for i := range f.Raw() {
		f.Raw()[i] = 1
	}
	f.Translate()
	assert.Equal(Te, Corner, f.Origin())
	assert.Equal(Te, complex(-1, 0), f.At(1, 0, 0))
	assert.Equal(Te, complex(1, 0), f.At(1, 1, 0))
	f.Translate()
	assert.Equal(Te, Center, f.Origin())
	assert.Equal(Te, complex(1, 0), f.At(1, 0, 0))
}

func TestFieldOps(Te *testing.T) {
	g := New([3]int{16, 16, 32}, [3]float64{1, 1, 1}, 4)
	a := NewField(g)
	b := NewField(g)
	a.Set(2)
	b.Set(3)
	a.AXPY(2, b)
	assert.Equal(Te, 8.0, a.At(3, 3, 3))
	a.WAXPY(-1, b, a)
	assert.Equal(Te, 5.0, a.At(0, 0, 0))
	a.Map2(a, b, func(x, y float64) float64 { return x * y })
	assert.InDelta(Te, 15.0*float64(g.Len()), a.Sum(), 1e-6)
	assert.Equal(Te, 15.0, a.InfNorm())
	g.RMap(b, func(x [3]float64) float64 { return x[2] })
	assert.Equal(Te, -0.5, b.At(5, 7, 0))
}
