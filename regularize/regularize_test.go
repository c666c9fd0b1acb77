/*
 * regularize_test.go, part of gorism.
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

package regularize

import (
	"math"
	"testing"

	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDivide(Te *testing.T) {
	g := grid.New([3]int{2, 2, 2}, [3]float64{2, 2, 2})
	x := grid.NewField(g)
	y := grid.NewField(g)
	x.Set(1)
	y.Set(0.01)
	w := grid.NewField(g)
	SafeDivide(w, x, y, NormReg)
	for _, v := range w.Raw() {
		assert.InDelta(Te, 10.0, v, 1e-12)
	}
	y.Set(4)
	SafeDivide(x, x, y, NormReg) //aliasing
	assert.InDelta(Te, 0.25, x.At(1, 1, 1), 1e-12)
}

func TestConfig(Te *testing.T) {
	c := DefaultConfig()
	require.NoError(Te, c.Validate())
	assert.Equal(Te, NormReg, c.NormReg)
	for _, f := range []*float64{&c.NormReg, &c.NormReg2, &c.Floor} {
		bad := *f
		*f = 0
		assert.Error(Te, c.Validate())
		*f = bad
	}
	require.NoError(Te, c.Validate())
}

func TestZeropad(Te *testing.T) {
	g := grid.New([3]int{16, 16, 16}, [3]float64{16, 16, 16})
	assert.Equal(Te, [3]int{2, 2, 2}, Border(g, 6))
	f := grid.NewField(g)
	f.Set(1)
	Zeropad(f, 6, 0)
	assert.Equal(Te, 1.0, f.At(8, 8, 8))
	assert.Equal(Te, 0.0, f.At(3, 8, 8))
	assert.Equal(Te, 1.0, f.At(4, 8, 8))
	assert.Equal(Te, 1.0, f.At(8, 12, 8))
	assert.Equal(Te, 0.0, f.At(8, 8, 13))
	//a radius just beyond half the box pads only the first layer
	assert.Equal(Te, [3]int{-1, -1, -1}, Border(g, 9))
	f.Set(1)
	Zeropad(f, 9, -1)
	assert.Equal(Te, -1.0, f.At(0, 8, 8))
	assert.Equal(Te, -1.0, f.At(8, 0, 8))
	assert.Equal(Te, 1.0, f.At(1, 8, 8))
	assert.Equal(Te, 1.0, f.At(15, 8, 8))
	assert.Equal(Te, 1.0, f.At(8, 15, 15))
	//a much larger radius turns the padding off
	f.Set(1)
	Zeropad(f, 100, -1)
	for _, v := range f.Raw() {
		require.Equal(Te, 1.0, v)
	}
}

func TestIntra(Te *testing.T) {
	g := grid.New([3]int{8, 8, 8}, [3]float64{8, 8, 8})
	tr := fft.New(fft.Gonum, g)
	f := grid.NewField(g)
	f.Set(1)
	dst := grid.NewField(g)
	require.NoError(Te, IntraLn(tr, dst, f, 1.5, Floor, nil))
	//the convolution of a constant is the same constant
	for _, v := range dst.Raw() {
		assert.InDelta(Te, 0, v, 1e-10)
	}
	f.Set(-2)
	require.NoError(Te, NormalizationIntra(tr, dst, f, 0, Floor, nil))
	assert.Equal(Te, Floor, dst.At(3, 3, 3))
	require.NoError(Te, IntraLn(tr, dst, f, 0, Floor, nil))
	assert.InDelta(Te, -math.Log(Floor), dst.At(0, 0, 0), 1e-10)
	gc := grid.NewField(g)
	gc.Set(2)
	f.Set(1)
	require.NoError(Te, SolveNormalization(tr, f, gc, f, 1, NormReg2, nil))
	assert.InDelta(Te, 0.5, f.At(4, 4, 4), 1e-10)
}

func TestExpG(Te *testing.T) {
	g := grid.New([3]int{2, 2, 2}, [3]float64{2, 2, 2})
	g0 := grid.NewField(g)
	dg := grid.NewField(g)
	g0.Set(1)
	dg.Set(-1)
	r := grid.NewField(g)
	ExpG(r, g0, dg)
	assert.InDelta(Te, 1.0, r.Sum()/8, 1e-12)
	assert.Error(Te, Config{}.Validate())
	assert.NoError(Te, DefaultConfig().Validate())
}
