/*
 * omega_test.go, part of gorism.
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

package omega

import (
	"math"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(Te *testing.T) {
	g := grid.New([3]int{6, 6, 6}, [3]float64{3, 3, 3})
	f := grid.NewKField(g)
	for i := range f.Raw() {
		f.Raw()[i] = complex(float64(i), -float64(i)/2)
	}
	dst := grid.NewKField(g)
	Apply(dst, f, 0)
	assert.Equal(Te, f.Raw(), dst.Raw())
}

func TestKernel(Te *testing.T) {
	g := grid.New([3]int{8, 8, 8}, [3]float64{8, 8, 8})
	k := grid.NewKField(g)
	Kernel(k, 1)
	assert.Equal(Te, complex(1, 0), k.At(0, 0, 0))
	x := 2 * math.Pi / 8
	assert.InDelta(Te, math.Sin(x)/x, real(k.At(1, 0, 0)), 1e-14)
	assert.Equal(Te, k.At(1, 0, 0), k.At(7, 0, 0))
	assert.Equal(Te, grid.Corner, k.Origin())
}

//Convolving a constant with the kernel leaves it unchanged, since ω(k=0)=1
func TestConvolveConstant(Te *testing.T) {
	g := grid.New([3]int{8, 8, 8}, [3]float64{8, 8, 8})
	tr := fft.New(fft.Gonum, g)
	f := grid.NewField(g)
	f.Set(2.5)
	out := grid.NewField(g)
	require.NoError(Te, Convolve(tr, out, f, 1.3, nil))
	for _, v := range out.Raw() {
		assert.InDelta(Te, 2.5, v, 1e-12)
	}
}

func TestMatrix(Te *testing.T) {
	g := grid.New([3]int{4, 4, 4}, [3]float64{4, 4, 4})
	w, _ := rism.BuiltIn("water")
	m, err := Matrix(g, w)
	require.NoError(Te, err)
	assert.Nil(Te, m.At(2, 2))
	assert.Same(Te, m.At(0, 1), m.At(1, 0))
	assert.Equal(Te, complex(1, 0), m.At(1, 2).At(0, 0, 0))
}
