/*
 * closure_test.go, part of gorism.
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

package closure

import (
	"errors"
	"math"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = [][2]float64{{0, 0}, {1.5, 0.3}, {-2, 0.1}, {0.2, -1}, {-0.5, 2}, {10, 0}}

//g = 1+c+t = exp(-βv+t) must be positive for HNC.
func TestHNCPositive(Te *testing.T) {
	cl := HNC{}
	beta := 1.7
	for _, s := range samples {
		c := cl.Apply(beta, s[0], s[1])
		g := 1 + c + s[1]
		assert.Greater(Te, g, 0.0)
		assert.InDelta(Te, math.Exp(-beta*s[0]+s[1]), g, 1e-12)
	}
}

func TestKHisPSE1(Te *testing.T) {
	kh, pse := KH{}, PSE{Order: 1}
	for _, s := range samples {
		assert.InDelta(Te, kh.Apply(1, s[0], s[1]), pse.Apply(1, s[0], s[1]), 1e-14)
		assert.InDelta(Te, kh.Derivative(1, s[0], s[1], 0.3), pse.Derivative(1, s[0], s[1], 0.3), 1e-14)
	}
	//linear branch: c = -βv
	assert.InDelta(Te, 2.0, kh.Apply(1, -2, 0.1), 1e-14)
}

//Derivatives must match finite differences away from the KH kink.
func TestDerivatives(Te *testing.T) {
	cls := []Closure{HNC{}, KH{}, PY{}, PSE{Order: 3}}
	h := 1e-6
	for _, cl := range cls {
		for _, s := range samples {
			x := -s[0] + s[1]
			if math.Abs(x) < 1e-3 {
				continue
			}
			num := (cl.Apply(1, s[0], s[1]+h) - cl.Apply(1, s[0], s[1]-h)) / (2 * h)
			assert.InDelta(Te, num, cl.Derivative(1, s[0], s[1], 1), 1e-5, "%s at %v", cl, s)
		}
	}
}

func TestNew(Te *testing.T) {
	c, err := New(rism.PSE, 3)
	require.NoError(Te, err)
	assert.Equal(Te, "PSE-3", c.String())
	_, err = New(rism.ClosureKind(42), 0)
	assert.True(Te, errors.Is(err, rism.ErrClosure))
	_, err = New(rism.PSE, 0)
	assert.Error(Te, err)
}

func TestMuDensity(Te *testing.T) {
	//h<0 contributes the h² term in KH, h>0 does not.
	assert.InDelta(Te, 0.5*0.25-0.1-0.5*(-0.5)*0.3, MuDensity(MuKH, 0, 0, -0.5, 0.1, 0.2), 1e-14)
	assert.InDelta(Te, -0.1-0.5*0.5*0.3, MuDensity(MuKH, 0, 0, 0.5, 0.1, 0.2), 1e-14)
	assert.InDelta(Te, MuDensity(MuHNC, 0, 2, 0.5, 0.1, 0.2)-8.0/6, MuDensity(MuPSE, 2, 2, 0.5, 0.1, 0.2), 1e-14)
}

func TestFields(Te *testing.T) {
	g := grid.New([3]int{4, 4, 4}, [3]float64{1, 1, 1})
	v, t, c := grid.NewField(g), grid.NewField(g), grid.NewField(g)
	v.Set(1)
	t.Set(0.2)
	Fields(HNC{}, 0.5, c, v, t)
	assert.InDelta(Te, math.Exp(-0.3)-1.2, c.At(1, 2, 3), 1e-14)
	dt := grid.NewField(g)
	dt.Set(2)
	DerivFields(PY{}, 0.5, c, v, t, dt)
	assert.InDelta(Te, 2*(math.Exp(-0.5)-1), c.At(0, 0, 0), 1e-14)
	mu := Chempot(MuGF, 0, 0.1, 2, []*grid.Field{t}, []*grid.Field{t}, []*grid.Field{v}, []*grid.Field{v})
	assert.InDelta(Te, 0.1*64*(-1-0.2)*g.CellVolume()/2, mu, 1e-12)
}
