/*
 * force.go, part of gorism.
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

package potential

import (
	"math"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
)

//ForceField is the data the BGY3D equations need for one pair of sites at a given damping.
type ForceField struct {
	F      [3]*grid.Field //gradient of the pair potential, short range plus long range
	FL     [3]*grid.Field //gradient of the long-range Coulomb potential
	ULong  *grid.Field    //long-range Coulomb potential
	VLong  *grid.KField   //ULong in k-space, centered
	G0     *grid.Field    //β(dampLJ·LJ + damp·CoulombShort)
	C      *grid.Field    //exp(-β·LJRepulsive)
	Pair   Pair
	Damp   float64
	DampLJ float64
}

//NewForceField computes the force field for the sites a and b. The long-range
//gradient is obtained in k-space from the long-range potential.
func NewForceField(tr fft.Transform, beta float64, a, b rism.Site, damp, dampLJ float64) (*ForceField, error) {
	g := tr.Grid()
	p := Mix(a, b)
	ff := &ForceField{Pair: p, Damp: damp, DampLJ: dampLJ}
	ff.VLong = grid.NewKField(g)
	LongFFT(ff.VLong, p.Q2, damp)
	ff.ULong = grid.NewField(g)
	if err := tr.Backward(ff.ULong, ff.VLong); err != nil {
		return nil, rism.Decorate(err, "potential.NewForceField")
	}
	tmp := grid.NewKField(g)
	for d := 0; d < 3; d++ {
		dim := d
		vl := ff.VLong.Raw()
		g.KMap(tmp, func(ic [3]int, kv [3]float64) complex128 {
			idx := g.Index(wrap(ic[0], g.N[0]), wrap(ic[1], g.N[1]), wrap(ic[2], g.N[2]))
			return complex(0, kv[dim]) * vl[idx]
		})
		tmp.SetOrigin(grid.Center)
		ff.FL[d] = grid.NewField(g)
		if err := tr.Backward(ff.FL[d], tmp); err != nil {
			return nil, rism.Decorate(err, "potential.NewForceField")
		}
		ff.F[d] = grid.NewField(g)
		g.RMap(ff.F[d], func(x [3]float64) float64 {
			r := norm3(x)
			return dampLJ*LennardJonesGrad(r, x[dim], p.E2, p.S2) + damp*CoulombShortGrad(r, x[dim], p.Q2)
		})
		ff.F[d].AXPY(1, ff.FL[d])
	}
	ff.G0 = grid.NewField(g)
	g.RMap(ff.G0, func(x [3]float64) float64 {
		r := norm3(x)
		return beta * (dampLJ*LennardJones(r, p.E2, p.S2) + damp*CoulombShort(r, p.Q2))
	})
	ff.C = grid.NewField(g)
	g.RMap(ff.C, func(x [3]float64) float64 {
		return math.Exp(-beta * LJRepulsive(norm3(x), p.E2, p.S2))
	})
	return ff, nil
}

//wrap is the inverse of grid.KFreq
func wrap(ic, n int) int {
	if ic < 0 {
		return ic + n
	}
	return ic
}
