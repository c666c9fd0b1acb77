/*
 * fields.go, part of gorism.
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
	"math/cmplx"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
)

func norm3(x [3]float64) float64 {
	return math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
}

func ksq(k [3]float64) float64 {
	return k[0]*k[0] + k[1]*k[1] + k[2]*k[2]
}

//icSign returns (-1)^(ic0+ic1+ic2)
func icSign(ic [3]int) float64 {
	s := ic[0] + ic[1] + ic[2]
	if s < 0 {
		s = -s
	}
	if s%2 == 0 {
		return 1
	}
	return -1
}

//PairShort fills dst with the short-range potential damp·(LJ+CoulombShort) of the pair p,
//as a function of the distance to the center of the box.
func PairShort(dst *grid.Field, p Pair, damp float64) {
	dst.Grid().RMap(dst, func(x [3]float64) float64 {
		return p.Short(norm3(x), damp)
	})
	dst.SetOrigin(grid.Center)
}

//LongFFT fills dst with the k-representation of damp·CoulombLong(r, q2), for the
//usual scaling of forward transforms and centered at the middle of the box:
//
//	v(k) = damp·q2·(-1)^(ic)·EPSILON0INV/(πk²)·exp(-π²k²/G²),  k = |ic|/L
//
//The k=0 mode is set to 0.
func LongFFT(dst *grid.KField, q2, damp float64) {
	g := dst.Grid()
	g.KMap(dst, func(ic [3]int, kv [3]float64) complex128 {
		if ic == [3]int{} {
			return 0
		}
		var k2 float64
		for d := range ic {
			f := float64(ic[d]) / g.L[d]
			k2 += f * f
		}
		return complex(damp*q2*icSign(ic)*EPSILON0INV/(math.Pi*k2)*math.Exp(-k2*math.Pi*math.Pi/(G*G)), 0)
	})
	dst.SetOrigin(grid.Center)
}

//SolventPairs returns the short-range potential and the k-representation of the
//long-range one, for every pair of sites in the solvent.
func SolventPairs(g *grid.Grid, solvent *rism.Molecule, damp float64) (*grid.Pairs, *grid.KPairs) {
	m := solvent.Len()
	vs := grid.NewPairs(g, m)
	vl := grid.NewKPairs(g, m)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			p := Mix(solvent.Sites[i], solvent.Sites[j])
			PairShort(vs.At(i, j), p, damp)
			LongFFT(vl.At(i, j), p.Q2, damp)
		}
	}
	return vs, vl
}

//Solute contains the fields created by a solute.
type Solute struct {
	//Short-range interaction of each solvent site with the whole solute.
	Short []*grid.Field
	//k-representation of the long-range electrostatic potential of the solute,
	//centered, not scaled by the charges of the solvent sites.
	UCFFT *grid.KField
	//UCFFT in real space.
	UC *grid.Field
	//Charge density of the gaussian cores of the solute.
	Rho *grid.Field
}

//SoluteField returns the fields created by the solute in the given solvent. The long-range
//potential comes from the Poisson equation for the gaussian-smeared solute charges,
//which is solved in k-space: u(k) = 4π·EPSILON0INV·ρ(k)/k², with
//ρ(k) = Σ q·exp(-ik·x)·exp(-k²/4G²) and u(0)=0.
func SoluteField(tr fft.Transform, solvent, solute *rism.Molecule, damp float64) (*Solute, error) {
	g := tr.Grid()
	m := solvent.Len()
	ret := &Solute{Short: grid.NewVector(g, m)}
	for i := 0; i < m; i++ {
		pairs := make([]Pair, solute.Len())
		for j, s := range solute.Sites {
			pairs[j] = Mix(solvent.Sites[i], s)
		}
		g.RMap(ret.Short[i], func(x [3]float64) float64 {
			var v float64
			for j, s := range solute.Sites {
				v += pairs[j].Short(rism.Distance(x, s.X), damp)
			}
			return v
		})
	}
	ret.Rho = grid.NewField(g)
	pref := math.Pow(G/math.Sqrt(math.Pi), 3)
	g.RMap(ret.Rho, func(x [3]float64) float64 {
		var sum float64
		for _, s := range solute.Sites {
			d := rism.Distance(x, s.X)
			sum += s.Charge * math.Exp(-G*G*d*d)
		}
		return pref * sum
	})
	ret.UCFFT = grid.NewKField(g)
	g.KMap(ret.UCFFT, func(ic [3]int, kv [3]float64) complex128 {
		k2 := ksq(kv)
		if k2 == 0 {
			return 0
		}
		var rho complex128
		for _, s := range solute.Sites {
			ph := kv[0]*s.X[0] + kv[1]*s.X[1] + kv[2]*s.X[2]
			rho += complex(s.Charge, 0) * cmplx.Exp(complex(0, -ph))
		}
		rho *= complex(math.Exp(-k2/(4*G*G)), 0)
		return complex(damp*4*math.Pi*EPSILON0INV*icSign(ic)/k2, 0) * rho
	})
	ret.UCFFT.SetOrigin(grid.Center)
	ret.UC = grid.NewField(g)
	if err := tr.Backward(ret.UC, ret.UCFFT); err != nil {
		return nil, rism.Decorate(err, "potential.SoluteField")
	}
	return ret, nil
}
