/*
 * chempot.go, part of gorism.
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
	"fmt"
	"math"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
)

//Functional selects the expression used for the excess chemical potential.
type Functional int

const (
	MuHNC Functional = iota
	MuKH
	MuGF //Gaussian fluctuations, used for PY
	MuPSE
)

func (f Functional) String() string {
	return [...]string{"HNC", "KH", "GF", "PSE"}[f]
}

//FunctionalFor returns the functional that goes with a closure kind.
func FunctionalFor(kind rism.ClosureKind) Functional {
	switch kind {
	case rism.KH:
		return MuKH
	case rism.PY:
		return MuGF
	case rism.PSE:
		return MuPSE
	}
	return MuHNC
}

//MuDensity returns the β-scaled density of the chemical potential at one point,
//given x=-βv+t, h, and the short and long range parts of c. order is only used by MuPSE.
func MuDensity(f Functional, order int, x, h, cs, cl float64) float64 {
	mu := -cs - 0.5*h*(cs+cl)
	switch f {
	case MuHNC:
		mu += 0.5 * h * h
	case MuKH:
		if h < 0 {
			mu += 0.5 * h * h
		}
	case MuPSE:
		mu += 0.5 * h * h
		if x > 0 {
			mu -= math.Pow(x, float64(order+1)) / factorial(order+1)
		}
	}
	return mu
}

func factorial(n int) float64 {
	r := 1.0
	for i := 2; i <= n; i++ {
		r *= float64(i)
	}
	return r
}

//Chempot returns the excess chemical potential ρ·Σ density·h³/β, summing the densities
//over all the given fields. The slices must have the same length.
func Chempot(f Functional, order int, rho, beta float64, x, h, cs, cl []*grid.Field) float64 {
	if len(x) != len(h) || len(x) != len(cs) || len(x) != len(cl) {
		panic(rism.ErrShape)
	}
	var sum float64
	for i := range x {
		xr, hr, csr, clr := x[i].Raw(), h[i].Raw(), cs[i].Raw(), cl[i].Raw()
		for j := range xr {
			sum += MuDensity(f, order, xr[j], hr[j], csr[j], clr[j])
		}
	}
	if len(x) == 0 {
		return 0
	}
	return rho * sum * x[0].Grid().CellVolume() / beta
}

//Potentials holds the chemical potentials from the HNC, KH and GF functionals
//and which of them is the native one for the closure used.
type Potentials struct {
	HNC, KH, GF float64
	Native      Functional
	Mu          float64 //value of the native functional
}

func (p Potentials) String() string {
	mark := func(f Functional) string {
		if f == p.Native {
			return "*"
		}
		return ""
	}
	return fmt.Sprintf("mu = %f kcal (HNC)%s\nmu = %f kcal (KH)%s\nmu = %f kcal (GF)%s", p.HNC, mark(MuHNC), p.KH, mark(MuKH), p.GF, mark(MuGF))
}

//AllPotentials evaluates the 3 usual functionals, plus the native one for the closure cl.
func AllPotentials(cl Closure, rho, beta float64, x, h, cs, clong []*grid.Field) Potentials {
	order := 0
	if p, ok := cl.(PSE); ok {
		order = p.Order
	}
	ret := Potentials{Native: FunctionalFor(cl.Kind())}
	ret.HNC = Chempot(MuHNC, 0, rho, beta, x, h, cs, clong)
	ret.KH = Chempot(MuKH, 0, rho, beta, x, h, cs, clong)
	ret.GF = Chempot(MuGF, 0, rho, beta, x, h, cs, clong)
	switch ret.Native {
	case MuHNC:
		ret.Mu = ret.HNC
	case MuKH:
		ret.Mu = ret.KH
	case MuGF:
		ret.Mu = ret.GF
	default:
		ret.Mu = Chempot(MuPSE, order, rho, beta, x, h, cs, clong)
	}
	return ret
}
