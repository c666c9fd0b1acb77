/*
 * oz.go, part of gorism.
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

//Package oz solves the Ornstein-Zernike equations in k-space, one mode at a time.
package oz

import (
	"sync"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
)

//Scalar puts t = ρc²/(1-ρc) in t, mode by mode. This is the OZ equation
//for a 1-site solvent.
func Scalar(rho float64, c, t *grid.KField) {
	r := complex(rho, 0)
	cd := c.Raw()
	td := t.Raw()
	c.Grid().Parallel(len(cd), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x := cd[i]
			td[i] = r * x * x / (1 - r*x)
		}
	})
	t.SetOrigin(c.Origin())
}

func cmatrix(m int) [][]complex128 {
	ret := make([][]complex128, m)
	for i := range ret {
		ret[i] = make([]complex128, m)
	}
	return ret
}

//scratch is the per-goroutine working space for Matrix.
type scratch struct {
	c, w, wc, tm, h [][]complex128
	solver          *csolver
}

func newScratch(m int) *scratch {
	return &scratch{c: cmatrix(m), w: cmatrix(m), wc: cmatrix(m), tm: cmatrix(m), h: cmatrix(m), solver: newCSolver(m, m)}
}

func mul(dst, a, b [][]complex128) {
	m := len(a)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			var s complex128
			for k := 0; k < m; k++ {
				s += a[i][k] * b[k][j]
			}
			dst[i][j] = s
		}
	}
}

//Matrix solves the OZ equation of an m-site solvent. For each mode, with
//C the direct correlations and W the intramolecular correlations (1 in the
//diagonal), it solves (I - ρWC)·H = WCW and puts H - C in T.
//W is taken as the identity if nil.
func Matrix(rho float64, C, W, T *grid.KPairs) error {
	m := C.M()
	if T.M() != m || (W != nil && W.M() != m) {
		panic(rism.ErrShape)
	}
	g := C.At(0, 0).Grid()
	n := g.Len()
	var mu sync.Mutex
	var ferr error
	g.Parallel(n, func(lo, hi int) {
		s := newScratch(m)
		r := complex(rho, 0)
		for idx := lo; idx < hi; idx++ {
			for i := 0; i < m; i++ {
				for j := i; j < m; j++ {
					v := C.At(i, j).Raw()[idx]
					s.c[i][j], s.c[j][i] = v, v
					var w complex128
					if i == j {
						w = 1
					} else if W != nil {
						w = W.At(i, j).Raw()[idx]
					}
					s.w[i][j], s.w[j][i] = w, w
				}
			}
			mul(s.wc, s.w, s.c)
			mul(s.h, s.wc, s.w)
			for i := 0; i < m; i++ {
				for j := 0; j < m; j++ {
					s.tm[i][j] = -r * s.wc[i][j]
				}
				s.tm[i][i] += 1
			}
			if err := s.solver.solve(s.tm, s.h); err != nil {
				mu.Lock()
				if ferr == nil {
					ferr = err
				}
				mu.Unlock()
				return
			}
			for i := 0; i < m; i++ {
				for j := i; j < m; j++ {
					T.At(i, j).Raw()[idx] = s.h[i][j] - s.c[i][j]
				}
			}
		}
	})
	if ferr != nil {
		return rism.Decorate(ferr, "oz.Matrix")
	}
	for _, t := range T.Unique() {
		t.SetOrigin(C.At(0, 0).Origin())
	}
	return nil
}

//Solve uses Scalar for 1-site solvents and Matrix otherwise.
func Solve(rho float64, C, W, T *grid.KPairs) error {
	if C.M() == 1 {
		Scalar(rho, C.At(0, 0), T.At(0, 0))
		return nil
	}
	return Matrix(rho, C, W, T)
}

//Star puts y_i = Σ_j χ_ij·x_j in y, mode by mode. y must not share
//storage with x.
func Star(chi *grid.KPairs, x, y []*grid.KField) {
	m := chi.M()
	if len(x) != m || len(y) != m {
		panic(rism.ErrShape)
	}
	g := x[0].Grid()
	g.Parallel(g.Len(), func(lo, hi int) {
		for i := 0; i < m; i++ {
			yd := y[i].Raw()
			for idx := lo; idx < hi; idx++ {
				var s complex128
				for j := 0; j < m; j++ {
					s += chi.At(i, j).Raw()[idx] * x[j].Raw()[idx]
				}
				yd[idx] = s
			}
		}
	})
	for i := range y {
		y[i].SetOrigin(x[i].Origin())
	}
}
