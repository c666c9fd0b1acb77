/*
 * linear.go, part of gorism.
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

package oz

import (
	"errors"
	"math"

	rism "github.com/rmera/gorism"
	"gonum.org/v1/gonum/mat"
)

//csolver solves small complex linear systems A·X = B through
//the real system [[Ar, -Ai], [Ai, Ar]]·[Xr; Xi] = [Br; Bi].
//It keeps its scratch space, so it is not safe for concurrent use.
type csolver struct {
	m  int
	a  *mat.Dense
	b  *mat.Dense
	x  *mat.Dense
	lu mat.LU
}

func newCSolver(m, cols int) *csolver {
	return &csolver{
		m: m,
		a: mat.NewDense(2*m, 2*m, nil),
		b: mat.NewDense(2*m, cols, nil),
		x: mat.NewDense(2*m, cols, nil),
	}
}

//solve puts the solution of a·x = b in b.
func (s *csolver) solve(a, b [][]complex128) error {
	m := s.m
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			re, im := real(a[i][j]), imag(a[i][j])
			s.a.Set(i, j, re)
			s.a.Set(i, j+m, -im)
			s.a.Set(i+m, j, im)
			s.a.Set(i+m, j+m, re)
		}
		for j := range b[i] {
			s.b.Set(i, j, real(b[i][j]))
			s.b.Set(i+m, j, imag(b[i][j]))
		}
	}
	s.lu.Factorize(s.a)
	err := s.lu.SolveTo(s.x, false, s.b)
	if err != nil {
		var cond mat.Condition
		//ill-conditioned systems still give a usable answer.
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return rism.Errorf(rism.ErrSingular, "oz.SolveComplex", "%v", err)
		}
	}
	for i := 0; i < m; i++ {
		for j := range b[i] {
			b[i][j] = complex(s.x.At(i, j), s.x.At(i+m, j))
		}
	}
	return nil
}

//SolveComplex solves the complex system a·x = b. The solution
//is put in b. a is not modified.
func SolveComplex(a, b [][]complex128) error {
	m := len(a)
	if m == 0 || len(b) != m {
		panic(rism.ErrShape)
	}
	s := newCSolver(m, len(b[0]))
	return s.solve(a, b)
}
