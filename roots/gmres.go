/*
 * gmres.go, part of gorism.
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

package roots

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//GMRES solves A·x = b with the restarted GMRES method, where apply
//puts A·v in av. x is the initial guess and is overwritten with the solution.
//It returns the total number of iterations and the final residual norm,
//relative to ‖b‖. tol is relative to ‖b‖ too.
func GMRES(apply func(v, av []float64) error, b, x []float64, restart, maxit int, tol float64) (int, float64, error) {
	n := len(b)
	if restart < 1 {
		restart = 1
	}
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		for i := range x {
			x[i] = 0
		}
		return 0, 0, nil
	}
	v := make([][]float64, restart+1)
	for i := range v {
		v[i] = make([]float64, n)
	}
	h := make([][]float64, restart+1)
	for i := range h {
		h[i] = make([]float64, restart)
	}
	cs := make([]float64, restart)
	sn := make([]float64, restart)
	s := make([]float64, restart+1)
	y := make([]float64, restart)
	w := make([]float64, n)
	its := 0
	res := math.Inf(1)
	for its < maxit {
		//r = b - A·x
		if err := apply(x, w); err != nil {
			return its, res, err
		}
		floats.SubTo(v[0], b, w)
		beta := floats.Norm(v[0], 2)
		res = beta / bnorm
		if res <= tol {
			return its, res, nil
		}
		floats.Scale(1/beta, v[0])
		for i := range s {
			s[i] = 0
		}
		s[0] = beta
		k := 0
		for ; k < restart && its < maxit; k++ {
			its++
			if err := apply(v[k], w); err != nil {
				return its, res, err
			}
			//modified Gram-Schmidt
			for i := 0; i <= k; i++ {
				h[i][k] = floats.Dot(w, v[i])
				floats.AddScaled(w, -h[i][k], v[i])
			}
			h[k+1][k] = floats.Norm(w, 2)
			if h[k+1][k] != 0 {
				floats.ScaleTo(v[k+1], 1/h[k+1][k], w)
			}
			for i := 0; i < k; i++ {
				t := cs[i]*h[i][k] + sn[i]*h[i+1][k]
				h[i+1][k] = -sn[i]*h[i][k] + cs[i]*h[i+1][k]
				h[i][k] = t
			}
			den := math.Hypot(h[k][k], h[k+1][k])
			if den == 0 {
				cs[k], sn[k] = 1, 0
			} else {
				cs[k], sn[k] = h[k][k]/den, h[k+1][k]/den
			}
			h[k][k] = den
			h[k+1][k] = 0
			s[k+1] = -sn[k] * s[k]
			s[k] = cs[k] * s[k]
			res = math.Abs(s[k+1]) / bnorm
			if res <= tol || den == 0 {
				k++
				break
			}
		}
		//back substitution for the k×k triangular system
		for i := k - 1; i >= 0; i-- {
			y[i] = s[i]
			for j := i + 1; j < k; j++ {
				y[i] -= h[i][j] * y[j]
			}
			if h[i][i] != 0 {
				y[i] /= h[i][i]
			} else {
				y[i] = 0
			}
		}
		for i := 0; i < k; i++ {
			floats.AddScaled(x, y[i], v[i])
		}
		if res <= tol {
			return its, res, nil
		}
	}
	return its, res, nil
}
