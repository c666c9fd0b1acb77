/*
 * roots.go, part of gorism.
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

//Package roots finds zeros of residual functions over packed vectors.
//The residual of a fixed-point problem x = x + r(x) is r, so both
//a plain Picard iteration and a Newton-GMRES method can be used.
package roots

import (
	"context"
	"log/slog"
	"math"

	rism "github.com/rmera/gorism"
	"gonum.org/v1/gonum/floats"
)

//Func puts the residual at x in f.
type Func func(x, f []float64) error

//JacFunc puts J(x)·v in jv, where J is the Jacobian of the residual.
type JacFunc func(x, v, jv []float64) error

//Settings for the root finders. Use DefaultSettings to get sensible values.
type Settings struct {
	Tol        float64 //on the RMS of the residual
	MaxIter    int
	Lambda     float64 //Picard step
	Restart    int     //Krylov space dimension
	LinTol     float64 //relative tolerance of the linear solves
	LinMaxIter int
	logger     *slog.Logger
}

//DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{Tol: 1e-7, MaxIter: 100, Lambda: 0.1, Restart: 20, LinTol: 1e-3, LinMaxIter: 60}
}

//Logger returns the logger used, after setting it to the first given
//element, if any.
func (s *Settings) Logger(l ...*slog.Logger) *slog.Logger {
	if len(l) > 0 && l[0] != nil {
		s.logger = l[0]
	}
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

//Result reports the outcome of a root search.
type Result struct {
	Converged  bool
	Iterations int
	Norm       float64
}

func (r Result) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("converged", r.Converged), slog.Int("iterations", r.Iterations), slog.Float64("norm", r.Norm))
}

//RMS returns ‖f‖₂/√n
func RMS(f []float64) float64 {
	if len(f) == 0 {
		return 0
	}
	return floats.Norm(f, 2) / math.Sqrt(float64(len(f)))
}

//Picard iterates x ← x + λr(x) until the RMS of r is below the tolerance.
//If the iteration budget is exhausted, x holds the best point found and
//no error is returned.
func Picard(ctx context.Context, f Func, x []float64, s *Settings) (Result, error) {
	log := s.Logger()
	r := make([]float64, len(x))
	best := make([]float64, len(x))
	copy(best, x)
	ret := Result{Norm: math.Inf(1)}
	for it := 0; it < s.MaxIter; it++ {
		if err := ctx.Err(); err != nil {
			return ret, err
		}
		if err := f(x, r); err != nil {
			return ret, rism.Decorate(err, "roots.Picard")
		}
		norm := RMS(r)
		ret.Iterations = it + 1
		log.Debug("picard", "iter", it, "norm", norm)
		if norm < ret.Norm {
			ret.Norm = norm
			copy(best, x)
		}
		if norm <= s.Tol {
			ret.Converged = true
			return ret, nil
		}
		if math.IsNaN(norm) {
			break
		}
		floats.AddScaled(x, s.Lambda, r)
	}
	copy(x, best)
	return ret, nil
}

//Newton solves r(x)=0 by an inexact Newton method. The Newton steps
//are obtained with restarted GMRES, using jac for the Jacobian-vector
//products or, if jac is nil, forward finite differences of f.
//A backtracking line search is done on ‖r‖, and a Picard step is taken
//when it fails. On budget exhaustion, x holds the best point found and
//no error is returned.
func Newton(ctx context.Context, f Func, jac JacFunc, x []float64, s *Settings) (Result, error) {
	log := s.Logger()
	n := len(x)
	r := make([]float64, n)
	rt := make([]float64, n)
	xt := make([]float64, n)
	dx := make([]float64, n)
	best := make([]float64, n)
	ret := Result{Norm: math.Inf(1)}
	if err := f(x, r); err != nil {
		return ret, rism.Decorate(err, "roots.Newton")
	}
	norm := RMS(r)
	copy(best, x)
	ret.Norm = norm
	jv := jac
	if jv == nil {
		jv = func(x, v, out []float64) error {
			vn := floats.Norm(v, 2)
			if vn == 0 {
				for i := range out {
					out[i] = 0
				}
				return nil
			}
			eps := math.Sqrt(2.2e-16) * (1 + floats.Norm(x, 2)) / vn
			floats.AddScaledTo(xt, x, eps, v)
			if err := f(xt, out); err != nil {
				return err
			}
			floats.Sub(out, r)
			floats.Scale(1/eps, out)
			return nil
		}
	}
	minusr := make([]float64, n)
	for it := 0; it < s.MaxIter; it++ {
		if norm <= s.Tol {
			ret.Converged = true
			break
		}
		if err := ctx.Err(); err != nil {
			return ret, err
		}
		ret.Iterations = it + 1
		copy(minusr, r)
		floats.Scale(-1, minusr)
		for i := range dx {
			dx[i] = 0
		}
		apply := func(v, av []float64) error { return jv(x, v, av) }
		lits, lres, err := GMRES(apply, minusr, dx, s.Restart, s.LinMaxIter, s.LinTol)
		if err != nil {
			return ret, rism.Decorate(err, "roots.Newton")
		}
		accepted := false
		step := 1.0
		for try := 0; try < 8; try++ {
			floats.AddScaledTo(xt, x, step, dx)
			if err := f(xt, rt); err != nil {
				return ret, rism.Decorate(err, "roots.Newton")
			}
			if nt := RMS(rt); nt < (1-1e-4*step)*norm {
				copy(x, xt)
				copy(r, rt)
				norm = nt
				accepted = true
				break
			}
			step /= 2
		}
		if !accepted {
			floats.AddScaled(x, s.Lambda, r)
			if err := f(x, r); err != nil {
				return ret, rism.Decorate(err, "roots.Newton")
			}
			norm = RMS(r)
		}
		log.Debug("newton", "iter", it, "norm", norm, "step", step, "gmres_iters", lits, "gmres_res", lres, "picard", !accepted)
		if norm < ret.Norm {
			ret.Norm = norm
			copy(best, x)
		}
		if math.IsNaN(norm) {
			break
		}
	}
	if norm <= s.Tol {
		ret.Converged = true
		ret.Norm = norm
		return ret, nil
	}
	copy(x, best)
	return ret, nil
}
