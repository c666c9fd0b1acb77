/*
 * options.go, part of gorism.
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

package hnc

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/roots"
)

//SolverKind selects the root finder used by the drivers.
type SolverKind int

const (
	Picard SolverKind = iota
	Newton
)

func (s SolverKind) String() string {
	if s == Newton {
		return "newton"
	}
	return "picard"
}

//ParseSolver parses "picard" or "newton".
func ParseSolver(s string) (SolverKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "picard":
		return Picard, nil
	case "newton", "newton-gmres":
		return Newton, nil
	}
	return Picard, rism.NewError(fmt.Sprintf("unknown solver %q", s), "hnc.ParseSolver", true)
}

//Options for the HNC drivers. Use DefaultOptions to obtain one.
type Options struct {
	cpus    int
	solver  SolverKind
	fft     fft.Kind
	restart int
	lintol  float64
	logger  *slog.Logger
}

//DefaultOptions returns Options with the Picard solver, the gonum FFT
//and one goroutine per CPU.
func DefaultOptions() *Options {
	return &Options{cpus: runtime.NumCPU(), solver: Picard, fft: fft.Gonum, restart: 20, lintol: 1e-3}
}

//Cpus returns the number of goroutines used for field operations,
//and sets it, if a positive value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//Solver returns the root finder and sets it, if given.
func (o *Options) Solver(s ...SolverKind) SolverKind {
	ret := o.solver
	if len(s) > 0 {
		o.solver = s[0]
	}
	return ret
}

//FFT returns the FFT backend and sets it, if given.
func (o *Options) FFT(k ...fft.Kind) fft.Kind {
	ret := o.fft
	if len(k) > 0 {
		o.fft = k[0]
	}
	return ret
}

//Krylov returns the dimension of the Krylov space for the Newton solver
//and sets it, if a positive value is given.
func (o *Options) Krylov(n ...int) int {
	ret := o.restart
	if len(n) > 0 && n[0] > 0 {
		o.restart = n[0]
	}
	return ret
}

//LinTol returns the relative tolerance of the linear solves in Newton
//steps, and sets it, if a positive value is given.
func (o *Options) LinTol(t ...float64) float64 {
	ret := o.lintol
	if len(t) > 0 && t[0] > 0 {
		o.lintol = t[0]
	}
	return ret
}

//Logger returns the logger in use and sets it, if a non-nil one is given.
//If none has been set, slog.Default() is returned.
func (o *Options) Logger(l ...*slog.Logger) *slog.Logger {
	if len(l) > 0 && l[0] != nil {
		o.logger = l[0]
	}
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func getOptions(options []*Options) *Options {
	if len(options) > 0 && options[0] != nil {
		return options[0]
	}
	return DefaultOptions()
}

//findRoot runs the chosen root finder on f starting from x.
func (o *Options) findRoot(ctx context.Context, pd *rism.ProblemData, f roots.Func, jac roots.JacFunc, x []float64) (roots.Result, error) {
	s := roots.DefaultSettings()
	s.Tol = pd.NormTol
	s.MaxIter = pd.MaxIter
	s.Lambda = pd.Lambda
	s.Restart = o.restart
	s.LinTol = o.lintol
	s.Logger(o.Logger())
	if o.solver == Newton {
		return roots.Newton(ctx, f, jac, x, s)
	}
	return roots.Picard(ctx, f, x, s)
}
