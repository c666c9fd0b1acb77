/*
 * solvent.go, part of gorism.
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
	"log/slog"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/closure"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/omega"
	"github.com/rmera/gorism/oz"
	"github.com/rmera/gorism/potential"
)

//SolventResult contains the correlation functions of a pure solvent.
type SolventResult struct {
	G, H, C, T *grid.Pairs
	//Chi is χ-1, the solvent susceptibility minus the identity,
	//with the origin at the corner.
	Chi        *grid.KPairs
	Mu         closure.Potentials
	Converged  bool
	Iterations int
	Norm       float64
}

func (r *SolventResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("converged", r.Converged),
		slog.Int("iterations", r.Iterations),
		slog.Float64("norm", r.Norm),
		slog.Float64("mu", r.Mu.Mu),
	)
}

//solvent holds the data needed to evaluate the residual of the solvent equations.
type solvent struct {
	pd   *rism.ProblemData
	g    *grid.Grid
	tr   fft.Transform
	cl   closure.Closure
	m    int
	vs   *grid.Pairs  //short-range potentials
	vl   *grid.KPairs //long-range potentials, k-space
	w    *grid.KPairs //intramolecular correlations
	cFFT *grid.KPairs
	tFFT *grid.KPairs
	c    *grid.Field
}

func newSolvent(pd *rism.ProblemData, mol *rism.Molecule, o *Options) (*solvent, error) {
	if err := pd.Validate(); err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	if err := mol.Validate(); err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	cl, err := closure.FromProblem(pd)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	g := grid.FromProblem(pd, o.Cpus())
	s := &solvent{pd: pd, g: g, tr: fft.New(o.FFT(), g), cl: cl, m: mol.Len()}
	s.vs, s.vl = potential.SolventPairs(g, mol, pd.Damp)
	s.w, err = omega.Matrix(g, mol)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	s.cFFT = grid.NewKPairs(g, s.m)
	s.tFFT = grid.NewKPairs(g, s.m)
	s.c = grid.NewField(g)
	return s, nil
}

//iterate puts in r the change in the packed t given by one pass through the
//closure and the OZ equation.
func (s *solvent) iterate(x, r []float64) error {
	beta := complex(s.pd.Beta, 0)
	t := grid.PairsFromPacked(s.g, s.m, x)
	dt := grid.PairsFromPacked(s.g, s.m, r)
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			closure.Fields(s.cl, s.pd.Beta, s.c, s.vs.At(i, j), t.At(i, j))
			C := s.cFFT.At(i, j)
			if err := s.tr.Forward(C, s.c); err != nil {
				return rism.Decorate(err, "hnc.solvent.iterate")
			}
			C.AXPY(-beta, s.vl.At(i, j))
			C.Translate()
		}
	}
	if err := oz.Solve(s.pd.Rho, s.cFFT, s.w, s.tFFT); err != nil {
		return rism.Decorate(err, "hnc.solvent.iterate")
	}
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			T := s.tFFT.At(i, j)
			T.Translate()
			T.AXPY(-beta, s.vl.At(i, j))
			out := dt.At(i, j)
			if err := s.tr.Backward(out, T); err != nil {
				return rism.Decorate(err, "hnc.solvent.iterate")
			}
			out.Sub(out, t.At(i, j))
		}
	}
	return nil
}

//SolventSolve solves the RISM equations of a pure solvent made of mol molecules.
//Not reaching convergence is not an error: it is reported in the result.
func SolventSolve(ctx context.Context, pd *rism.ProblemData, mol *rism.Molecule, options ...*Options) (*SolventResult, error) {
	o := getOptions(options)
	log := o.Logger()
	s, err := newSolvent(pd, mol, o)
	if err != nil {
		return nil, err
	}
	log.Info("solvent", "molecule", mol.Name, "sites", s.m, "problem", pd, "solver", o.Solver().String())
	x := make([]float64, grid.PairCount(s.m)*s.g.Len())
	res, err := o.findRoot(ctx, pd, s.iterate, nil, x)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	ret, err := s.post(x)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SolventSolve")
	}
	ret.Converged, ret.Iterations, ret.Norm = res.Converged, res.Iterations, res.Norm
	if !ret.Converged {
		log.Warn("solvent did not converge", "result", ret)
	} else {
		log.Info("solvent done", "result", ret)
	}
	return ret, nil
}

//post computes the correlation functions, the chemical potential and the susceptibility from the packed t.
func (s *solvent) post(x []float64) (*SolventResult, error) {
	beta := s.pd.Beta
	t := grid.PairsFromPacked(s.g, s.m, x)
	ret := &SolventResult{T: t.Clone(), C: grid.NewPairs(s.g, s.m), H: grid.NewPairs(s.g, s.m), G: grid.NewPairs(s.g, s.m)}
	clong := grid.NewPairs(s.g, s.m)
	xs := grid.NewPairs(s.g, s.m)
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			c := ret.C.At(i, j)
			closure.Fields(s.cl, beta, c, s.vs.At(i, j), t.At(i, j))
			ret.H.At(i, j).Add(c, t.At(i, j))
			ret.G.At(i, j).Copy(ret.H.At(i, j))
			ret.G.At(i, j).Shift(1)
			if err := s.tr.Backward(clong.At(i, j), s.vl.At(i, j)); err != nil {
				return nil, err
			}
			clong.At(i, j).Scale(-beta)
			xs.At(i, j).WAXPY(-beta, s.vs.At(i, j), t.At(i, j))
		}
	}
	var lx, lh, lcs, lcl []*grid.Field
	for i := 0; i < s.m; i++ {
		for j := 0; j < s.m; j++ {
			lx = append(lx, xs.At(i, j))
			lh = append(lh, ret.H.At(i, j))
			lcs = append(lcs, ret.C.At(i, j))
			lcl = append(lcl, clong.At(i, j))
		}
	}
	ret.Mu = closure.AllPotentials(s.cl, s.pd.Rho, beta, lx, lh, lcs, lcl)
	ret.Chi = grid.NewKPairs(s.g, s.m)
	rh := grid.NewField(s.g)
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			rh.Copy(ret.H.At(i, j))
			rh.Scale(s.pd.Rho)
			chi := ret.Chi.At(i, j)
			if err := s.tr.Forward(chi, rh); err != nil {
				return nil, err
			}
			chi.Translate()
			if i != j {
				chi.AXPY(1, s.w.At(i, j))
			}
		}
	}
	return ret, nil
}
