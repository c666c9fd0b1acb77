/*
 * solute.go, part of gorism.
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

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/closure"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/oz"
	"github.com/rmera/gorism/potential"
)

//Restart carries the indirect correlations of a solute calculation, so a
//later calculation on the same grid can start from them.
type Restart struct {
	N [3]int
	L [3]float64
	M int       //number of solvent sites
	T []float64 //packed t, site after site
}

//matches returns true if the token can seed a calculation with m solvent sites on g.
func (r *Restart) matches(g *grid.Grid, m int) bool {
	return r != nil && r.N == g.N && r.L == g.L && r.M == m && len(r.T) == m*g.Len()
}

//SoluteResult contains the solute-solvent correlation functions, one per solvent site.
type SoluteResult struct {
	G, H, C, T []*grid.Field
	Mu         closure.Potentials
	Energy     float64 //solute-solvent interaction energy, kcal/mol
	//Forces on each solute site, kcal/mol/Å, from the solvent distribution.
	Forces     [][3]float64
	Restart    *Restart
	Converged  bool
	Iterations int
	Norm       float64
}

func (r *SoluteResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("converged", r.Converged),
		slog.Int("iterations", r.Iterations),
		slog.Float64("norm", r.Norm),
		slog.Float64("mu", r.Mu.Mu),
		slog.Float64("energy", r.Energy),
	)
}

type solute struct {
	pd   *rism.ProblemData
	g    *grid.Grid
	tr   fft.Transform
	cl   closure.Closure
	m    int
	solv *rism.Molecule
	sol  *rism.Molecule
	q    []float64 //solvent charges
	chi  *grid.KPairs
	fs   *potential.Solute
	cFFT []*grid.KField
	tFFT []*grid.KField
}

//propagate computes backward(χ⋆forward(c_i) - β·q_i·uc) for every site, and puts it in out.
//If long is false, the Coulomb terms are omitted, which gives the linear
//part used by the Jacobian.
func (s *solute) propagate(c, out []*grid.Field, long bool) error {
	beta := complex(s.pd.Beta, 0)
	for i := 0; i < s.m; i++ {
		if err := s.tr.Forward(s.cFFT[i], c[i]); err != nil {
			return err
		}
		if long {
			s.cFFT[i].AXPY(-beta*complex(s.q[i], 0), s.fs.UCFFT)
		}
	}
	oz.Star(s.chi, s.cFFT, s.tFFT)
	for i := 0; i < s.m; i++ {
		if long {
			s.tFFT[i].AXPY(-beta*complex(s.q[i], 0), s.fs.UCFFT)
		}
		if err := s.tr.Backward(out[i], s.tFFT[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *solute) iterate(x, r []float64) error {
	t := grid.Vector(s.g, s.m, x)
	dt := grid.Vector(s.g, s.m, r)
	c := make([]*grid.Field, s.m)
	for i := range c {
		//dt is used as scratch for c.
		closure.Fields(s.cl, s.pd.Beta, dt[i], s.fs.Short[i], t[i])
		c[i] = dt[i]
	}
	if err := s.propagate(c, dt, true); err != nil {
		return rism.Decorate(err, "hnc.solute.iterate")
	}
	for i := range dt {
		dt[i].Sub(dt[i], t[i])
	}
	return nil
}

//jacobian puts J·v in jv, where J is the derivative of iterate at x.
func (s *solute) jacobian(x, v, jv []float64) error {
	t := grid.Vector(s.g, s.m, x)
	dt := grid.Vector(s.g, s.m, v)
	out := grid.Vector(s.g, s.m, jv)
	dc := make([]*grid.Field, s.m)
	for i := range dc {
		closure.DerivFields(s.cl, s.pd.Beta, out[i], s.fs.Short[i], t[i], dt[i])
		dc[i] = out[i]
	}
	if err := s.propagate(dc, out, false); err != nil {
		return rism.Decorate(err, "hnc.solute.jacobian")
	}
	for i := range out {
		out[i].Sub(out[i], dt[i])
	}
	return nil
}

//SoluteSolve solves the 3D RISM equations for the solute in the solvent,
//given χ-1 for the solvent, as returned by SolventSolve. If chi is nil, the
//solvent is solved first. If restart matches the problem, it is used as the
//initial guess; otherwise t starts at 0.
func SoluteSolve(ctx context.Context, pd *rism.ProblemData, solv, sol *rism.Molecule, chi *grid.KPairs, restart *Restart, options ...*Options) (*SoluteResult, error) {
	o := getOptions(options)
	log := o.Logger()
	if err := pd.Validate(); err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	if err := solv.Validate(); err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	if err := sol.Validate(); err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	cl, err := closure.FromProblem(pd)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	g := grid.FromProblem(pd, o.Cpus())
	m := solv.Len()
	if chi == nil {
		sr, err := SolventSolve(ctx, pd, solv, o)
		if err != nil {
			return nil, rism.Decorate(err, "hnc.SoluteSolve")
		}
		chi = sr.Chi
	}
	if chi.M() != m {
		return nil, rism.Errorf(rism.ErrGrid, "hnc.SoluteSolve", "susceptibility has %d sites, solvent has %d", chi.M(), m)
	}
	if !chi.At(0, 0).Grid().Same(g) {
		return nil, rism.Errorf(rism.ErrGrid, "hnc.SoluteSolve", "susceptibility grid %v does not match %v", chi.At(0, 0).Grid().N, g.N)
	}
	s := &solute{pd: pd, g: g, tr: fft.New(o.FFT(), g), cl: cl, m: m, solv: solv, sol: sol, chi: chi}
	s.fs, err = potential.SoluteField(s.tr, solv, sol, pd.Damp)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	s.q = make([]float64, m)
	for i, v := range solv.Sites {
		s.q[i] = v.Charge
	}
	s.cFFT = grid.NewKVector(g, m)
	s.tFFT = grid.NewKVector(g, m)
	x := make([]float64, m*g.Len())
	if restart.matches(g, m) {
		copy(x, restart.T)
		log.Info("solute restarting from previous t")
	} else if restart != nil {
		log.Warn("restart data ignored", "error", rism.Errorf(rism.ErrRestart, "hnc.SoluteSolve", "%d sites on %v", restart.M, restart.N))
	}
	log.Info("solute", "solute", sol.Name, "solvent", solv.Name, "problem", pd, "solver", o.Solver().String())
	res, err := o.findRoot(ctx, pd, s.iterate, s.jacobian, x)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	ret, err := s.post(x)
	if err != nil {
		return nil, rism.Decorate(err, "hnc.SoluteSolve")
	}
	ret.Converged, ret.Iterations, ret.Norm = res.Converged, res.Iterations, res.Norm
	if !ret.Converged {
		log.Warn("solute did not converge", "result", ret)
	} else {
		log.Info("solute done", "result", ret)
	}
	return ret, nil
}

func (s *solute) post(x []float64) (*SoluteResult, error) {
	beta := s.pd.Beta
	t := grid.Vector(s.g, s.m, x)
	ret := &SoluteResult{T: make([]*grid.Field, s.m), C: grid.NewVector(s.g, s.m), H: grid.NewVector(s.g, s.m), G: grid.NewVector(s.g, s.m)}
	clong := grid.NewVector(s.g, s.m)
	xs := grid.NewVector(s.g, s.m)
	for i := 0; i < s.m; i++ {
		ret.T[i] = t[i].Clone()
		closure.Fields(s.cl, beta, ret.C[i], s.fs.Short[i], t[i])
		ret.H[i].Add(ret.C[i], t[i])
		ret.G[i].Copy(ret.H[i])
		ret.G[i].Shift(1)
		clong[i].Copy(s.fs.UC)
		clong[i].Scale(-beta * s.q[i])
		xs[i].WAXPY(-beta, s.fs.Short[i], t[i])
	}
	qh := grid.NewField(s.g)
	ret.Energy = interaction(s.pd.Rho, s.q, ret.H, s.fs, qh)
	var err error
	ret.Forces, err = s.forces(ret.H, qh)
	if err != nil {
		return nil, err
	}
	ret.Mu = closure.AllPotentials(s.cl, s.pd.Rho, beta, xs, ret.H, ret.C, clong)
	packed := make([]float64, len(x))
	copy(packed, x)
	ret.Restart = &Restart{N: s.g.N, L: s.g.L, M: s.m, T: packed}
	return ret, nil
}

//interaction returns the interaction energy of the solute field fs with the
//solvent distribution h: ρh³[Σ_i⟨1+h_i, v_i⟩ + ⟨Σ_i q_i h_i, uc⟩].
//qh is scratch.
func interaction(rho float64, q []float64, h []*grid.Field, fs *potential.Solute, qh *grid.Field) float64 {
	var e float64
	qh.Zeros()
	for i := range h {
		e += fs.Short[i].Sum() + h[i].Dot(fs.Short[i])
		qh.AXPY(q[i], h[i])
	}
	e += qh.Dot(fs.UC)
	return rho * h[0].Grid().CellVolume() * e
}

//forceStep is the displacement of a solute site, in Å, used to differentiate
//the solute field.
const forceStep = 1e-3

//forces returns, for each solute site, minus the derivative of the interaction
//energy with respect to the position of the site, with h held fixed.
func (s *solute) forces(h []*grid.Field, qh *grid.Field) ([][3]float64, error) {
	ret := make([][3]float64, s.sol.Len())
	mol := s.sol.Copy()
	for a := range mol.Sites {
		for d := 0; d < 3; d++ {
			var e [2]float64
			for n, sign := range [2]float64{1, -1} {
				mol.Sites[a].X[d] = s.sol.Sites[a].X[d] + sign*forceStep
				fs, err := potential.SoluteField(s.tr, s.solv, mol, s.pd.Damp)
				if err != nil {
					return nil, rism.Decorate(err, "hnc.solute.forces")
				}
				e[n] = interaction(s.pd.Rho, s.q, h, fs, qh)
			}
			mol.Sites[a].X[d] = s.sol.Sites[a].X[d]
			ret[a][d] = -(e[0] - e[1]) / (2 * forceStep)
		}
	}
	return ret, nil
}

func (r *Restart) String() string {
	if r == nil {
		return "<nil restart>"
	}
	return fmt.Sprintf("restart: %d sites on %v, L=%v", r.M, r.N, r.L)
}
