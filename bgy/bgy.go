/*
 * bgy.go, part of gorism.
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

//Package bgy implements the BGY3D equations for rigid solvents, solved by
//explicit mixing with a damping ramp for the potentials and an adaptive step.
package bgy

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/potential"
	"github.com/rmera/gorism/regularize"
)

//Options for the BGY driver.
type Options struct {
	cpus   int
	fft    fft.Kind
	mixing MixingConfig
	reg    regularize.Config
	logger *slog.Logger
}

//DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{cpus: runtime.NumCPU(), mixing: DefaultMixing(), reg: regularize.DefaultConfig()}
}

//Cpus returns the number of goroutines to use, and sets it, if a positive value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
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

//Mixing returns the step control parameters and sets them, if given.
func (o *Options) Mixing(m ...MixingConfig) MixingConfig {
	ret := o.mixing
	if len(m) > 0 {
		o.mixing = m[0]
	}
	return ret
}

//Regularize returns the regularization thresholds and sets them, if given.
func (o *Options) Regularize(r ...regularize.Config) regularize.Config {
	ret := o.reg
	if len(r) > 0 {
		o.reg = r[0]
	}
	return ret
}

//Logger returns the logger in use and sets it, if a non-nil one is given.
func (o *Options) Logger(l ...*slog.Logger) *slog.Logger {
	if len(l) > 0 && l[0] != nil {
		o.logger = l[0]
	}
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

//Level reports the outcome of one damping level.
type Level struct {
	Damp       float64
	Converged  bool
	Iterations int
	Norm       float64 //largest of the pair norms in the last iteration
	Step       float64 //adaptive step at the end
}

func (l Level) LogValue() slog.Value {
	return slog.GroupValue(slog.Float64("damp", l.Damp), slog.Bool("converged", l.Converged),
		slog.Int("iterations", l.Iterations), slog.Float64("norm", l.Norm), slog.Float64("step", l.Step))
}

//Result of a BGY calculation.
type Result struct {
	G      *grid.Pairs
	DG     *grid.Pairs
	Levels []Level
}

//Converged returns true if the last damping level converged.
func (r *Result) Converged() bool {
	return len(r.Levels) > 0 && r.Levels[len(r.Levels)-1].Converged
}

//task is the update of the pair a,b.
type task struct{ a, b int }

//Tasks returns the order in which the pairs are updated: different sites first, then
//each site with itself, in site order.
func Tasks(m int) []task {
	var ret []task
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			ret = append(ret, task{i, j})
		}
	}
	for i := 0; i < m; i++ {
		ret = append(ret, task{i, i})
	}
	return ret
}

//DampLevels returns the damping values start, start+0.1 ... up to 1.
func DampLevels(start float64) []float64 {
	var ret []float64
	for i := 0; ; i++ {
		d := math.Round((start+0.1*float64(i))*1e9) / 1e9
		if d > 1 {
			break
		}
		ret = append(ret, d)
	}
	return ret
}

//strengths returns the factors for the LJ and Coulomb interactions at a given damping.
func strengths(damp float64) (lj, coul float64) {
	switch {
	case damp < 0:
		return 0, 0
	case damp == 0:
		return 1, 0
	}
	return 1, damp
}

type solver struct {
	pd    *rism.ProblemData
	o     *Options
	g     *grid.Grid
	tr    fft.Transform
	m     int
	bonds [][]float64
	sites []rism.Site
	ff    [][]*potential.ForceField //indexed [a][b], symmetric
	gp    *grid.Pairs
	g0    *grid.Pairs
	dg    *grid.Pairs
	//scratch
	fg   [3]*grid.KField
	gk   *grid.KField
	dgk  *grid.KField
	v    *grid.Field
	out  *grid.Field
	nw   *grid.Field
	tmp  *grid.Field
	tmp2 *grid.Field
	ktmp *grid.KField
}

//inter adds to dst the contribution of the site c to the pair a,b: ρβ times
//the convolution of the force F_bc·g_bc with g_ac, plus the long-range Coulomb term.
func (s *solver) inter(dst *grid.Field, ff *potential.ForceField, gbc, gac *grid.Field) error {
	for d := 0; d < 3; d++ {
		s.v.Map3(ff.F[d], gbc, ff.FL[d], func(f, g, fl float64) float64 {
			return f*g - fl
		})
		if err := s.tr.Forward(s.fg[d], s.v); err != nil {
			return err
		}
	}
	if err := s.tr.Forward(s.gk, gac); err != nil {
		return err
	}
	g := s.g
	out := s.dgk.Raw()
	gk := s.gk.Raw()
	vl := ff.VLong.Raw()
	fg := [3][]complex128{s.fg[0].Raw(), s.fg[1].Raw(), s.fg[2].Raw()}
	g.Parallel(len(out), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			ic, kv := g.KVec(i, j, k)
			if ic == [3]int{} {
				out[idx] = 0
				continue
			}
			k2 := kv[0]*kv[0] + kv[1]*kv[1] + kv[2]*kv[2]
			var sum complex128
			for d := 0; d < 3; d++ {
				sum += complex(kv[d]/k2, 0) * fg[d][idx]
			}
			out[idx] = complex(grid.Sign(i, j, k), 0) * (complex(0, -1)*sum + vl[idx]) * gk[idx]
		}
	})
	s.dgk.SetOrigin(grid.Center)
	if err := s.tr.Backward(s.out, s.dgk); err != nil {
		return err
	}
	dst.AXPY(s.pd.Rho*s.pd.Beta, s.out)
	return nil
}

//update computes the new dg for the pair t into s.nw
func (s *solver) update(t task) error {
	reg := s.o.reg
	a, b := t.a, t.b
	ff := s.ff[a][b]
	s.nw.Zeros()
	for c := 0; c < s.m; c++ {
		if err := s.inter(s.nw, s.ff[b][c], s.gp.At(b, c), s.gp.At(a, c)); err != nil {
			return err
		}
	}
	s.nw.Scale(ff.DampLJ)
	s.nw.Mul(ff.C)
	for bp := 0; bp < s.m; bp++ {
		r := s.bonds[b][bp]
		if bp == b || r <= 0 {
			continue
		}
		if err := regularize.NormalizationIntra(s.tr, s.tmp, s.gp.At(a, b), r, reg.Floor, s.ktmp); err != nil {
			return err
		}
		regularize.SafeDivide(s.tmp, s.gp.At(a, bp), s.tmp, reg.NormReg2)
		if err := regularize.IntraLn(s.tr, s.tmp2, s.tmp, r, reg.Floor, s.ktmp); err != nil {
			return err
		}
		s.nw.AXPY(1, s.tmp2)
	}
	s.nw.AXPY(s.pd.Beta, ff.ULong)
	regularize.Zeropad(s.nw, s.pd.Zpad, 0)
	return nil
}

//computeG sets g = exp(-g0-dg) for every pair.
func (s *solver) computeG() {
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			regularize.ExpG(s.gp.At(i, j), s.g0.At(i, j), s.dg.At(i, j))
		}
	}
}

//level sets up the force fields for the damping damp.
func (s *solver) level(damp float64) error {
	lj, coul := strengths(damp)
	for i := 0; i < s.m; i++ {
		for j := i; j < s.m; j++ {
			ff, err := potential.NewForceField(s.tr, s.pd.Beta, s.sites[i], s.sites[j], coul, lj)
			if err != nil {
				return err
			}
			s.ff[i][j], s.ff[j][i] = ff, ff
			s.g0.At(i, j).Copy(ff.G0)
			regularize.Zeropad(s.g0.At(i, j), s.pd.Zpad, 0)
		}
	}
	return nil
}

//Solve solves the BGY3D equations for the pure solvent mol, for the damping
//levels from pd.Damp to 1. Not converging is not an error, it is
//reported in the levels of the result.
func Solve(ctx context.Context, pd *rism.ProblemData, mol *rism.Molecule, options ...*Options) (*Result, error) {
	o := DefaultOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	log := o.Logger()
	if err := pd.Validate(); err != nil {
		return nil, rism.Decorate(err, "bgy.Solve")
	}
	if err := mol.Validate(); err != nil {
		return nil, rism.Decorate(err, "bgy.Solve")
	}
	if err := o.mixing.Validate(); err != nil {
		return nil, err
	}
	if err := o.reg.Validate(); err != nil {
		return nil, rism.Decorate(err, "bgy.Solve")
	}
	bonds, err := mol.Bonds()
	if err != nil {
		return nil, rism.Decorate(err, "bgy.Solve")
	}
	g := grid.FromProblem(pd, o.Cpus())
	m := mol.Len()
	s := &solver{pd: pd, o: o, g: g, tr: fft.New(o.FFT(), g), m: m, bonds: bonds, sites: mol.Sites}
	s.ff = make([][]*potential.ForceField, m)
	for i := range s.ff {
		s.ff[i] = make([]*potential.ForceField, m)
	}
	s.gp = grid.NewPairs(g, m)
	s.g0 = grid.NewPairs(g, m)
	s.dg = grid.NewPairs(g, m)
	for d := range s.fg {
		s.fg[d] = grid.NewKField(g)
	}
	s.gk, s.dgk, s.ktmp = grid.NewKField(g), grid.NewKField(g), grid.NewKField(g)
	s.v, s.out, s.nw, s.tmp, s.tmp2 = grid.NewField(g), grid.NewField(g), grid.NewField(g), grid.NewField(g), grid.NewField(g)
	tasks := Tasks(m)
	st := newStepper(o.mixing, pd.Lambda, len(tasks))
	norms := make([]float64, len(tasks))
	ret := &Result{G: s.gp, DG: s.dg}
	log.Info("bgy", "molecule", mol.Name, "sites", m, "problem", pd)
	for _, damp := range DampLevels(pd.Damp) {
		if err := s.level(damp); err != nil {
			return nil, rism.Decorate(err, "bgy.Solve")
		}
		s.computeG()
		st.reset()
		lv := Level{Damp: damp}
		for iter := 0; iter < pd.MaxIter; iter++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			a := st.step(iter)
			for n, t := range tasks {
				if err := s.update(t); err != nil {
					return nil, rism.Decorate(err, fmt.Sprintf("bgy.Solve: pair %d,%d", t.a, t.b))
				}
				dg := s.dg.At(t.a, t.b)
				//s.tmp keeps the previous dg to get the norm.
				s.tmp.Copy(dg)
				dg.Scale(1 - a)
				dg.AXPY(a, s.nw)
				s.tmp.Sub(s.tmp, dg)
				norms[n] = s.tmp.InfNorm() / a
			}
			s.computeG()
			state := st.update(iter, norms, pd.NormTol)
			lv.Iterations = iter + 1
			lv.Norm = maxOf(norms)
			lv.Step = st.a1
			log.Debug("bgy iteration", "damp", damp, "iter", iter, "a", a, "norms", norms, "state", state.String())
			if state == Converged {
				lv.Converged = true
				break
			}
		}
		ret.Levels = append(ret.Levels, lv)
		if lv.Converged {
			log.Info("bgy level done", "level", lv)
		} else {
			log.Warn("bgy level did not converge", "level", lv)
		}
	}
	return ret, nil
}

func maxOf(s []float64) float64 {
	ret := math.Inf(-1)
	for _, v := range s {
		ret = math.Max(ret, v)
	}
	return ret
}
