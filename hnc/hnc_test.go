/*
 * hnc_test.go, part of gorism.
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
	"io"
	"log/slog"
	"math"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/potential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *Options {
	o := DefaultOptions()
	o.Logger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	o.Cpus(2)
	return o
}

func smallProblem(rho, beta float64) *rism.ProblemData {
	pd := rism.DefaultProblem()
	pd.N = [3]int{16, 16, 16}
	pd.L = [3]float64{10, 10, 10}
	pd.Beta = beta
	pd.Rho = rho
	pd.NormTol = 1e-6
	pd.MaxIter = 5
	pd.Lambda = 0.5
	return pd
}

func lj() *rism.Molecule {
	m, _ := rism.BuiltIn("lj")
	return m
}

//Nearly ideal gas: the indirect correlation vanishes.
func TestIdealGas(Te *testing.T) {
	pd := smallProblem(1e-10, 1)
	r, err := SolventSolve(context.Background(), pd, lj(), quiet())
	require.NoError(Te, err)
	assert.True(Te, r.Converged)
	assert.LessOrEqual(Te, r.Iterations, 5)
	for _, v := range r.T.At(0, 0).Raw() {
		require.InDelta(Te, 0, v, 1e-6)
	}
	//g is the Boltzmann factor
	assert.InDelta(Te, 0, r.G.At(0, 0).At(8, 8, 8), 1e-12)
	assert.InDelta(Te, 1, r.G.At(0, 0).At(0, 8, 8), 1e-3)
}

func TestHNCPositive(Te *testing.T) {
	pd := smallProblem(0.2, 1/1.5)
	pd.MaxIter = 20
	r, err := SolventSolve(context.Background(), pd, lj(), quiet())
	require.NoError(Te, err)
	for _, v := range r.G.At(0, 0).Raw() {
		require.GreaterOrEqual(Te, v, 0.0)
	}
	for _, v := range r.H.At(0, 0).Raw() {
		require.GreaterOrEqual(Te, v, -1.0)
	}
	assert.False(Te, math.IsNaN(r.Mu.Mu))
}

//Two identical sites give identical site-site functions.
func TestSymmetricSites(Te *testing.T) {
	mol := &rism.Molecule{Name: "dimer", Sites: []rism.Site{
		{Name: "a", Sigma: 1, Epsilon: 0.5},
		{Name: "b", X: [3]float64{1, 0, 0}, Sigma: 1, Epsilon: 0.5},
	}}
	pd := smallProblem(0.01, 1)
	pd.MaxIter = 30
	r, err := SolventSolve(context.Background(), pd, mol, quiet())
	require.NoError(Te, err)
	for i, v := range r.G.At(0, 0).Raw() {
		require.InDelta(Te, v, r.G.At(1, 1).Raw()[i], 1e-9)
	}
	assert.Same(Te, r.G.At(0, 1), r.G.At(1, 0))
	assert.Equal(Te, 2, r.Chi.M())
}

func TestNewtonPicard(Te *testing.T) {
	pd := smallProblem(0.1, 0.5)
	pd.MaxIter = 300
	pd.NormTol = 1e-9
	op := quiet()
	rp, err := SolventSolve(context.Background(), pd, lj(), op)
	require.NoError(Te, err)
	require.True(Te, rp.Converged)
	on := quiet()
	on.Solver(Newton)
	rn, err := SolventSolve(context.Background(), pd, lj(), on)
	require.NoError(Te, err)
	require.True(Te, rn.Converged)
	assert.Less(Te, rn.Iterations, rp.Iterations)
	for i, v := range rp.T.At(0, 0).Raw() {
		require.InDelta(Te, v, rn.T.At(0, 0).Raw()[i], 1e-6)
	}
	//the solute code has its own Jacobian
	sol := lj()
	sol.Name = "solute"
	sp, err := SoluteSolve(context.Background(), pd, lj(), sol, rp.Chi, nil, op)
	require.NoError(Te, err)
	require.True(Te, sp.Converged)
	sn, err := SoluteSolve(context.Background(), pd, lj(), sol, rp.Chi, nil, on)
	require.NoError(Te, err)
	require.True(Te, sn.Converged)
	for i, v := range sp.T[0].Raw() {
		require.InDelta(Te, v, sn.T[0].Raw()[i], 1e-6)
	}
}

func TestSoluteRestart(Te *testing.T) {
	pd := smallProblem(1e-10, 1)
	sol := lj()
	r, err := SoluteSolve(context.Background(), pd, lj(), sol, nil, nil, quiet())
	require.NoError(Te, err)
	require.True(Te, r.Converged)
	assert.InDelta(Te, 0, r.G[0].At(8, 8, 8), 1e-12)
	assert.False(Te, math.IsNaN(r.Energy))
	require.NotNil(Te, r.Restart)
	r2, err := SoluteSolve(context.Background(), pd, lj(), sol, nil, r.Restart, quiet())
	require.NoError(Te, err)
	assert.True(Te, r2.Converged)
	assert.Equal(Te, 1, r2.Iterations)
	//a token for other solvent is ignored
	bad := *r.Restart
	bad.M = 3
	r3, err := SoluteSolve(context.Background(), pd, lj(), sol, nil, &bad, quiet())
	require.NoError(Te, err)
	assert.True(Te, r3.Converged)
}

func TestSoluteForces(Te *testing.T) {
	pd := smallProblem(0.1, 0.5)
	pd.MaxIter = 50
	solv, err := SolventSolve(context.Background(), pd, lj(), quiet())
	require.NoError(Te, err)
	ion := &rism.Molecule{Name: "ion", Sites: []rism.Site{{Name: "a", Sigma: 1.2, Epsilon: 0.8}}}
	r, err := SoluteSolve(context.Background(), pd, lj(), ion, solv.Chi, nil, quiet())
	require.NoError(Te, err)
	require.Len(Te, r.Forces, 1)
	//a centered site feels no net force
	for d := 0; d < 3; d++ {
		assert.InDelta(Te, 0, r.Forces[0][d], 1e-2, "component %d", d)
	}

	ion.Sites[0].X = [3]float64{0.7, 0, 0}
	r, err = SoluteSolve(context.Background(), pd, lj(), ion, solv.Chi, nil, quiet())
	require.NoError(Te, err)
	tr := fft.New(fft.Gonum, grid.FromProblem(pd))
	qh := grid.NewField(tr.Grid())
	energy := func(x float64) float64 {
		m := ion.Copy()
		m.Sites[0].X[0] = x
		fs, err := potential.SoluteField(tr, lj(), m, pd.Damp)
		require.NoError(Te, err)
		return interaction(pd.Rho, []float64{0}, r.H, fs, qh)
	}
	assert.InDelta(Te, r.Energy, energy(0.7), 1e-9*math.Max(1, math.Abs(r.Energy)))
	dx := 1e-2
	num := -(energy(0.7+dx) - energy(0.7-dx)) / (2 * dx)
	assert.InDelta(Te, num, r.Forces[0][0], 2e-2*math.Max(1, math.Abs(num)))
	assert.InDelta(Te, 0, r.Forces[0][1], 1e-2)
	assert.InDelta(Te, 0, r.Forces[0][2], 1e-2)
}

func TestBadInput(Te *testing.T) {
	pd := smallProblem(0.01, 1)
	pd.N[0] = 15
	_, err := SolventSolve(context.Background(), pd, lj(), quiet())
	assert.Error(Te, err)
	pd = smallProblem(0.01, 1)
	r, err := SolventSolve(context.Background(), pd, lj(), quiet())
	require.NoError(Te, err)
	water, _ := rism.BuiltIn("water")
	_, err = SoluteSolve(context.Background(), pd, water, lj(), r.Chi, nil, quiet())
	assert.Error(Te, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SolventSolve(ctx, pd, lj(), quiet())
	assert.Error(Te, err)
	_, err = ParseSolver("bisection")
	assert.Error(Te, err)
}
