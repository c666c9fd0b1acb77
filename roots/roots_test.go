/*
 * roots_test.go, part of gorism.
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
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGMRES(Te *testing.T) {
	a := [][]float64{{4, 1}, {1, 3}}
	apply := func(v, av []float64) error {
		av[0] = a[0][0]*v[0] + a[0][1]*v[1]
		av[1] = a[1][0]*v[0] + a[1][1]*v[1]
		return nil
	}
	x := []float64{0, 0}
	_, res, err := GMRES(apply, []float64{1, 2}, x, 5, 10, 1e-12)
	require.NoError(Te, err)
	assert.True(Te, res <= 1e-12)
	assert.InDelta(Te, 1.0/11, x[0], 1e-10)
	assert.InDelta(Te, 7.0/11, x[1], 1e-10)
}

//residual of the componentwise equation x = 0.5cos(x) + c
func cosine(x, f []float64) error {
	for i := range x {
		f[i] = 0.5*math.Cos(x[i]) + 0.01*float64(i) - x[i]
	}
	return nil
}

func TestNewtonPicard(Te *testing.T) {
	n := 50
	s := DefaultSettings()
	s.Lambda = 0.8
	s.Tol = 1e-10
	xp := make([]float64, n)
	rp, err := Picard(context.Background(), cosine, xp, s)
	require.NoError(Te, err)
	assert.True(Te, rp.Converged)
	xn := make([]float64, n)
	rn, err := Newton(context.Background(), cosine, nil, xn, s)
	require.NoError(Te, err)
	assert.True(Te, rn.Converged)
	assert.Less(Te, rn.Iterations, rp.Iterations)
	for i := range xp {
		assert.InDelta(Te, xp[i], xn[i], 1e-8)
	}
	//analytic Jacobian gives the same answer
	jac := func(x, v, jv []float64) error {
		for i := range x {
			jv[i] = (-0.5*math.Sin(x[i]) - 1) * v[i]
		}
		return nil
	}
	xj := make([]float64, n)
	rj, err := Newton(context.Background(), cosine, jac, xj, s)
	require.NoError(Te, err)
	assert.True(Te, rj.Converged)
	assert.InDelta(Te, xn[7], xj[7], 1e-8)
}

func TestBudget(Te *testing.T) {
	s := DefaultSettings()
	s.MaxIter = 2
	s.Lambda = 0.01
	x := make([]float64, 4)
	r, err := Picard(context.Background(), cosine, x, s)
	require.NoError(Te, err)
	assert.False(Te, r.Converged)
	assert.Equal(Te, 2, r.Iterations)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Picard(ctx, cosine, x, s)
	assert.True(Te, errors.Is(err, context.Canceled))
}
