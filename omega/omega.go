/*
 * omega.go, part of gorism.
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

//Package omega deals with the intramolecular correlation of rigid molecules. In k-space,
//the correlation of two sites at a fixed distance r is sin(kr)/kr.
package omega

import (
	"math"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
)

//Sinc returns sin(x)/x, and 1 for x=0
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

func knorm(kv [3]float64) float64 {
	return math.Sqrt(kv[0]*kv[0] + kv[1]*kv[1] + kv[2]*kv[2])
}

//Kernel fills dst with sinc(|k|r). The kernel is centered at the corner.
func Kernel(dst *grid.KField, r float64) {
	dst.Grid().KMap(dst, func(ic [3]int, kv [3]float64) complex128 {
		return complex(Sinc(knorm(kv)*r), 0)
	})
	dst.SetOrigin(grid.Corner)
}

//Apply puts src(k)·sinc(|k|r) in dst, which can be src. For r=0 it
//is a copy. The origin of src is kept.
func Apply(dst, src *grid.KField, r float64) {
	if dst != src {
		dst.Copy(src)
	}
	if r == 0 {
		return
	}
	g := dst.Grid()
	d := dst.Raw()
	g.Parallel(len(d), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			_, kv := g.KVec(i, j, k)
			d[idx] *= complex(Sinc(knorm(kv)*r), 0)
		}
	})
}

//Convolve puts in dst the real-space convolution of src with the
//intramolecular correlation at distance r. tmp is used as scratch and can be nil.
func Convolve(tr fft.Transform, dst, src *grid.Field, r float64, tmp *grid.KField) error {
	if tmp == nil {
		tmp = grid.NewKField(tr.Grid())
	}
	if err := tr.Forward(tmp, src); err != nil {
		return rism.Decorate(err, "omega.Convolve")
	}
	Apply(tmp, tmp, r)
	if err := tr.Backward(dst, tmp); err != nil {
		return rism.Decorate(err, "omega.Convolve")
	}
	return nil
}

//Matrix returns the intramolecular correlation of every pair of different sites
//of the molecule. The diagonal is nil.
func Matrix(g *grid.Grid, mol *rism.Molecule) (*grid.KPairs, error) {
	b, err := mol.Bonds()
	if err != nil {
		return nil, rism.Decorate(err, "omega.Matrix")
	}
	m := mol.Len()
	ret := grid.NewKPairsNoDiagonal(g, m)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			Kernel(ret.At(i, j), b[i][j])
		}
	}
	return ret, nil
}
