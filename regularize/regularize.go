/*
 * regularize.go, part of gorism.
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

//Package regularize contains the guarded divisions, logarithms and
//truncations that keep the iterations of the 3D solvers finite.
package regularize

import (
	"math"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/omega"
)

//Default values of the regularization thresholds. NormReg is the general
//threshold for SafeDivide callers. The BGY intra term divides with NormReg2
//and takes logarithms above Floor.
const (
	NormReg  = 1.0e-1
	NormReg2 = 1.0e-2
	Floor    = 1.0e-8
)

//Config carries the regularization thresholds. The zero value
//is not useful, use DefaultConfig.
type Config struct {
	NormReg  float64 `yaml:"norm_reg"`
	NormReg2 float64 `yaml:"norm_reg2"`
	Floor    float64 `yaml:"floor"`
}

//DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{NormReg: NormReg, NormReg2: NormReg2, Floor: Floor}
}

//Validate returns an error if any threshold is not positive.
func (c Config) Validate() error {
	if c.NormReg <= 0 || c.NormReg2 <= 0 || c.Floor <= 0 {
		return rism.NewError("regularization thresholds must be positive", "regularize.Config.Validate", true)
	}
	return nil
}

//SafeDivide puts x/max(y,thresh) in w. w can be x or y.
func SafeDivide(w, x, y *grid.Field, thresh float64) {
	w.Map2(x, y, func(a, b float64) float64 {
		return a / math.Max(b, thresh)
	})
}

//NormalizationIntra puts ω⊛g, with ω the intramolecular correlation at distance r,
//in dst, with every point clamped to at least floor.
func NormalizationIntra(tr fft.Transform, dst, g *grid.Field, r, floor float64, tmp *grid.KField) error {
	if err := omega.Convolve(tr, dst, g, r, tmp); err != nil {
		return rism.Decorate(err, "regularize.NormalizationIntra")
	}
	dst.Map(func(v float64) float64 {
		return math.Max(v, floor)
	})
	return nil
}

//IntraLn puts -ln(max(ω⊛g, floor)) in dst.
func IntraLn(tr fft.Transform, dst, g *grid.Field, r, floor float64, tmp *grid.KField) error {
	if err := omega.Convolve(tr, dst, g, r, tmp); err != nil {
		return rism.Decorate(err, "regularize.IntraLn")
	}
	dst.Map(func(v float64) float64 {
		return -math.Log(math.Max(v, floor))
	})
	return nil
}

//SolveNormalization puts g/max(ω⊛gc, thresh) in dst. dst can be g, but not gc.
func SolveNormalization(tr fft.Transform, dst, gc, g *grid.Field, r, thresh float64, tmp *grid.KField) error {
	if dst == gc {
		panic(rism.ErrShape)
	}
	conv := grid.NewField(gc.Grid())
	if err := omega.Convolve(tr, conv, gc, r, tmp); err != nil {
		return rism.Decorate(err, "regularize.SolveNormalization")
	}
	SafeDivide(dst, g, conv, thresh)
	return nil
}

//Border returns the number of points, on each side of each axis,
//that lie beyond the truncation radius zpad. It is negative when zpad
//is larger than half the box.
func Border(g *grid.Grid, zpad float64) [3]int {
	var ret [3]int
	for d := 0; d < 3; d++ {
		ret[d] = int(math.Ceil((g.L[d] - 2*zpad) / g.H[d] / 2))
	}
	return ret
}

//Zeropad sets to shift every point of f that lies in the border region
//given by zpad. With zpad >= L/2+h only the first layer of each axis
//is padded, and with zpad >= L/2+2h nothing is.
func Zeropad(f *grid.Field, zpad, shift float64) {
	g := f.Grid()
	border := Border(g, zpad)
	d := f.Raw()
	g.Parallel(len(d), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			ijk := [3]int{i, j, k}
			for a := 0; a < 3; a++ {
				if ijk[a] <= border[a]+1 || ijk[a] >= g.N[a]-1-border[a] {
					d[idx] = shift
					break
				}
			}
		}
	})
}

//ExpG puts exp(-g0-dg) in g.
func ExpG(g, g0, dg *grid.Field) {
	g.Map2(g0, dg, func(a, b float64) float64 {
		return math.Exp(-a - b)
	})
}
