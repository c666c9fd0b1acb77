/*
 * fft.go, part of gorism.
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

package fft

import (
	"fmt"
	"strings"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
)

//Transform computes 3D discrete Fourier transforms of fields on one grid.
//Forward results are multiplied by the cell volume h³, Backward ones by 1/L³,
//so Backward(Forward(f)) == f. The Raw versions do not scale.
//Origins are carried over from the source field.
type Transform interface {
	Forward(dst *grid.KField, src *grid.Field) error
	Backward(dst *grid.Field, src *grid.KField) error
	ForwardRaw(dst, src *grid.KField) error
	BackwardRaw(dst, src *grid.KField) error
	Grid() *grid.Grid
}

//Kind selects an FFT backend
type Kind int

const (
	Gonum Kind = iota //gonum.org/v1/gonum/dsp/fourier
	DSP               //github.com/mjibson/go-dsp/fft
)

func (k Kind) String() string {
	if k == DSP {
		return "dsp"
	}
	return "gonum"
}

//ParseKind parses a backend name, "gonum" or "dsp".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gonum":
		return Gonum, nil
	case "dsp", "go-dsp":
		return DSP, nil
	}
	return Gonum, rism.NewError(fmt.Sprintf("unknown FFT backend %q", s), "fft.ParseKind", true)
}

//New returns a Transform for g using the backend kind.
func New(kind Kind, g *grid.Grid) Transform {
	var p planner
	switch kind {
	case DSP:
		p = newDSPPlan
	default:
		p = newGonumPlan
	}
	return &transform3D{g: g, plan: p}
}

//lineFFT transforms one line of data in place. Each goroutine
//gets its own.
type lineFFT interface {
	forward(x []complex128)
	backward(x []complex128)
}

//planner returns a line transform for lines of length n.
type planner func(n int) lineFFT

type transform3D struct {
	g    *grid.Grid
	plan planner
}

func (t *transform3D) Grid() *grid.Grid { return t.g }

func (t *transform3D) check(g *grid.Grid) error {
	if !t.g.Same(g) {
		return rism.NewError(fmt.Sprintf("field on grid %v does not match transform grid %v", g.N, t.g.N), "fft.Transform", true)
	}
	return nil
}

func (t *transform3D) Forward(dst *grid.KField, src *grid.Field) error {
	if err := t.check(src.Grid()); err != nil {
		return err
	}
	if err := t.check(dst.Grid()); err != nil {
		return err
	}
	d := dst.Raw()
	for i, v := range src.Raw() {
		d[i] = complex(v, 0)
	}
	t.run(d, false)
	dst.ScaleReal(t.g.CellVolume())
	dst.SetOrigin(src.Origin())
	return nil
}

func (t *transform3D) Backward(dst *grid.Field, src *grid.KField) error {
	if err := t.check(src.Grid()); err != nil {
		return err
	}
	if err := t.check(dst.Grid()); err != nil {
		return err
	}
	tmp := make([]complex128, src.Len())
	copy(tmp, src.Raw())
	t.run(tmp, true)
	s := 1 / t.g.Volume()
	d := dst.Raw()
	for i, v := range tmp {
		d[i] = real(v) * s
	}
	dst.SetOrigin(src.Origin())
	return nil
}

func (t *transform3D) ForwardRaw(dst, src *grid.KField) error {
	if err := t.check(src.Grid()); err != nil {
		return err
	}
	dst.Copy(src)
	t.run(dst.Raw(), false)
	return nil
}

func (t *transform3D) BackwardRaw(dst, src *grid.KField) error {
	if err := t.check(src.Grid()); err != nil {
		return err
	}
	dst.Copy(src)
	t.run(dst.Raw(), true)
	return nil
}

//run transforms d in place, one axis after the other.
func (t *transform3D) run(d []complex128, back bool) {
	n := t.g.N
	strides := [3]int{1, n[0], n[0] * n[1]}
	for axis := 0; axis < 3; axis++ {
		length := n[axis]
		if length == 1 {
			continue
		}
		stride := strides[axis]
		lines := len(d) / length
		t.g.Parallel(lines, func(lo, hi int) {
			p := t.plan(length)
			buf := make([]complex128, length)
			for l := lo; l < hi; l++ {
				base := lineStart(l, axis, n)
				for i := range buf {
					buf[i] = d[base+i*stride]
				}
				if back {
					p.backward(buf)
				} else {
					p.forward(buf)
				}
				for i, v := range buf {
					d[base+i*stride] = v
				}
			}
		})
	}
}

//lineStart returns the linear index of the first element of line l
//along axis.
func lineStart(l, axis int, n [3]int) int {
	switch axis {
	case 0:
		return l * n[0]
	case 1:
		i := l % n[0]
		k := l / n[0]
		return k*n[0]*n[1] + i
	default:
		return l
	}
}
