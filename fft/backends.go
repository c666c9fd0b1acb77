/*
 * backends.go, part of gorism.
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
	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

type gonumPlan struct {
	f *fourier.CmplxFFT
}

func newGonumPlan(n int) lineFFT {
	return &gonumPlan{f: fourier.NewCmplxFFT(n)}
}

func (p *gonumPlan) forward(x []complex128) {
	p.f.Coefficients(x, x)
}

func (p *gonumPlan) backward(x []complex128) {
	p.f.Sequence(x, x)
}

//go-dsp has no plans, and its inverse is normalized.
type dspPlan struct {
	n float64
}

func init() {
	//lines are already distributed among goroutines.
	dspfft.SetWorkerPoolSize(1)
}

func newDSPPlan(n int) lineFFT {
	return &dspPlan{n: float64(n)}
}

func (p *dspPlan) forward(x []complex128) {
	copy(x, dspfft.FFT(x))
}

func (p *dspPlan) backward(x []complex128) {
	r := dspfft.IFFT(x)
	s := complex(p.n, 0)
	for i, v := range r {
		x[i] = v * s
	}
}
