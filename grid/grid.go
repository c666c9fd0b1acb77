/*
 * grid.go, part of gorism.
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

package grid

import (
	"math"
	"runtime"
	"sync"

	rism "github.com/rmera/gorism"
)

//Origin is the convention for the position of r=0 in a field.
//Physical quantities are centered, convolution kernels live at the corner.
type Origin int

const (
	Center Origin = iota
	Corner
)

func (o Origin) String() string {
	if o == Corner {
		return "corner"
	}
	return "center"
}

//Below this many points, maps run in the calling goroutine.
const serialLimit = 4096

//Grid is a periodic, orthorhombic 3D grid. The x index runs fastest.
//The point (i,j,k) is at i*h-L/2, j*h-L/2, k*h-L/2.
type Grid struct {
	N    [3]int
	L    [3]float64
	H    [3]float64
	cpus int
}

//New returns a grid with n points and full box edges l. The optional cpus
//sets the number of goroutines used by maps over the grid.
func New(n [3]int, l [3]float64, cpus ...int) *Grid {
	g := &Grid{N: n, L: l, cpus: runtime.NumCPU()}
	for i := range n {
		if n[i] <= 0 {
			panic(rism.ErrShape)
		}
		g.H[i] = l[i] / float64(n[i])
	}
	g.Cpus(cpus...)
	return g
}

//FromProblem returns the grid for the problem pd.
func FromProblem(pd *rism.ProblemData, cpus ...int) *Grid {
	return New(pd.N, pd.L, cpus...)
}

//Cpus returns the number of goroutines used by the grid. If an argument
//larger than 0 is given, it is set as the new value.
func (g *Grid) Cpus(cpus ...int) int {
	if len(cpus) > 0 && cpus[0] > 0 {
		g.cpus = cpus[0]
	}
	return g.cpus
}

//Len returns the total number of points
func (g *Grid) Len() int {
	return g.N[0] * g.N[1] * g.N[2]
}

//Same returns true if o has the same shape and size as g.
func (g *Grid) Same(o *Grid) bool {
	if g == o {
		return true
	}
	return g.N == o.N && g.L == o.L
}

//Index returns the linear index of point i,j,k
func (g *Grid) Index(i, j, k int) int {
	return (k*g.N[1]+j)*g.N[0] + i
}

//Indexes returns the 3 indexes of the point with linear index idx.
func (g *Grid) Indexes(idx int) (int, int, int) {
	i := idx % g.N[0]
	idx /= g.N[0]
	return i, idx % g.N[1], idx / g.N[1]
}

//X returns the coordinates of point i,j,k.
func (g *Grid) X(i, j, k int) [3]float64 {
	return [3]float64{
		float64(i)*g.H[0] - g.L[0]/2,
		float64(j)*g.H[1] - g.L[1]/2,
		float64(k)*g.H[2] - g.L[2]/2,
	}
}

//Volume returns the box volume, L³
func (g *Grid) Volume() float64 {
	return g.L[0] * g.L[1] * g.L[2]
}

//CellVolume returns h³
func (g *Grid) CellVolume() float64 {
	return g.H[0] * g.H[1] * g.H[2]
}

//KFreq returns the signed frequency of index i in a transform of length n.
func KFreq(i, n int) int {
	if i <= n/2 {
		return i
	}
	return i - n
}

//Sign returns (-1)^(i+j+k).
func Sign(i, j, k int) float64 {
	if (i+j+k)%2 == 0 {
		return 1
	}
	return -1
}

//KVec returns the integer frequencies of the mode i,j,k and the
//wave vector 2π·ic/L.
func (g *Grid) KVec(i, j, k int) ([3]int, [3]float64) {
	ic := [3]int{KFreq(i, g.N[0]), KFreq(j, g.N[1]), KFreq(k, g.N[2])}
	var kv [3]float64
	for d := range ic {
		kv[d] = 2 * math.Pi * float64(ic[d]) / g.L[d]
	}
	return ic, kv
}

//Parallel splits the range [0,n) in chunks and calls f on each chunk
//from its own goroutine. It returns when all calls have returned.
func (g *Grid) Parallel(n int, f func(lo, hi int)) {
	cpus := g.cpus
	if n < serialLimit || cpus < 2 {
		f(0, n)
		return
	}
	if cpus > n {
		cpus = n
	}
	chunk := (n + cpus - 1) / cpus
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

//RMap sets every point of f to fn(x), where x are the coordinates of the point.
func (g *Grid) RMap(f *Field, fn func(x [3]float64) float64) {
	g.check(f.g)
	g.Parallel(g.Len(), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			f.d[idx] = fn(g.X(i, j, k))
		}
	})
}

//KMap sets every mode of f to fn(ic, k), where ic are the integer frequencies
//of the mode and k the wave vector.
func (g *Grid) KMap(f *KField, fn func(ic [3]int, k [3]float64) complex128) {
	g.check(f.g)
	g.Parallel(g.Len(), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			i, j, k := g.Indexes(idx)
			ic, kv := g.KVec(i, j, k)
			f.d[idx] = fn(ic, kv)
		}
	})
}

func (g *Grid) check(o *Grid) {
	if !g.Same(o) {
		panic(rism.ErrGridMix)
	}
}
