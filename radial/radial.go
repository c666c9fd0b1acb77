/*
 * radial.go, part of gorism.
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

//Package radial reduces 3D fields to radial profiles, by averaging them
//over spherical shells around a point.
package radial

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Profile is a histogram of a field over spherical shells. For each shell it keeps
//the sum of the values and the number of points.
type Profile struct {
	name     string
	dividers []float64
	sums     []float64
	counts   []float64
}

//Dividers returns the shell limits 0, dr, 2dr, ... up to rmax, inclusive if
//rmax is a multiple of dr.
func Dividers(dr, rmax float64) []float64 {
	if dr <= 0 || rmax < dr {
		panic(rism.ErrShape)
	}
	n := int(math.Floor(rmax/dr+1e-9)) + 1
	return floats.Span(make([]float64, n), 0, dr*float64(n-1))
}

//NewProfile returns an empty profile with the given shell limits, which are copied.
func NewProfile(name string, dividers []float64) *Profile {
	if len(dividers) < 2 {
		panic(rism.ErrShape)
	}
	p := &Profile{name: name, dividers: make([]float64, len(dividers))}
	copy(p.dividers, dividers)
	p.sums = make([]float64, len(dividers)-1)
	p.counts = make([]float64, len(dividers)-1)
	return p
}

//Name returns the name of the profile
func (P *Profile) Name() string { return P.name }

//Len returns the number of shells
func (P *Profile) Len() int { return len(P.sums) }

//AddPoints adds the values v found at distances r. r and v are not modified.
//Points beyond the last divider are ignored.
func (P *Profile) AddPoints(r, v []float64) {
	if len(r) != len(v) {
		panic(rism.ErrShape)
	}
	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return r[idx[a]] < r[idx[b]] })
	lo, hi := P.dividers[0], P.dividers[len(P.dividers)-1]
	rs := make([]float64, 0, len(r))
	vs := make([]float64, 0, len(r))
	for _, i := range idx {
		//stat.Histogram panics on values out of range.
		if r[i] < lo || r[i] >= hi {
			continue
		}
		rs = append(rs, r[i])
		vs = append(vs, v[i])
	}
	floats.Add(P.sums, stat.Histogram(nil, P.dividers, rs, vs))
	floats.Add(P.counts, stat.Histogram(nil, P.dividers, rs, nil))
}

//R returns the middle point of each shell
func (P *Profile) R() []float64 {
	ret := make([]float64, P.Len())
	for i := range ret {
		ret[i] = 0.5 * (P.dividers[i] + P.dividers[i+1])
	}
	return ret
}

//Average returns the average of the values in each shell. Empty shells give NaN.
func (P *Profile) Average() []float64 {
	ret := make([]float64, P.Len())
	for i, c := range P.counts {
		if c == 0 {
			ret[i] = math.NaN()
			continue
		}
		ret[i] = P.sums[i] / c
	}
	return ret
}

//Counts returns a copy of the number of points in each shell.
func (P *Profile) Counts() []float64 {
	ret := make([]float64, P.Len())
	copy(ret, P.counts)
	return ret
}

//CopyDividers returns a copy of the shell limits.
func (P *Profile) CopyDividers() []float64 {
	ret := make([]float64, len(P.dividers))
	copy(ret, P.dividers)
	return ret
}

//String prints the profile in 3 lines: the shells, the averages and the counts.
func (P *Profile) String() string {
	avg := P.Average()
	d := make([]string, 0, P.Len())
	a := make([]string, 0, P.Len())
	c := make([]string, 0, P.Len())
	for i, v := range avg {
		d = append(d, fmt.Sprintf("%5.2f-%5.2f", P.dividers[i], P.dividers[i+1]))
		a = append(a, fmt.Sprintf("%11.4f", v))
		c = append(c, fmt.Sprintf("%11.0f", P.counts[i]))
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s", P.name, strings.Join(d, " "), strings.Join(a, " "), strings.Join(c, " "))
}

type jsonProfile struct {
	Name     string    `json:"name"`
	Dividers []float64 `json:"dividers"`
	Sums     []float64 `json:"sums"`
	Counts   []float64 `json:"counts"`
}

func (P *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProfile{Name: P.name, Dividers: P.dividers, Sums: P.sums, Counts: P.counts})
}

func (P *Profile) UnmarshalJSON(b []byte) error {
	var a jsonProfile
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Sums) != len(a.Dividers)-1 || len(a.Counts) != len(a.Sums) {
		return rism.NewError("malformed profile", "radial.Profile.UnmarshalJSON", true)
	}
	P.name, P.dividers, P.sums, P.counts = a.Name, a.Dividers, a.Sums, a.Counts
	return nil
}

//FromField returns the profile of f around the point center, with shells
//dr wide up to rmax.
func FromField(name string, f *grid.Field, center [3]float64, dr, rmax float64) *Profile {
	g := f.Grid()
	p := NewProfile(name, Dividers(dr, rmax))
	n := g.Len()
	r := make([]float64, n)
	for idx := 0; idx < n; idx++ {
		i, j, k := g.Indexes(idx)
		r[idx] = rism.Distance(g.X(i, j, k), center)
	}
	p.AddPoints(r, f.Raw())
	return p
}
