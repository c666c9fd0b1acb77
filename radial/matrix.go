/*
 * matrix.go, part of gorism.
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

package radial

import (
	"encoding/json"
	"fmt"
	"strings"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
	"gonum.org/v1/gonum/floats"
)

//Matrix is a symmetric matrix of profiles, one for each pair of sites of a
//solvent. Element i,j and j,i are the same profile.
type Matrix struct {
	m        int
	d        []*Profile
	dividers []float64
}

//Pairs returns the profiles of all the pairs in p, around the center of the box.
//names are the site names, used to name the profiles.
func Pairs(p *grid.Pairs, names []string, dr, rmax float64) *Matrix {
	m := p.M()
	if len(names) != m {
		panic(rism.ErrShape)
	}
	ret := &Matrix{m: m, d: make([]*Profile, grid.PairCount(m)), dividers: Dividers(dr, rmax)}
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			ret.d[grid.PairIndex(i, j, m)] = FromField(names[i]+"-"+names[j], p.At(i, j), [3]float64{}, dr, rmax)
		}
	}
	return ret
}

//Sites returns the profiles of the fields around the point center.
//It is meant for solute-solvent functions.
func Sites(f []*grid.Field, names []string, center [3]float64, dr, rmax float64) []*Profile {
	if len(names) != len(f) {
		panic(rism.ErrShape)
	}
	ret := make([]*Profile, len(f))
	for i, v := range f {
		ret[i] = FromField(names[i], v, center, dr, rmax)
	}
	return ret
}

func (M *Matrix) Dims() (int, int) {
	return M.m, M.m
}

//View returns the profile for the pair i,j
func (M *Matrix) View(i, j int) *Profile {
	if err := M.Check(i, j); err != nil {
		panic(err.Error())
	}
	return M.d[grid.PairIndex(i, j, M.m)]
}

//Unique returns the m(m+1)/2 different profiles.
func (M *Matrix) Unique() []*Profile {
	return M.d
}

//Check returns an error if i or j are out of range.
func (M *Matrix) Check(i, j int) error {
	if i < 0 || j < 0 || i >= M.m || j >= M.m {
		return fmt.Errorf("gorism/radial: pair %d,%d out of range for %d sites", i, j, M.m)
	}
	return nil
}

func (M *Matrix) String() string {
	t := make([]string, 0, len(M.d))
	for _, v := range M.d {
		t = append(t, v.String())
	}
	return fmt.Sprintf("sites: %d | Profiles:\n", M.m) + strings.Join(t, "\n\n")
}

type jsonMatrix struct {
	Sites    int        `json:"sites"`
	D        []*Profile `json:"profiles"`
	Dividers []float64  `json:"dividers"`
}

func (M *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMatrix{Sites: M.m, D: M.d, Dividers: M.dividers})
}

func (M *Matrix) UnmarshalJSON(b []byte) error {
	var a jsonMatrix
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.D) != grid.PairCount(a.Sites) {
		return fmt.Errorf("gorism/radial: %d profiles for %d sites", len(a.D), a.Sites)
	}
	for _, v := range a.D {
		if !floats.Equal(v.dividers, a.Dividers) {
			return fmt.Errorf("gorism/radial: profile %s doesn't have the dividers of the matrix", v.name)
		}
	}
	M.m, M.d, M.dividers = a.Sites, a.D, a.Dividers
	return nil
}
