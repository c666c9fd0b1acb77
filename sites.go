/*
 * sites.go, part of gorism.
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

package rism

import (
	"fmt"
	"math"
	"strings"
)

//Site is an interaction site. For solvents only the distances between
//sites matter, for solutes X is the actual position in the box.
type Site struct {
	Name    string     `toml:"name" json:"name"`
	X       [3]float64 `toml:"x" json:"x"`
	Sigma   float64    `toml:"sigma" json:"sigma"`
	Epsilon float64    `toml:"epsilon" json:"epsilon"`
	Charge  float64    `toml:"charge" json:"charge"`
}

func (s Site) String() string {
	return fmt.Sprintf("%-4s (%7.3f %7.3f %7.3f) sigma %6.3f epsilon %8.5f charge %6.3f", s.Name, s.X[0], s.X[1], s.X[2], s.Sigma, s.Epsilon, s.Charge)
}

//Molecule is a rigid set of sites. If BondTable is not nil, it is used
//instead of the distances between site positions.
type Molecule struct {
	Name      string      `toml:"name" json:"name"`
	Sites     []Site      `toml:"site" json:"sites"`
	BondTable [][]float64 `toml:"bonds" json:"bonds,omitempty"`
}

//Len returns the number of sites in the molecule
func (M *Molecule) Len() int {
	return len(M.Sites)
}

//Charge returns the total charge of the molecule
func (M *Molecule) Charge() float64 {
	var q float64
	for _, s := range M.Sites {
		q += s.Charge
	}
	return q
}

//Bonds returns the symmetric matrix of intramolecular distances. The diagonal is
//always 0.
func (M *Molecule) Bonds() ([][]float64, error) {
	m := len(M.Sites)
	ret := make([][]float64, m)
	if M.BondTable != nil {
		if len(M.BondTable) != m {
			return nil, errorf(ErrBondShape, "Molecule.Bonds", "%d rows for %d sites", len(M.BondTable), m)
		}
		for i, row := range M.BondTable {
			if len(row) != m {
				return nil, errorf(ErrBondShape, "Molecule.Bonds", "row %d has %d elements for %d sites", i, len(row), m)
			}
		}
		for i := range ret {
			ret[i] = make([]float64, m)
			for j := range ret[i] {
				if i == j {
					continue
				}
				ret[i][j] = M.BondTable[i][j]
			}
		}
		return ret, nil
	}
	for i := range ret {
		ret[i] = make([]float64, m)
	}
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			d := Distance(M.Sites[i].X, M.Sites[j].X)
			ret[i][j] = d
			ret[j][i] = d
		}
	}
	return ret, nil
}

//Validate returns an error if the molecule can't be used in a calculation.
func (M *Molecule) Validate() error {
	if len(M.Sites) == 0 {
		return errorf(ErrMolecule, "Molecule.Validate", "%q has no sites", M.Name)
	}
	names := make(map[string]bool, len(M.Sites))
	for _, s := range M.Sites {
		if s.Sigma < 0 || s.Epsilon < 0 {
			return errorf(ErrMolecule, "Molecule.Validate", "site %q has negative sigma or epsilon", s.Name)
		}
		if names[s.Name] {
			return errorf(ErrMolecule, "Molecule.Validate", "repeated site name %q", s.Name)
		}
		names[s.Name] = true
	}
	b, err := M.Bonds()
	if err != nil {
		return Decorate(err, "Molecule.Validate")
	}
	for i := range b {
		for j := range b[i] {
			if b[i][j] < 0 || math.IsNaN(b[i][j]) || b[i][j] != b[j][i] {
				return errorf(ErrBondShape, "Molecule.Validate", "bad bond length between %d and %d", i, j)
			}
		}
	}
	return nil
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	ret := &Molecule{Name: M.Name, Sites: append([]Site(nil), M.Sites...)}
	if M.BondTable != nil {
		ret.BondTable = make([][]float64, len(M.BondTable))
		for i, v := range M.BondTable {
			ret.BondTable[i] = append([]float64(nil), v...)
		}
	}
	return ret
}

func (M *Molecule) String() string {
	t := make([]string, 0, len(M.Sites)+1)
	t = append(t, fmt.Sprintf("%s: %d sites", M.Name, len(M.Sites)))
	for _, v := range M.Sites {
		t = append(t, "  "+v.String())
	}
	return strings.Join(t, "\n")
}

//Distance returns the euclidean distance between a and b.
func Distance(a, b [3]float64) float64 {
	var d float64
	for i := range a {
		d += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(d)
}

//BuiltIn returns a copy of one of the built in molecules: hcl (the default 2-site solvent),
//lj (one Lennard-Jones site) and water (a 3-site TIP3P-like model). The second value is false
//if there is no molecule with that name.
func BuiltIn(name string) (*Molecule, bool) {
	m, ok := builtin[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return m.Copy(), true
}

//BuiltInNames returns the names of the built in molecules
func BuiltInNames() []string {
	return []string{"hcl", "lj", "water"}
}

var builtin = map[string]*Molecule{
	"hcl": &Molecule{
		Name: "hcl",
		Sites: []Site{
			{Name: "h", X: [3]float64{0.6373, 0, 0}, Sigma: 2.735, Epsilon: 0.03971, Charge: 0.2},
			{Name: "o", X: [3]float64{-0.6373, 0, 0}, Sigma: 3.353, Epsilon: 0.51434, Charge: -0.2},
		},
	},
	"lj": &Molecule{
		Name:  "lj",
		Sites: []Site{{Name: "lj", Sigma: 1, Epsilon: 1}},
	},
	"water": &Molecule{
		Name: "water",
		Sites: []Site{
			{Name: "o", X: [3]float64{0, 0, 0}, Sigma: 3.1506, Epsilon: 0.1521, Charge: -0.834},
			{Name: "h1", X: [3]float64{0.9572, 0, 0}, Sigma: 0.4, Epsilon: 0.046, Charge: 0.417},
			{Name: "h2", X: [3]float64{-0.23930, 0.92664, 0}, Sigma: 0.4, Epsilon: 0.046, Charge: 0.417},
		},
	},
}
