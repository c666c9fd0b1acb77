/*
 * molecule.go, part of gorism.
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

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	rism "github.com/rmera/gorism"
)

//tomlSite mirrors rism.Site with slices, which is what TOML arrays decode to.
type tomlSite struct {
	Name    string    `toml:"name"`
	X       []float64 `toml:"x"`
	Sigma   float64   `toml:"sigma"`
	Epsilon float64   `toml:"epsilon"`
	Charge  float64   `toml:"charge"`
}

type tomlMolecule struct {
	Name  string      `toml:"name"`
	Sites []tomlSite  `toml:"site"`
	Bonds [][]float64 `toml:"bonds"`
}

//ReadMolecule decodes a TOML molecule table from r. The table looks like:
//
//	name = "hcl"
//	[[site]]
//	name = "h"
//	x = [0.6373, 0.0, 0.0]
//	sigma = 2.735
//	epsilon = 0.03971
//	charge = 0.2
//
//An optional bonds key gives the intramolecular distances as an array of rows.
func ReadMolecule(r io.Reader) (*rism.Molecule, error) {
	var t tomlMolecule
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	mol := &rism.Molecule{Name: t.Name, Sites: make([]rism.Site, 0, len(t.Sites)), BondTable: t.Bonds}
	for i, s := range t.Sites {
		if len(s.X) != 0 && len(s.X) != 3 {
			return nil, rism.Errorf(rism.ErrMolecule, "config.ReadMolecule", "site %d (%s) has %d coordinates", i, s.Name, len(s.X))
		}
		site := rism.Site{Name: s.Name, Sigma: s.Sigma, Epsilon: s.Epsilon, Charge: s.Charge}
		copy(site.X[:], s.X)
		mol.Sites = append(mol.Sites, site)
	}
	if err := mol.Validate(); err != nil {
		return nil, err
	}
	return mol, nil
}

//Molecule returns the built in molecule called name, or, if there is none,
//the molecule in the TOML file name.
func Molecule(name string) (*rism.Molecule, error) {
	if m, ok := rism.BuiltIn(name); ok {
		return m, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%q is not a built in molecule (%v) and can't be read: %w", name, rism.BuiltInNames(), err)
	}
	defer f.Close()
	m, err := ReadMolecule(f)
	if err != nil {
		return nil, fmt.Errorf("reading molecule %s: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}
