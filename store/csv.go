/*
 * csv.go, part of gorism.
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

package store

import (
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rmera/gorism/radial"
)

//ProfileRow is one shell of a radial profile, as written to CSV tables.
type ProfileRow struct {
	Profile string  `csv:"profile"`
	R       float64 `csv:"r"`
	Average float64 `csv:"average"`
	Count   float64 `csv:"count"`
}

//Rows returns the rows for the non-empty shells of the profiles.
func Rows(profiles ...*radial.Profile) []*ProfileRow {
	ret := make([]*ProfileRow, 0, 64)
	for _, p := range profiles {
		r := p.R()
		av := p.Average()
		c := p.Counts()
		for i := range r {
			if c[i] == 0 || math.IsNaN(av[i]) {
				continue
			}
			ret = append(ret, &ProfileRow{Profile: p.Name(), R: r[i], Average: av[i], Count: c[i]})
		}
	}
	return ret
}

//WriteProfilesCSV writes the profiles to w as one CSV table with a header.
func WriteProfilesCSV(w io.Writer, profiles ...*radial.Profile) error {
	return errDecorate(gocsv.Marshal(Rows(profiles...), w), "WriteProfilesCSV")
}

//ReadProfilesCSV reads a table written by WriteProfilesCSV. The rows
//are grouped by profile name, keeping the file order.
func ReadProfilesCSV(r io.Reader) (map[string][]*ProfileRow, error) {
	var rows []*ProfileRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errDecorate(err, "ReadProfilesCSV")
	}
	ret := make(map[string][]*ProfileRow)
	for _, v := range rows {
		ret[v.Profile] = append(ret[v.Profile], v)
	}
	return ret, nil
}

//SaveProfilesCSV writes the profiles to the file name.
func SaveProfilesCSV(name string, profiles ...*radial.Profile) error {
	fout, err := os.Create(name)
	if err != nil {
		return errDecorate(err, "SaveProfilesCSV")
	}
	if err := WriteProfilesCSV(fout, profiles...); err != nil {
		fout.Close()
		return err
	}
	return errDecorate(fout.Close(), "SaveProfilesCSV")
}
