/*
 * plot.go, part of gorism.
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
	"math"

	"github.com/rmera/gorism/radial"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//PlotProfiles plots the averages of the profiles against r, one line per profile,
//and saves the plot to name. The format is taken from the extension of name.
func PlotProfiles(name, title string, profiles ...*radial.Profile) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (Å)"
	p.Y.Label.Text = "g(r)"
	p.Add(plotter.NewGrid())
	for i, v := range profiles {
		pts := points(v)
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return errDecorate(err, "PlotProfiles")
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(v.Name(), l)
	}
	p.Legend.Top = true
	return errDecorate(p.Save(6*vg.Inch, 4*vg.Inch, name), "PlotProfiles")
}

//points returns the non-empty shells of p.
func points(p *radial.Profile) plotter.XYs {
	r := p.R()
	av := p.Average()
	ret := make(plotter.XYs, 0, len(r))
	for i := range r {
		if math.IsNaN(av[i]) || math.IsInf(av[i], 0) {
			continue
		}
		ret = append(ret, plotter.XY{X: r[i], Y: av[i]})
	}
	return ret
}
