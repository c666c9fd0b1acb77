/*
 * doc.go, part of gorism.
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

/*Package rism is the root package of gorism, a solver for 3D integral equations of the
theory of liquids (OZ/HNC and the legacy BGY3D formulation) on periodic grids.

The root package only holds what every other package needs: sites and molecules,
the parameters of a problem, the closure kinds and the error types. The numerical
work is done in the sub-packages:

	grid        3D fields, k-space fields and the symmetric pair arena
	fft         forward/backward 3D transforms with the h³ and 1/L³ scale factors
	potential   LJ and screened Coulomb pair potentials, long-range Coulomb in k-space
	closure     HNC, KH, PY and PSE-n closures, chemical potentials
	omega       the intramolecular sinc(kr) kernel
	oz          per-mode OZ solves and the star convolution with a susceptibility
	regularize  thresholded divisions and the intramolecular normalization
	roots       Picard and Newton-GMRES root finders over packed vectors
	hnc         the solvent and solute iteration drivers
	bgy         the legacy BGY3D mixing driver
	radial      spherical averages of 3D fields
	store       compressed field files, restart data, CSV profiles and plots
	config      YAML settings and TOML molecule tables

Units are Å, kcal/mol and elementary charges. Beta is then in mol/kcal and
densities in Å⁻³.
*/
package rism
