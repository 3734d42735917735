/*
 * doc.go, part of gocryo.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
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
 *
 *
 */

/*Package interp resamples volumes of any dimensionality at fractional
indexes, with nearest-neighbor, multilinear or separable cubic-spline
interpolation. Volumes and coordinate sets travel as tensor.Dense values
(gorgonia.org/tensor); real, complex and integer element types are
supported. The cubic path can be split in two, solving for the spline
coefficients once (SplineCoefficients) and evaluating them many times
(MapCoordinatesWithSpline), which is how the Fourier-space potentials of
the parent package use it.
*/
package interp
