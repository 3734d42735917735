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

/*Package coords holds the coordinate systems that scattering potentials
carry around: Grid, the voxel-center offsets of a 3D volume; List, a flat
set of points in 3D space; and FrequencySlice, the central kz = 0 plane
of the Fourier-space coordinates of a volume. All three center their
arrays with the integer division n/2, matching the center the discrete
Fourier transform shift uses, and all are plain immutable values: the
Scaled method returns fresh copies, unit conversions never happen in
place.
*/
package coords
