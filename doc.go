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

/*Package cryo stores and manipulates 3D scattering potentials for cryo-EM
image simulation. A potential can live in Fourier space, as a voxel grid or
as a grid of spline coefficients, or in real space, as a voxel grid or as a
sparse point cloud; the four representations share one interface, so the
projection stages downstream need not care which one they were handed.



	**gocryo capabilities**


    Builds any of the four potential representations from a dense
	real-space volume, with optional padding, cropping and
	Fourier-space filtering.

    Builds them from an atomic model instead, rasterizing each atom as
	the 5-Gaussian electron scattering factor fit of Peng et al.,
	concurrently over the atoms.

    Reads atoms from PDB and mmCIF files, plain or gzipped, and
	scattering factor tables from JSON.

    Orients a potential with Euler angles (ZYZ, in degrees) or unit
	quaternions. Rotation never touches the stored voxels; it replaces
	the coordinate system that samples them, backward for the
	Fourier-space representations and forward for the real-space ones.

    Groups several conformations of a specimen into an Ensemble with a
	shared pose.

    Low-pass and B-factor filters, discrete Fourier transforms with
	centered conventions, and centered pad/crop helpers are exported,
	as the building blocks of custom pipelines.


The subpackage coords holds the coordinate systems (grids, point lists
and frequency slices); the subpackage interp resamples volumes at
arbitrary fractional coordinates (nearest, linear or cubic spline),
which is how a slice gets extracted from a Fourier grid; the subpackage
cryoplot draws quick-look images of volumes.

Volumes are gorgonia.org/tensor dense tensors in row-major order, and
point sets are gonum Dense matrices with one point per row. Potentials
are immutable: every operation that would change one returns a fresh
value instead.*/
package cryo
