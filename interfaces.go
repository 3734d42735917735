/*
 * interfaces.go, part of gocryo.
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

package cryo

import (
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Potential is the interface for the in-memory voxel representations of a
// scattering potential. The four implementations in this package differ in
// the space they live in (real or Fourier) and in how they hold their
// samples (dense grid, spline coefficients, or point cloud), but they all
// know their own dimensions, their physical scale, and how to take on a
// new orientation.
type Potential interface {

	//Shape returns the dims of the underlying voxel array. For the
	//point-cloud representation this is the single flattened length.
	Shape() []int

	//VoxelSize returns the voxel spacing in angstroms.
	VoxelSize() float64

	//IsReal reports whether the representation lives in real space
	//rather than in Fourier space. It depends only on the concrete
	//type, never on the data.
	IsReal() bool

	//RotateToPose returns a copy of the potential whose coordinate
	//system has been rotated to the given pose. The voxel data buffers
	//are shared, the coordinates are fresh, and the concrete type of
	//the result is that of the receiver.
	RotateToPose(p Pose) (Potential, error)
}

// Pose is a rigid orientation of a specimen. Implementations only need to
// produce their rotation matrix; applying it to coordinate sets is done by
// RotateCoordinates, the same way for all of them.
type Pose interface {

	//Rotation returns the 3x3 rotation matrix of the pose, fresh on
	//every call.
	Rotation() *mat.Dense
}

// Filter modifies a Fourier transform during the construction of a
// potential, e.g. to band-limit it right after it is built. The transform
// given to Apply has its zero frequency in the corner.
type Filter interface {

	//Apply returns the filtered transform. The argument is not modified.
	Apply(ft *tensor.Dense) (*tensor.Dense, error)
}

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w"
//directive and the errors package). We should avoid using the Decorate
//method and/or make it use the "%w" directive internally.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //This is the new thing for errors. It allows you to add information when you pass it up. Each call also returns the "decoration" slice of strins resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}
