/*
 * voxel.go, part of gocryo.
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
	"fmt"
	"math"

	"github.com/rmera/gocryo/coords"
	"github.com/rmera/gocryo/interp"
	"gorgonia.org/tensor"
)

//FourierVoxelGrid stores the Fourier transform of a scattering
//potential directly, with the zero frequency at the center of the
//array, plus the frequency slice downstream projections sample it
//with.
type FourierVoxelGrid struct {
	grid  *tensor.Dense
	slice *coords.FrequencySlice
	vs    float64
}

//NewFourierVoxelGrid builds the potential from an already-transformed,
//center-origin Fourier grid. Most callers want FourierVoxelGridFromVolume
//or FourierVoxelGridFromAtoms instead.
func NewFourierVoxelGrid(fourierGrid *tensor.Dense, slice *coords.FrequencySlice, voxelSize float64) (*FourierVoxelGrid, error) {
	if err := validFourierParts(fourierGrid, slice, voxelSize, "NewFourierVoxelGrid"); err != nil {
		return nil, err
	}
	return &FourierVoxelGrid{grid: fourierGrid, slice: slice, vs: voxelSize}, nil
}

//FourierGrid returns the stored center-origin Fourier grid. Treat it as
//read-only.
func (V *FourierVoxelGrid) FourierGrid() *tensor.Dense { return V.grid }

//FrequencySlice returns the frequency slice, in cycles per voxel.
func (V *FourierVoxelGrid) FrequencySlice() *coords.FrequencySlice { return V.slice }

//FrequencySliceInAngstroms returns a fresh frequency slice in cycles
//per angstrom.
func (V *FourierVoxelGrid) FrequencySliceInAngstroms() *coords.FrequencySlice {
	return V.slice.Scaled(1 / V.vs)
}

//Shape returns the dims of the stored grid.
func (V *FourierVoxelGrid) Shape() []int { return cloneInts(V.grid.Shape()) }

//VoxelSize returns the voxel spacing in angstroms.
func (V *FourierVoxelGrid) VoxelSize() float64 { return V.vs }

//IsReal returns false: the data lives in Fourier space.
func (V *FourierVoxelGrid) IsReal() bool { return false }

//RotateToPose returns a new potential whose frequency slice is rotated
//backward by the pose, leaving the stored grid alone. Rotating the
//sampling coordinates of the transform, rather than the object, is
//what orients a fixed Fourier grid.
func (V *FourierVoxelGrid) RotateToPose(p Pose) (Potential, error) {
	rot, err := RotateFrequencySlice(V.slice, p, true)
	if err != nil {
		return nil, errDecorate(err, "FourierVoxelGrid.RotateToPose")
	}
	return &FourierVoxelGrid{grid: V.grid, slice: rot, vs: V.vs}, nil
}

//FourierVoxelGridFromVolume builds the potential from a real-space
//volume: the volume is padded by the PadScale option, transformed, run
//through the Filter option while the zero frequency sits in the
//corner, and stored centered. The volume must be cubic.
func FourierVoxelGridFromVolume(v *tensor.Dense, voxelSize float64, options ...*Options) (*FourierVoxelGrid, error) {
	opt := pickOptions(options)
	ft, slice, err := fourierTransformVolume(v, voxelSize, opt, "FourierVoxelGridFromVolume")
	if err != nil {
		return nil, err
	}
	return NewFourierVoxelGrid(ft, slice, voxelSize)
}

//FourierVoxelGridFromAtoms rasterizes the atoms onto the grid, given in
//angstroms, and builds the potential from the result. The atomic
//numbers pick each atom's scattering factors from the table in the
//options, or the built-in one.
func FourierVoxelGridFromAtoms(atoms *coords.List, atomicNumbers []int, voxelSize float64, gridInAngstroms *coords.Grid, options ...*Options) (*FourierVoxelGrid, error) {
	opt := pickOptions(options)
	vol, err := rasterizeAtoms(atoms, atomicNumbers, gridInAngstroms, opt, "FourierVoxelGridFromAtoms")
	if err != nil {
		return nil, err
	}
	return FourierVoxelGridFromVolume(vol, voxelSize, opt)
}

//FourierVoxelGridInterpolator is the spline flavor of FourierVoxelGrid.
//Instead of the Fourier grid itself it stores the cubic spline
//coefficients computed from it, two entries larger per axis, so
//downstream slice extraction can sample between voxels smoothly.
type FourierVoxelGridInterpolator struct {
	coeffs *tensor.Dense
	slice  *coords.FrequencySlice
	vs     float64
}

//NewFourierVoxelGridInterpolator builds the potential from an
//already-transformed, center-origin Fourier grid. The grid itself is
//not kept; its spline coefficients are computed here and stored in its
//place.
func NewFourierVoxelGridInterpolator(fourierGrid *tensor.Dense, slice *coords.FrequencySlice, voxelSize float64) (*FourierVoxelGridInterpolator, error) {
	if err := validFourierParts(fourierGrid, slice, voxelSize, "NewFourierVoxelGridInterpolator"); err != nil {
		return nil, err
	}
	coeffs, err := interp.SplineCoefficients(fourierGrid)
	if err != nil {
		return nil, errDecorate(err, "NewFourierVoxelGridInterpolator")
	}
	return &FourierVoxelGridInterpolator{coeffs: coeffs, slice: slice, vs: voxelSize}, nil
}

//Coefficients returns the stored spline coefficient grid. Treat it as
//read-only.
func (V *FourierVoxelGridInterpolator) Coefficients() *tensor.Dense { return V.coeffs }

//FrequencySlice returns the frequency slice, in cycles per voxel.
func (V *FourierVoxelGridInterpolator) FrequencySlice() *coords.FrequencySlice { return V.slice }

//FrequencySliceInAngstroms returns a fresh frequency slice in cycles
//per angstrom.
func (V *FourierVoxelGridInterpolator) FrequencySliceInAngstroms() *coords.FrequencySlice {
	return V.slice.Scaled(1 / V.vs)
}

//Shape returns the logical dims of the potential, two less per axis
//than the stored coefficients.
func (V *FourierVoxelGridInterpolator) Shape() []int {
	s := cloneInts(V.coeffs.Shape())
	for i := range s {
		s[i] -= 2
	}
	return s
}

//VoxelSize returns the voxel spacing in angstroms.
func (V *FourierVoxelGridInterpolator) VoxelSize() float64 { return V.vs }

//IsReal returns false: the data lives in Fourier space.
func (V *FourierVoxelGridInterpolator) IsReal() bool { return false }

//RotateToPose returns a new potential whose frequency slice is rotated
//backward by the pose, leaving the stored coefficients alone.
func (V *FourierVoxelGridInterpolator) RotateToPose(p Pose) (Potential, error) {
	rot, err := RotateFrequencySlice(V.slice, p, true)
	if err != nil {
		return nil, errDecorate(err, "FourierVoxelGridInterpolator.RotateToPose")
	}
	return &FourierVoxelGridInterpolator{coeffs: V.coeffs, slice: rot, vs: V.vs}, nil
}

//FourierVoxelGridInterpolatorFromVolume builds the potential from a
//real-space volume, with the same pipeline as
//FourierVoxelGridFromVolume, then replaces the transform by its spline
//coefficients.
func FourierVoxelGridInterpolatorFromVolume(v *tensor.Dense, voxelSize float64, options ...*Options) (*FourierVoxelGridInterpolator, error) {
	opt := pickOptions(options)
	ft, slice, err := fourierTransformVolume(v, voxelSize, opt, "FourierVoxelGridInterpolatorFromVolume")
	if err != nil {
		return nil, err
	}
	return NewFourierVoxelGridInterpolator(ft, slice, voxelSize)
}

//FourierVoxelGridInterpolatorFromAtoms rasterizes the atoms onto the
//grid, given in angstroms, and builds the spline potential from the
//result.
func FourierVoxelGridInterpolatorFromAtoms(atoms *coords.List, atomicNumbers []int, voxelSize float64, gridInAngstroms *coords.Grid, options ...*Options) (*FourierVoxelGridInterpolator, error) {
	opt := pickOptions(options)
	vol, err := rasterizeAtoms(atoms, atomicNumbers, gridInAngstroms, opt, "FourierVoxelGridInterpolatorFromAtoms")
	if err != nil {
		return nil, err
	}
	return FourierVoxelGridInterpolatorFromVolume(vol, voxelSize, opt)
}

//RealVoxelGrid keeps the scattering potential as a plain real-space
//voxel grid with its coordinate system, in voxel units.
type RealVoxelGrid struct {
	vol   *tensor.Dense
	cgrid *coords.Grid
	vs    float64
}

//NewRealVoxelGrid builds the potential from a volume and its coordinate
//grid, stored as given. Most callers want RealVoxelGridFromVolume or
//RealVoxelGridFromAtoms, which handle the storage conventions of this
//library.
func NewRealVoxelGrid(v *tensor.Dense, grid *coords.Grid, voxelSize float64) (*RealVoxelGrid, error) {
	if v == nil {
		return nil, CError{NilTensor, []string{"NewRealVoxelGrid"}}
	}
	if grid == nil {
		return nil, CError{NilGrid, []string{"NewRealVoxelGrid"}}
	}
	if voxelSize <= 0 {
		return nil, CError{BadVoxelSize, []string{"NewRealVoxelGrid"}}
	}
	if _, ok := v.Data().([]float64); !ok {
		return nil, CError{RealTensorNeeded, []string{"NewRealVoxelGrid"}}
	}
	dims, err := cubicVolume(v, "NewRealVoxelGrid")
	if err != nil {
		return nil, err
	}
	gs := grid.Shape()
	if gs[0] != dims[0] || gs[1] != dims[1] || gs[2] != dims[2] {
		return nil, CError{fmt.Sprintf("the coordinate grid dims (%d,%d,%d) do not match the volume %v", gs[0], gs[1], gs[2], dims), []string{"NewRealVoxelGrid"}}
	}
	return &RealVoxelGrid{vol: v, cgrid: grid, vs: voxelSize}, nil
}

//RealGrid returns the stored voxel grid. Treat it as read-only.
func (V *RealVoxelGrid) RealGrid() *tensor.Dense { return V.vol }

//CoordinateGrid returns the coordinate grid, in voxel units.
func (V *RealVoxelGrid) CoordinateGrid() *coords.Grid { return V.cgrid }

//CoordinateGridInAngstroms returns a fresh coordinate grid in
//angstroms.
func (V *RealVoxelGrid) CoordinateGridInAngstroms() *coords.Grid {
	return V.cgrid.Scaled(V.vs)
}

//Shape returns the dims of the stored grid.
func (V *RealVoxelGrid) Shape() []int { return cloneInts(V.vol.Shape()) }

//VoxelSize returns the voxel spacing in angstroms.
func (V *RealVoxelGrid) VoxelSize() float64 { return V.vs }

//IsReal returns true: the data lives in real space.
func (V *RealVoxelGrid) IsReal() bool { return true }

//RotateToPose returns a new potential whose coordinate grid is rotated
//forward by the pose; the voxel data stays put.
func (V *RealVoxelGrid) RotateToPose(p Pose) (Potential, error) {
	rot, err := RotateGrid(V.cgrid, p, false)
	if err != nil {
		return nil, errDecorate(err, "RealVoxelGrid.RotateToPose")
	}
	return &RealVoxelGrid{vol: V.vol, cgrid: rot, vs: V.vs}, nil
}

//RealVoxelGridFromVolume builds the potential from a real-space volume.
//The volume is stored with its first two axes swapped, the convention
//every real-space variant follows so its projections agree with the
//Fourier-space ones. The CropScale option trims the volume around its
//center, and the CoordinateGrid option replaces the synthesized
//coordinate system; the two cannot be given together.
func RealVoxelGridFromVolume(v *tensor.Dense, voxelSize float64, options ...*Options) (*RealVoxelGrid, error) {
	opt := pickOptions(options)
	const caller string = "RealVoxelGridFromVolume"
	vol, err := realTransposedVolume(v, voxelSize, caller)
	if err != nil {
		return nil, err
	}
	grid := opt.grid
	if grid != nil && opt.cropScale != 0 {
		return nil, CError{GridAndCrop, []string{caller}}
	}
	if grid == nil {
		if opt.cropScale != 0 {
			if opt.cropScale > 1.0 {
				return nil, CError{CropScaleTooBig, []string{caller}}
			}
			dims := vol.Shape()
			cropped := make([]int, len(dims))
			for i, s := range dims {
				cropped[i] = int(float64(s) * opt.cropScale)
			}
			vol, err = CropToShape(vol, cropped)
			if err != nil {
				return nil, errDecorate(err, caller)
			}
		}
		grid, err = coords.NewGrid(vol.Shape())
		if err != nil {
			return nil, errDecorate(err, caller)
		}
	}
	return NewRealVoxelGrid(vol, grid, voxelSize)
}

//RealVoxelGridFromAtoms rasterizes the atoms onto the grid, given in
//angstroms, and stores the result with that same grid, in voxel units,
//as its coordinate system.
func RealVoxelGridFromAtoms(atoms *coords.List, atomicNumbers []int, voxelSize float64, gridInAngstroms *coords.Grid, options ...*Options) (*RealVoxelGrid, error) {
	opt := pickOptions(options)
	const caller string = "RealVoxelGridFromAtoms"
	if voxelSize <= 0 {
		return nil, CError{BadVoxelSize, []string{caller}}
	}
	vol, err := rasterizeAtoms(atoms, atomicNumbers, gridInAngstroms, opt, caller)
	if err != nil {
		return nil, err
	}
	own := *opt
	own.grid = gridInAngstroms.Scaled(1 / voxelSize)
	return RealVoxelGridFromVolume(vol, voxelSize, &own)
}

//RealVoxelCloud keeps only the voxels with potential worth storing, as
//parallel value and coordinate sequences. An empty cloud, from an
//all-zero volume, has no coordinate list at all.
type RealVoxelCloud struct {
	weights []float64
	list    *coords.List
	vs      float64
}

//NewRealVoxelCloud builds the potential from parallel weight and
//coordinate sequences, in voxel units. A nil list is only allowed
//together with no weights.
func NewRealVoxelCloud(weights []float64, list *coords.List, voxelSize float64) (*RealVoxelCloud, error) {
	if voxelSize <= 0 {
		return nil, CError{BadVoxelSize, []string{"NewRealVoxelCloud"}}
	}
	if list == nil {
		if len(weights) != 0 {
			return nil, CError{NilList, []string{"NewRealVoxelCloud"}}
		}
	} else if list.Len() != len(weights) {
		return nil, CError{fmt.Sprintf("%d weights but %d coordinates", len(weights), list.Len()), []string{"NewRealVoxelCloud"}}
	}
	return &RealVoxelCloud{weights: weights, list: list, vs: voxelSize}, nil
}

//Weights returns the stored voxel potential values. Treat them as
//read-only.
func (V *RealVoxelCloud) Weights() []float64 { return V.weights }

//CoordinateList returns the voxel coordinates, in voxel units. It is
//nil for an empty cloud.
func (V *RealVoxelCloud) CoordinateList() *coords.List { return V.list }

//CoordinateListInAngstroms returns fresh coordinates in angstroms, nil
//for an empty cloud.
func (V *RealVoxelCloud) CoordinateListInAngstroms() *coords.List {
	if V.list == nil {
		return nil
	}
	return V.list.Scaled(V.vs)
}

//Len returns the number of stored voxels.
func (V *RealVoxelCloud) Len() int { return len(V.weights) }

//Shape returns the flattened length of the cloud, as its single dim.
func (V *RealVoxelCloud) Shape() []int { return []int{len(V.weights)} }

//VoxelSize returns the voxel spacing in angstroms.
func (V *RealVoxelCloud) VoxelSize() float64 { return V.vs }

//IsReal returns true: the data lives in real space.
func (V *RealVoxelCloud) IsReal() bool { return true }

//RotateToPose returns a new potential with the coordinates rotated
//forward by the pose.
func (V *RealVoxelCloud) RotateToPose(p Pose) (Potential, error) {
	if p == nil {
		return nil, CError{NilPose, []string{"RealVoxelCloud.RotateToPose"}}
	}
	if V.list == nil {
		return &RealVoxelCloud{weights: V.weights, vs: V.vs}, nil
	}
	rot, err := RotateCoordinates(V.list, p, false)
	if err != nil {
		return nil, errDecorate(err, "RealVoxelCloud.RotateToPose")
	}
	return &RealVoxelCloud{weights: V.weights, list: rot, vs: V.vs}, nil
}

//RealVoxelCloudFromVolume builds the cloud from a real-space volume,
//with the same axis swap as RealVoxelGridFromVolume, keeping only the
//voxels not close to zero under the Rtol and Atol options. The
//CoordinateGrid option replaces the synthesized coordinate system. The
//output size depends on the data, so this path always runs eagerly, one
//volume at a time.
func RealVoxelCloudFromVolume(v *tensor.Dense, voxelSize float64, options ...*Options) (*RealVoxelCloud, error) {
	opt := pickOptions(options)
	const caller string = "RealVoxelCloudFromVolume"
	vol, err := realTransposedVolume(v, voxelSize, caller)
	if err != nil {
		return nil, err
	}
	grid := opt.grid
	if grid == nil {
		grid, err = coords.NewGrid(vol.Shape())
		if err != nil {
			return nil, errDecorate(err, caller)
		}
	} else {
		gs := grid.Shape()
		vshape := vol.Shape()
		if gs[0] != vshape[0] || gs[1] != vshape[1] || gs[2] != vshape[2] {
			return nil, CError{fmt.Sprintf("the coordinate grid dims (%d,%d,%d) do not match the volume %v", gs[0], gs[1], gs[2], vshape), []string{caller}}
		}
	}
	data := vol.Data().([]float64)
	gdata := grid.Data().([]float64)
	var weights []float64
	var points []float64
	for i, val := range data {
		if isClose(val, 0, opt.rtol, opt.atol) {
			continue
		}
		weights = append(weights, val)
		points = append(points, gdata[3*i], gdata[3*i+1], gdata[3*i+2])
	}
	var list *coords.List
	if len(weights) > 0 {
		list, err = coords.NewList(points)
		if err != nil {
			return nil, errDecorate(err, caller)
		}
	}
	return NewRealVoxelCloud(weights, list, voxelSize)
}

//RealVoxelCloudFromAtoms rasterizes the atoms onto the grid, given in
//angstroms, and builds the cloud from the result, with that same grid,
//in voxel units, as its coordinate system.
func RealVoxelCloudFromAtoms(atoms *coords.List, atomicNumbers []int, voxelSize float64, gridInAngstroms *coords.Grid, options ...*Options) (*RealVoxelCloud, error) {
	opt := pickOptions(options)
	const caller string = "RealVoxelCloudFromAtoms"
	if voxelSize <= 0 {
		return nil, CError{BadVoxelSize, []string{caller}}
	}
	vol, err := rasterizeAtoms(atoms, atomicNumbers, gridInAngstroms, opt, caller)
	if err != nil {
		return nil, err
	}
	own := *opt
	own.grid = gridInAngstroms.Scaled(1 / voxelSize)
	return RealVoxelCloudFromVolume(vol, voxelSize, &own)
}

//Shared construction helpers. The variants differ in what they store,
//not in how the raw volumes are prepared, so that part lives here.

//cubicVolume checks that t has 3 axes of equal extent and returns its
//dims.
func cubicVolume(t *tensor.Dense, caller string) ([]int, error) {
	s := t.Shape()
	if len(s) != 3 {
		return nil, CError{NotVolume, []string{caller}}
	}
	if s[0] != s[1] || s[1] != s[2] {
		return nil, CError{NotCubic, []string{caller}}
	}
	return cloneInts(s), nil
}

//validFourierParts runs the checks shared by the raw Fourier-space
//constructors.
func validFourierParts(fourierGrid *tensor.Dense, slice *coords.FrequencySlice, voxelSize float64, caller string) error {
	if fourierGrid == nil {
		return CError{NilTensor, []string{caller}}
	}
	if slice == nil {
		return CError{NilGrid, []string{caller}}
	}
	if voxelSize <= 0 {
		return CError{BadVoxelSize, []string{caller}}
	}
	if _, ok := fourierGrid.Data().([]complex128); !ok {
		return CError{ComplexNeeded, []string{caller}}
	}
	dims, err := cubicVolume(fourierGrid, caller)
	if err != nil {
		return err
	}
	ss := slice.Shape()
	if ss[1] != dims[0] || ss[2] != dims[1] {
		return CError{fmt.Sprintf("the frequency slice dims (%d,%d) do not match the grid %v", ss[1], ss[2], dims), []string{caller}}
	}
	return nil
}

//fourierTransformVolume runs the construction pipeline shared by the
//Fourier-space variants: pad, transform the centered volume, filter
//while the zero frequency sits in the corner, then shift it to the
//center and build the matching frequency slice.
func fourierTransformVolume(v *tensor.Dense, voxelSize float64, opt *Options, caller string) (*tensor.Dense, *coords.FrequencySlice, error) {
	if v == nil {
		return nil, nil, CError{NilTensor, []string{caller}}
	}
	if voxelSize <= 0 {
		return nil, nil, CError{BadVoxelSize, []string{caller}}
	}
	vol := v
	if _, ok := v.Data().([]complex128); !ok {
		var err error
		vol, err = toFloat64(v, caller)
		if err != nil {
			return nil, nil, err
		}
	}
	dims, err := cubicVolume(vol, caller)
	if err != nil {
		return nil, nil, err
	}
	if opt.padScale < 1.0 {
		return nil, nil, CError{PadScaleTooSmall, []string{caller}}
	}
	padded := make([]int, len(dims))
	for i, s := range dims {
		padded[i] = int(float64(s) * opt.padScale)
	}
	pvol, err := PadToShape(vol, padded, opt)
	if err != nil {
		return nil, nil, errDecorate(err, caller)
	}
	ft, err := FFT(pvol)
	if err != nil {
		return nil, nil, errDecorate(err, caller)
	}
	if opt.filter != nil {
		ft, err = opt.filter.Apply(ft)
		if err != nil {
			return nil, nil, errDecorate(err, caller)
		}
	}
	ft, err = FFTShift(ft)
	if err != nil {
		return nil, nil, errDecorate(err, caller)
	}
	slice, err := coords.NewFrequencySlice(padded[:2])
	if err != nil {
		return nil, nil, errDecorate(err, caller)
	}
	return ft, slice, nil
}

//realTransposedVolume casts and validates a real-space volume and swaps
//its first two axes, the convention the real-space variants store their
//data with.
func realTransposedVolume(v *tensor.Dense, voxelSize float64, caller string) (*tensor.Dense, error) {
	if v == nil {
		return nil, CError{NilTensor, []string{caller}}
	}
	if voxelSize <= 0 {
		return nil, CError{BadVoxelSize, []string{caller}}
	}
	if _, ok := v.Data().([]complex128); ok {
		return nil, CError{RealTensorNeeded, []string{caller}}
	}
	vol, err := toFloat64(v, caller)
	if err != nil {
		return nil, err
	}
	if _, err := cubicVolume(vol, caller); err != nil {
		return nil, err
	}
	t, err := SwapAxes01(vol)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	return t, nil
}

//rasterizeAtoms looks up the scattering factors and runs the
//rasterizer.
func rasterizeAtoms(atoms *coords.List, atomicNumbers []int, gridInAngstroms *coords.Grid, opt *Options, caller string) (*tensor.Dense, error) {
	if atoms == nil {
		return nil, CError{NilList, []string{caller}}
	}
	if gridInAngstroms == nil {
		return nil, CError{NilGrid, []string{caller}}
	}
	if atoms.Len() != len(atomicNumbers) {
		return nil, CError{fmt.Sprintf("%d atoms but %d atomic numbers", atoms.Len(), len(atomicNumbers)), []string{caller}}
	}
	a, b, err := FormFactors(atomicNumbers, opt.factors)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	vol, err := BuildVoxelsFromAtoms(atoms, a, b, gridInAngstroms, opt)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	return vol, nil
}

//isClose is the usual two-tolerance closeness test.
func isClose(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
