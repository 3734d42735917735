/*
 * voxel_test.go, part of gocryo.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 *
 * This program, including its test files, is free software; you can
 * redistribute it and/or modify it under the terms of the GNU Lesser
 * General Public License as published by the Free Software Foundation;
 * either version 2.1 of the License, or (at your option) any later
 * version.
 *
 * This program is distributed in the hope that it will be useful, but
 * WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cryo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rmera/gocryo/coords"
	"gorgonia.org/tensor"
)

//a small cubic volume with distinct, easy to trace entries
func testVolume(n int) *tensor.Dense {
	data := make([]float64, n*n*n)
	for i := range data {
		data[i] = float64(i)
	}
	return tensor.New(tensor.WithShape(n, n, n), tensor.WithBacking(data))
}

func volumeSum(t *tensor.Dense) float64 {
	s := 0.0
	for _, v := range t.Data().([]float64) {
		s += v
	}
	return s
}

func TestFourierVoxelGrid(Te *testing.T) {
	v := testVolume(4)
	sum := volumeSum(v)
	pot, err := FourierVoxelGridFromVolume(v, 1.5)
	if err != nil {
		Te.Fatal(err)
	}
	sh := pot.Shape()
	if sh[0] != 4 || sh[1] != 4 || sh[2] != 4 {
		Te.Fatalf("shape is %v, want [4 4 4]", sh)
	}
	if pot.IsReal() {
		Te.Error("a Fourier potential should not report as real")
	}
	if pot.VoxelSize() != 1.5 {
		Te.Errorf("voxel size is %v, want 1.5", pot.VoxelSize())
	}
	//with the zero frequency moved to the center, the middle bin holds
	//the sum of the volume
	dc, err := pot.FourierGrid().At(2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !capprox(dc.(complex128), complex(sum, 0), 1e-9) {
		Te.Errorf("center bin is %v, want %v", dc, sum)
	}
	fs := pot.FrequencySlice()
	fsh := fs.Shape()
	if fsh[0] != 1 || fsh[1] != 4 || fsh[2] != 4 || fsh[3] != 3 {
		Te.Fatalf("frequency slice shape is %v", fsh)
	}
	fx, fy, fz := fs.At(0, 0)
	if fx != -0.5 || fy != -0.5 || fz != 0 {
		Te.Errorf("slice corner is (%v,%v,%v)", fx, fy, fz)
	}
	ax, ay, _ := pot.FrequencySliceInAngstroms().At(0, 0)
	if !approx(ax, -0.5/1.5, 1e-15) || !approx(ay, -0.5/1.5, 1e-15) {
		Te.Errorf("angstrom slice corner is (%v,%v)", ax, ay)
	}
	fmt.Println("Fourier potential built, center bin:", dc)
}

func TestFourierPadding(Te *testing.T) {
	v := testVolume(4)
	sum := volumeSum(v)
	opt := DefaultOptions()
	opt.PadScale(1.5)
	pot, err := FourierVoxelGridFromVolume(v, 1, opt)
	if err != nil {
		Te.Fatal(err)
	}
	sh := pot.Shape()
	if sh[0] != 6 || sh[1] != 6 || sh[2] != 6 {
		Te.Fatalf("padded shape is %v, want [6 6 6]", sh)
	}
	//zero padding leaves the total intact
	dc, err := pot.FourierGrid().At(3, 3, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if !capprox(dc.(complex128), complex(sum, 0), 1e-9) {
		Te.Errorf("padded center bin is %v, want %v", dc, sum)
	}
	fsh := pot.FrequencySlice().Shape()
	if fsh[1] != 6 || fsh[2] != 6 {
		Te.Errorf("padded slice shape is %v", fsh)
	}
	//a pad scale below 1 shrinks, which makes no sense here
	small := DefaultOptions()
	small.PadScale(0.9)
	if _, err := FourierVoxelGridFromVolume(v, 1, small); err == nil {
		Te.Error("a pad scale below 1 should fail")
	} else if !strings.Contains(err.Error(), "pad scale") {
		Te.Errorf("unexpected pad scale error: %v", err)
	}
}

func TestFourierFilterOption(Te *testing.T) {
	v := testVolume(4)
	sum := volumeSum(v)
	lp, err := NewLowpassFilter(0.1)
	if err != nil {
		Te.Fatal(err)
	}
	opt := DefaultOptions()
	opt.Filter(lp)
	pot, err := FourierVoxelGridFromVolume(v, 1, opt)
	if err != nil {
		Te.Fatal(err)
	}
	//the tight cutoff leaves only the zero frequency, which sits at the
	//center after the shift
	data := cdata(Te, pot.FourierGrid())
	center := (2*4+2)*4 + 2
	for i, c := range data {
		if i == center {
			if !capprox(c, complex(sum, 0), 1e-9) {
				Te.Errorf("filtered center bin is %v, want %v", c, sum)
			}
		} else if !capprox(c, 0, 1e-9) {
			Te.Errorf("bin %d survived the filter: %v", i, c)
		}
	}
	fmt.Println("filter hooked into the build")
}

func TestInterpolator(Te *testing.T) {
	v := testVolume(4)
	pot, err := FourierVoxelGridInterpolatorFromVolume(v, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sh := pot.Shape()
	if sh[0] != 4 || sh[1] != 4 || sh[2] != 4 {
		Te.Errorf("interpolator shape is %v, want [4 4 4]", sh)
	}
	csh := pot.Coefficients().Shape()
	if csh[0] != 6 || csh[1] != 6 || csh[2] != 6 {
		Te.Errorf("coefficient shape is %v, want [6 6 6]", csh)
	}
	if pot.IsReal() {
		Te.Error("the interpolator lives in Fourier space")
	}
	rot, err := pot.RotateToPose(NewEulerPose(0, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	rsh := rot.Shape()
	if rsh[0] != 4 || rsh[1] != 4 || rsh[2] != 4 {
		Te.Errorf("rotated interpolator shape is %v", rsh)
	}
	fmt.Println("interpolator coefficients:", csh)
}

func TestRealVoxelGridTranspose(Te *testing.T) {
	n := 3
	data := make([]float64, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				data[i*n*n+j*n+k] = float64(100*i + 10*j + k)
			}
		}
	}
	v := tensor.New(tensor.WithShape(n, n, n), tensor.WithBacking(data))
	pot, err := RealVoxelGridFromVolume(v, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !pot.IsReal() {
		Te.Error("a real-space potential should report as real")
	}
	//the stored volume has its first two axes swapped
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				got, err := pot.RealGrid().At(i, j, k)
				if err != nil {
					Te.Fatal(err)
				}
				want := float64(100*j + 10*i + k)
				if got.(float64) != want {
					Te.Errorf("stored volume at (%d,%d,%d) is %v, want %v", i, j, k, got, want)
				}
			}
		}
	}
	x, y, z := pot.CoordinateGrid().At(0, 0, 0)
	if x != -1 || y != -1 || z != -1 {
		Te.Errorf("first grid point is (%v,%v,%v), want (-1,-1,-1)", x, y, z)
	}
	ax, ay, az := pot.CoordinateGridInAngstroms().At(0, 0, 0)
	if ax != -2 || ay != -2 || az != -2 {
		Te.Errorf("first angstrom point is (%v,%v,%v), want (-2,-2,-2)", ax, ay, az)
	}
}

func TestRealVoxelGridCrop(Te *testing.T) {
	v := testVolume(4)
	opt := DefaultOptions()
	opt.CropScale(0.5)
	pot, err := RealVoxelGridFromVolume(v, 1, opt)
	if err != nil {
		Te.Fatal(err)
	}
	sh := pot.Shape()
	if sh[0] != 2 || sh[1] != 2 || sh[2] != 2 {
		Te.Fatalf("cropped shape is %v, want [2 2 2]", sh)
	}
	//cropping happens after the axis swap, so the kept entry at (a,b,c)
	//is the input at (1+b,1+a,1+c)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				got, err := pot.RealGrid().At(a, b, c)
				if err != nil {
					Te.Fatal(err)
				}
				want := float64((1+b)*16 + (1+a)*4 + (1 + c))
				if got.(float64) != want {
					Te.Errorf("cropped entry (%d,%d,%d) is %v, want %v", a, b, c, got, want)
				}
			}
		}
	}
	//the synthesized grid follows the cropped dims
	x, y, z := pot.CoordinateGrid().At(0, 0, 0)
	if x != -1 || y != -1 || z != -1 {
		Te.Errorf("cropped grid point is (%v,%v,%v), want (-1,-1,-1)", x, y, z)
	}
	big := DefaultOptions()
	big.CropScale(1.1)
	if _, err := RealVoxelGridFromVolume(v, 1, big); err == nil {
		Te.Error("a crop scale above 1 should fail")
	} else if !strings.Contains(err.Error(), "crop scale") {
		Te.Errorf("unexpected crop scale error: %v", err)
	}
}

func TestRealVoxelGridExplicitGrid(Te *testing.T) {
	v := testVolume(3)
	g, err := coords.NewGrid([]int{3, 3, 3})
	if err != nil {
		Te.Fatal(err)
	}
	opt := DefaultOptions()
	opt.CoordinateGrid(g.Scaled(0.5))
	pot, err := RealVoxelGridFromVolume(v, 1, opt)
	if err != nil {
		Te.Fatal(err)
	}
	x, y, z := pot.CoordinateGrid().At(0, 0, 0)
	if x != -0.5 || y != -0.5 || z != -0.5 {
		Te.Errorf("explicit grid ignored, got (%v,%v,%v)", x, y, z)
	}
	//a grid and a crop cannot both be given
	both := DefaultOptions()
	both.CoordinateGrid(g)
	both.CropScale(0.5)
	if _, err := RealVoxelGridFromVolume(v, 1, both); err == nil {
		Te.Error("a grid together with a crop should fail")
	} else if !strings.Contains(err.Error(), "cannot be given together") {
		Te.Errorf("unexpected conflict error: %v", err)
	}
	//and the grid dims must match the volume
	small, err := coords.NewGrid([]int{2, 2, 2})
	if err != nil {
		Te.Fatal(err)
	}
	wrong := DefaultOptions()
	wrong.CoordinateGrid(small)
	if _, err := RealVoxelGridFromVolume(v, 1, wrong); err == nil {
		Te.Error("mismatched grid dims should fail")
	}
}

func TestRealVoxelCloudEmpty(Te *testing.T) {
	zeros := tensor.New(tensor.WithShape(3, 3, 3), tensor.WithBacking(make([]float64, 27)))
	pot, err := RealVoxelCloudFromVolume(zeros, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if pot.Len() != 0 {
		Te.Fatalf("an all-zero volume should give an empty cloud, got %d points", pot.Len())
	}
	if pot.CoordinateList() != nil {
		Te.Error("an empty cloud should have no coordinate list")
	}
	if pot.Shape()[0] != 0 {
		Te.Errorf("empty cloud shape is %v", pot.Shape())
	}
	//an empty cloud still rotates
	rot, err := pot.RotateToPose(NewEulerPose(90, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	if rot.Shape()[0] != 0 {
		Te.Error("rotating an empty cloud should keep it empty")
	}
	fmt.Println("empty cloud handled")
}

func TestRealVoxelCloud(Te *testing.T) {
	n := 3
	data := make([]float64, n*n*n)
	//input (1,0,2) lands at (0,1,2) after the axis swap, which comes
	//first in row-major order among the two
	data[1*9+0*3+2] = 3.5
	data[0*9+1*3+0] = 1
	v := tensor.New(tensor.WithShape(n, n, n), tensor.WithBacking(data))
	pot, err := RealVoxelCloudFromVolume(v, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if pot.Len() != 2 {
		Te.Fatalf("cloud has %d points, want 2", pot.Len())
	}
	w := pot.Weights()
	if w[0] != 3.5 || w[1] != 1 {
		Te.Errorf("weights out of order: %v", w)
	}
	l := pot.CoordinateList()
	if x, y, z := l.At(0, 0), l.At(0, 1), l.At(0, 2); x != -1 || y != 0 || z != 1 {
		Te.Errorf("first point is (%v,%v,%v), want (-1,0,1)", x, y, z)
	}
	if x, y, z := l.At(1, 0), l.At(1, 1), l.At(1, 2); x != 0 || y != -1 || z != -1 {
		Te.Errorf("second point is (%v,%v,%v), want (0,-1,-1)", x, y, z)
	}
	la := pot.CoordinateListInAngstroms()
	if x := la.At(0, 0); x != -2 {
		Te.Errorf("angstrom coordinate is %v, want -2", x)
	}
	fmt.Println("cloud weights:", w)
}

func TestRealVoxelCloudThreshold(Te *testing.T) {
	v := tensor.New(tensor.WithShape(3, 3, 3), tensor.WithBacking(make([]float64, 27)))
	if err := v.SetAt(5e-9, 1, 1, 1); err != nil {
		Te.Fatal(err)
	}
	pot, err := RealVoxelCloudFromVolume(v, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if pot.Len() != 0 {
		Te.Errorf("a value below the tolerance should drop, got %d points", pot.Len())
	}
	tight := DefaultOptions()
	tight.Atol(1e-10)
	pot, err = RealVoxelCloudFromVolume(v, 1, tight)
	if err != nil {
		Te.Fatal(err)
	}
	if pot.Len() != 1 {
		Te.Errorf("a tighter tolerance should keep the value, got %d points", pot.Len())
	}
}

func TestRotateToPose(Te *testing.T) {
	v := testVolume(3)
	real3, err := RealVoxelGridFromVolume(v, 1)
	if err != nil {
		Te.Fatal(err)
	}
	//the identity leaves every coordinate where it was
	same, err := real3.RotateToPose(NewEulerPose(0, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	sameGrid := same.(*RealVoxelGrid)
	for i := 0; i < 3; i++ {
		gx, gy, gz := real3.CoordinateGrid().At(i, 2, 1)
		rx, ry, rz := sameGrid.CoordinateGrid().At(i, 2, 1)
		if gx != rx || gy != ry || gz != rz {
			Te.Errorf("identity moved (%v,%v,%v) to (%v,%v,%v)", gx, gy, gz, rx, ry, rz)
		}
	}
	//the voxel data is shared, not copied
	if sameGrid.RealGrid() != real3.RealGrid() {
		Te.Error("rotation should not copy the voxel data")
	}
	//Fourier potentials rotate their frequency slice with the inverse
	fpot, err := FourierVoxelGridFromVolume(v, 1)
	if err != nil {
		Te.Fatal(err)
	}
	frot, err := fpot.RotateToPose(NewEulerPose(90, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	fx, fy, fz := frot.(*FourierVoxelGrid).FrequencySlice().At(0, 0)
	ox, oy, _ := fpot.FrequencySlice().At(0, 0)
	if !approx(fx, oy, 1e-12) || !approx(fy, -ox, 1e-12) || !approx(fz, 0, 1e-12) {
		Te.Errorf("inverse-rotated frequency is (%v,%v,%v)", fx, fy, fz)
	}
	//clouds rotate forward
	cl, err := NewRealVoxelCloud([]float64{1}, mustList(Te, []float64{-1, 0, 1}), 1)
	if err != nil {
		Te.Fatal(err)
	}
	crot, err := cl.RotateToPose(NewEulerPose(90, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	rl := crot.(*RealVoxelCloud).CoordinateList()
	if x, y, z := rl.At(0, 0), rl.At(0, 1), rl.At(0, 2); !approx(x, 0, 1e-12) || !approx(y, -1, 1e-12) || !approx(z, 1, 1e-12) {
		Te.Errorf("forward-rotated point is (%v,%v,%v), want (0,-1,1)", x, y, z)
	}
	if _, err := real3.RotateToPose(nil); err == nil {
		Te.Error("a nil pose should not rotate")
	}
}

func mustList(Te *testing.T, data []float64) *coords.List {
	l, err := coords.NewList(data)
	if err != nil {
		Te.Fatal(err)
	}
	return l
}

func TestFromAtoms(Te *testing.T) {
	atoms := mustList(Te, []float64{0, 0, 0})
	g, err := coords.NewGrid([]int{4, 4, 4}, 2)
	if err != nil {
		Te.Fatal(err)
	}
	vs := 2.0
	pot, err := RealVoxelGridFromAtoms(atoms, []int{6}, vs, g)
	if err != nil {
		Te.Fatal(err)
	}
	//the coordinate system is the rasterization grid in voxel units
	x, y, z := pot.CoordinateGrid().At(0, 0, 0)
	if x != -2 || y != -2 || z != -2 {
		Te.Errorf("grid in voxels is (%v,%v,%v), want (-2,-2,-2)", x, y, z)
	}
	ax, ay, az := pot.CoordinateGridInAngstroms().At(0, 0, 0)
	if ax != -4 || ay != -4 || az != -4 {
		Te.Errorf("grid in angstroms is (%v,%v,%v), want (-4,-4,-4)", ax, ay, az)
	}
	//the stored volume is the rasterized potential, axes swapped
	a, b, err := FormFactors([]int{6})
	if err != nil {
		Te.Fatal(err)
	}
	raster, err := BuildVoxelsFromAtoms(atoms, a, b, g)
	if err != nil {
		Te.Fatal(err)
	}
	swapped, err := SwapAxes01(raster)
	if err != nil {
		Te.Fatal(err)
	}
	got := fdata(Te, pot.RealGrid())
	want := fdata(Te, swapped)
	for i := range want {
		if got[i] != want[i] {
			Te.Errorf("rasterized volume differs at %d: %v vs %v", i, got[i], want[i])
			break
		}
	}
	//the Fourier variant keeps the total in its center bin
	fpot, err := FourierVoxelGridFromAtoms(atoms, []int{6}, vs, g)
	if err != nil {
		Te.Fatal(err)
	}
	sum := volumeSum(raster)
	dc, err := fpot.FourierGrid().At(2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !capprox(dc.(complex128), complex(sum, 0), 1e-9) {
		Te.Errorf("atom spectrum center bin is %v, want %v", dc, sum)
	}
	//the cloud variant drops the voxels too far from the atom to matter
	cpot, err := RealVoxelCloudFromAtoms(atoms, []int{6}, vs, g)
	if err != nil {
		Te.Fatal(err)
	}
	if cpot.Len() == 0 || cpot.Len() >= 64 {
		Te.Errorf("the default tolerance should drop some of the 64 voxels, got %d", cpot.Len())
	}
	//with a loose enough tolerance every voxel survives, since a
	//Gaussian never quite reaches zero
	all := DefaultOptions()
	all.Atol(1e-30)
	cpot, err = RealVoxelCloudFromAtoms(atoms, []int{6}, vs, g, all)
	if err != nil {
		Te.Fatal(err)
	}
	if cpot.Len() != 64 {
		Te.Errorf("no voxel should drop below 1e-30, got %d of 64", cpot.Len())
	}
	fmt.Println("atom potentials built, total:", sum)
}

func TestVoxelValidation(Te *testing.T) {
	v := testVolume(3)
	slice, err := coords.NewFrequencySlice([]int{3, 3})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := NewFourierVoxelGrid(nil, slice, 1); err == nil {
		Te.Error("a nil grid should fail")
	}
	if _, err := NewFourierVoxelGrid(v, slice, 1); err == nil {
		Te.Error("a real tensor is not a Fourier grid")
	}
	cdata := make([]complex128, 27)
	cv := tensor.New(tensor.WithShape(3, 3, 3), tensor.WithBacking(cdata))
	if _, err := NewFourierVoxelGrid(cv, slice, 0); err == nil {
		Te.Error("a zero voxel size should fail")
	}
	if _, err := NewFourierVoxelGrid(cv, nil, 1); err == nil {
		Te.Error("a nil slice should fail")
	}
	wrong, err := coords.NewFrequencySlice([]int{4, 4})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := NewFourierVoxelGrid(cv, wrong, 1); err == nil {
		Te.Error("mismatched slice dims should fail")
	}
	flat := tensor.New(tensor.WithShape(3, 9), tensor.WithBacking(make([]complex128, 27)))
	if _, err := NewFourierVoxelGrid(flat, slice, 1); err == nil {
		Te.Error("a 2-axis tensor is not a volume")
	}
	box := tensor.New(tensor.WithShape(3, 3, 2), tensor.WithBacking(make([]complex128, 18)))
	if _, err := NewFourierVoxelGrid(box, slice, 1); err == nil {
		Te.Error("a non-cubic volume should fail")
	}
	if _, err := RealVoxelGridFromVolume(cv, 1); err == nil {
		Te.Error("a complex tensor is not a real volume")
	}
	if _, err := RealVoxelGridFromVolume(v, -1); err == nil {
		Te.Error("a negative voxel size should fail")
	}
	if _, err := NewRealVoxelCloud([]float64{1}, nil, 1); err == nil {
		Te.Error("weights without coordinates should fail")
	}
	if _, err := NewRealVoxelCloud([]float64{1, 2}, mustList(Te, []float64{0, 0, 0}), 1); err == nil {
		Te.Error("mismatched weight and coordinate counts should fail")
	}
}
