/*
 * raster.go, part of gocryo.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//EvaluateGaussianPotential evaluates one 3D Gaussian over every voxel
//center of the grid: a*(4pi/b)^(3/2) * exp(-4pi^2*r^2/b), with r the
//distance to pos. Positions and the grid are in angstroms, b in square
//angstroms. This is the real-space density whose scattering factor is
//a*exp(-b*s^2/4).
func EvaluateGaussianPotential(grid *coords.Grid, pos []float64, a, b float64) (*tensor.Dense, error) {
	gdata, dims, err := rasterGrid(grid, "EvaluateGaussianPotential")
	if err != nil {
		return nil, err
	}
	if len(pos) != 3 {
		return nil, CError{fmt.Sprintf("a position needs 3 components, got %d", len(pos)), []string{"EvaluateGaussianPotential"}}
	}
	if b <= 0 {
		return nil, CError{"gaussian widths must be positive", []string{"EvaluateGaussianPotential"}}
	}
	acc := make([]float64, dims[0]*dims[1]*dims[2])
	addGaussian(acc, gdata, pos[0], pos[1], pos[2], a, b)
	return tensor.New(tensor.WithShape(dims...), tensor.WithBacking(acc)), nil
}

//EvaluateAtomPotential evaluates the potential of one atom over every
//voxel center of the grid, as the sum of the Gaussians given by the
//amplitudes a and widths b, usually the 5 terms of its scattering
//factor fit.
func EvaluateAtomPotential(grid *coords.Grid, pos []float64, a, b []float64) (*tensor.Dense, error) {
	gdata, dims, err := rasterGrid(grid, "EvaluateAtomPotential")
	if err != nil {
		return nil, err
	}
	if len(pos) != 3 {
		return nil, CError{fmt.Sprintf("a position needs 3 components, got %d", len(pos)), []string{"EvaluateAtomPotential"}}
	}
	if len(a) != len(b) || len(a) == 0 {
		return nil, CError{fmt.Sprintf("amplitudes and widths must come in equal, nonzero numbers, got %d and %d", len(a), len(b)), []string{"EvaluateAtomPotential"}}
	}
	for _, w := range b {
		if w <= 0 {
			return nil, CError{"gaussian widths must be positive", []string{"EvaluateAtomPotential"}}
		}
	}
	acc := make([]float64, dims[0]*dims[1]*dims[2])
	for j := range a {
		addGaussian(acc, gdata, pos[0], pos[1], pos[2], a[j], b[j])
	}
	return tensor.New(tensor.WithShape(dims...), tensor.WithBacking(acc)), nil
}

//BuildVoxelsFromAtoms rasterizes a set of atoms onto the grid, each atom
//a sum of Gaussians: row i of the matrices a and b holds the amplitudes
//and widths for atom i, the rows of atoms its position in angstroms.
//The work is split among as many goroutines as the Cpus option says,
//each accumulating its own volume, so the result does not depend on
//scheduling.
func BuildVoxelsFromAtoms(atoms *coords.List, a, b *mat.Dense, grid *coords.Grid, options ...*Options) (*tensor.Dense, error) {
	opt := pickOptions(options)
	gdata, dims, err := rasterGrid(grid, "BuildVoxelsFromAtoms")
	if err != nil {
		return nil, err
	}
	if atoms == nil {
		return nil, CError{NilList, []string{"BuildVoxelsFromAtoms"}}
	}
	natoms := atoms.Len()
	if natoms == 0 {
		return nil, CError{"need at least one atom", []string{"BuildVoxelsFromAtoms"}}
	}
	if a == nil || b == nil {
		return nil, CError{"nil form factor matrices", []string{"BuildVoxelsFromAtoms"}}
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != natoms || br != natoms || ac != bc || ac == 0 {
		return nil, CError{fmt.Sprintf("form factor matrices must be %dx%d, got %dx%d and %dx%d", natoms, ac, ar, ac, br, bc), []string{"BuildVoxelsFromAtoms"}}
	}
	for i := 0; i < br; i++ {
		for j := 0; j < bc; j++ {
			if b.At(i, j) <= 0 {
				return nil, CError{"gaussian widths must be positive", []string{"BuildVoxelsFromAtoms"}}
			}
		}
	}
	cpus := opt.Cpus()
	if cpus > natoms {
		cpus = natoms
	}
	chunk := natoms / cpus
	res := make([]chan []float64, 0, cpus)
	for w := 0; w < cpus; w++ {
		lo := w * chunk
		hi := lo + chunk
		if w == cpus-1 {
			hi = natoms
		}
		res = append(res, make(chan []float64))
		go rasterChunk(atoms, a, b, gdata, dims, lo, hi, res[w])
	}
	total := make([]float64, dims[0]*dims[1]*dims[2])
	//the parts come back in launch order, so the sum is deterministic
	for _, c := range res {
		floats.Add(total, <-c)
	}
	return tensor.New(tensor.WithShape(dims...), tensor.WithBacking(total)), nil
}

//rasterChunk accumulates the atoms lo to hi into its own fresh volume
//and sends it back when done.
func rasterChunk(atoms *coords.List, a, b *mat.Dense, gdata []float64, dims []int, lo, hi int, out chan<- []float64) {
	acc := make([]float64, dims[0]*dims[1]*dims[2])
	_, terms := a.Dims()
	for i := lo; i < hi; i++ {
		px := atoms.At(i, 0)
		py := atoms.At(i, 1)
		pz := atoms.At(i, 2)
		for j := 0; j < terms; j++ {
			addGaussian(acc, gdata, px, py, pz, a.At(i, j), b.At(i, j))
		}
	}
	out <- acc
}

//addGaussian adds one Gaussian to the accumulator, which runs over the
//voxel centers in the same row-major order as the grid.
func addGaussian(acc, gdata []float64, px, py, pz, a, b float64) {
	bInv := 4 * math.Pi / b
	amp := a * bInv * math.Sqrt(bInv)
	pre := math.Pi * bInv
	for v := range acc {
		p := v * 3
		dx := gdata[p] - px
		dy := gdata[p+1] - py
		dz := gdata[p+2] - pz
		acc[v] += amp * math.Exp(-pre*(dx*dx+dy*dy+dz*dz))
	}
}

//rasterGrid pulls the flat coordinate data and the volume dims out of a
//grid.
func rasterGrid(grid *coords.Grid, caller string) ([]float64, []int, error) {
	if grid == nil {
		return nil, nil, CError{NilGrid, []string{caller}}
	}
	s := grid.Shape()
	if len(s) != 4 || s[3] != 3 {
		panic(ErrInconsistency)
	}
	return grid.Data().([]float64), []int{s[0], s[1], s[2]}, nil
}
