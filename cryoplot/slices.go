/*
 * slices.go, part of gocryo.
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

package cryoplot

import (
	"fmt"
	"math"
	"math/cmplx"

	cryo "github.com/rmera/gocryo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gorgonia.org/tensor"
)

//sliceGrid adapts one plane of a volume to the heat map plotter.
type sliceGrid struct {
	data []float64
	rows int
	cols int
}

func (g *sliceGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g *sliceGrid) Z(c, r int) float64 { return g.data[r*g.cols+c] }
func (g *sliceGrid) X(c int) float64    { return float64(c) }
func (g *sliceGrid) Y(r int) float64    { return float64(r) }

//centralSlice takes the middle plane along the first axis. Complex
//volumes give the magnitude, which is what one wants to look at in a
//spectrum anyway.
func centralSlice(t *tensor.Dense) (*sliceGrid, error) {
	if t == nil {
		return nil, fmt.Errorf("centralSlice: nil volume")
	}
	shape := t.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("centralSlice: need a 3-axis volume, got %v", shape)
	}
	mid := shape[0] / 2
	rows, cols := shape[1], shape[2]
	out := make([]float64, rows*cols)
	base := mid * rows * cols
	switch data := t.Data().(type) {
	case []float64:
		copy(out, data[base:base+rows*cols])
	case []complex128:
		for i := 0; i < rows*cols; i++ {
			out[i] = cmplx.Abs(data[base+i])
		}
	default:
		return nil, fmt.Errorf("centralSlice: the volume must hold float64 or complex128 entries")
	}
	return &sliceGrid{data: out, rows: rows, cols: cols}, nil
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//CentralSliceHeatMap draws the central plane of a volume, along its
//first axis, as a heat map, and saves it as plotname.png. Complex
//volumes are drawn as their magnitude.
func CentralSliceHeatMap(t *tensor.Dense, title, plotname string) error {
	g, err := centralSlice(t)
	if err != nil {
		return err
	}
	p := basicPlot(title, "", "")
	p.Add(plotter.NewHeatMap(g, palette.Heat(12, 1)))
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

//PotentialHeatMap draws the central slice of any grid-backed potential:
//the voxel values for the real-space ones, the spectrum magnitude or
//the spline coefficients for the Fourier-space ones. A voxel cloud has
//no grid to slice, so it is an error here.
func PotentialHeatMap(pot cryo.Potential, title, plotname string) error {
	if pot == nil {
		return fmt.Errorf("PotentialHeatMap: nil potential")
	}
	switch v := pot.(type) {
	case *cryo.RealVoxelGrid:
		return CentralSliceHeatMap(v.RealGrid(), title, plotname)
	case *cryo.FourierVoxelGrid:
		return CentralSliceHeatMap(v.FourierGrid(), title, plotname)
	case *cryo.FourierVoxelGridInterpolator:
		return CentralSliceHeatMap(v.Coefficients(), title, plotname)
	default:
		return fmt.Errorf("PotentialHeatMap: nothing to slice in a %T", pot)
	}
}

//RadialProfile averages a volume over spherical shells around its
//center, one shell per voxel of radius. It returns the radii, in
//voxels, and the shell means. Complex volumes are averaged as their
//magnitude.
func RadialProfile(t *tensor.Dense) ([]float64, []float64, error) {
	if t == nil {
		return nil, nil, fmt.Errorf("RadialProfile: nil volume")
	}
	shape := t.Shape()
	if len(shape) != 3 {
		return nil, nil, fmt.Errorf("RadialProfile: need a 3-axis volume, got %v", shape)
	}
	var value func(int) float64
	switch data := t.Data().(type) {
	case []float64:
		value = func(i int) float64 { return data[i] }
	case []complex128:
		value = func(i int) float64 { return cmplx.Abs(data[i]) }
	default:
		return nil, nil, fmt.Errorf("RadialProfile: the volume must hold float64 or complex128 entries")
	}
	maxR := 0
	for _, n := range shape {
		if n/2 > maxR {
			maxR = n / 2
		}
	}
	sums := make([]float64, maxR+1)
	counts := make([]int, maxR+1)
	o := 0
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			for k := 0; k < shape[2]; k++ {
				di := float64(i - shape[0]/2)
				dj := float64(j - shape[1]/2)
				dk := float64(k - shape[2]/2)
				shell := int(math.Round(math.Sqrt(di*di + dj*dj + dk*dk)))
				if shell <= maxR {
					sums[shell] += value(o)
					counts[shell]++
				}
				o++
			}
		}
	}
	radii := make([]float64, 0, maxR+1)
	means := make([]float64, 0, maxR+1)
	for s, c := range counts {
		if c == 0 {
			continue
		}
		radii = append(radii, float64(s))
		means = append(means, sums[s]/float64(c))
	}
	return radii, means, nil
}

//RadialProfilePlot draws the radial shell means of a volume against the
//radius and saves the plot as plotname.png.
func RadialProfilePlot(t *tensor.Dense, title, plotname string) error {
	radii, means, err := RadialProfile(t)
	if err != nil {
		return err
	}
	pts := make(plotter.XYs, len(radii))
	for i := range radii {
		pts[i].X = radii[i]
		pts[i].Y = means[i]
	}
	p := basicPlot(title, "r (voxels)", "shell mean")
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
