/*
 * coords.go, part of gocryo.
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

package coords

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//Grid is the coordinate system of a 3D voxel volume: a (N1,N2,N3,3)
//tensor whose entry (i,j,k) holds the position of that voxel center,
//(i-N1/2, j-N2/2, k-N3/2) times the spacing. The center comes from
//integer division, the same center the discrete transform shifts use.
type Grid struct {
	*tensor.Dense
}

//NewGrid builds the coordinate grid for a volume with the given dims.
//spacing defaults to 1, which leaves the coordinates in voxel units.
func NewGrid(dims []int, spacing ...float64) (*Grid, error) {
	sp := 1.0
	if len(spacing) > 0 {
		sp = spacing[0]
	}
	if len(dims) != 3 {
		return nil, Error{fmt.Sprintf("a coordinate grid needs 3 dims, got %d", len(dims)), []string{"NewGrid"}, true}
	}
	for _, n := range dims {
		if n <= 0 {
			return nil, Error{fmt.Sprintf("non-positive dim in %v", dims), []string{"NewGrid"}, true}
		}
	}
	n1, n2, n3 := dims[0], dims[1], dims[2]
	backing := make([]float64, n1*n2*n3*3)
	p := 0
	for i := 0; i < n1; i++ {
		x := float64(i-n1/2) * sp
		for j := 0; j < n2; j++ {
			y := float64(j-n2/2) * sp
			for k := 0; k < n3; k++ {
				backing[p] = x
				backing[p+1] = y
				backing[p+2] = float64(k-n3/2) * sp
				p += 3
			}
		}
	}
	return &Grid{tensor.New(tensor.WithShape(n1, n2, n3, 3), tensor.WithBacking(backing))}, nil
}

//GridFromTensor wraps an already-built coordinate tensor, of shape
//(N1,N2,N3,3), as a Grid. Rotated grids come through here, so no
//regularity is checked, only the shape.
func GridFromTensor(t *tensor.Dense) (*Grid, error) {
	if t == nil {
		return nil, Error{"nil tensor", []string{"GridFromTensor"}, true}
	}
	s := t.Shape()
	if len(s) != 4 || s[3] != 3 {
		return nil, Error{fmt.Sprintf("a coordinate grid needs shape (N1,N2,N3,3), got %v", s), []string{"GridFromTensor"}, true}
	}
	if _, ok := t.Data().([]float64); !ok {
		return nil, Error{"a coordinate grid needs float64 entries", []string{"GridFromTensor"}, true}
	}
	return &Grid{t}, nil
}

//At returns the three components of the voxel center (i,j,k).
func (G *Grid) At(i, j, k int) (float64, float64, float64) {
	s := G.Shape()
	if i < 0 || i >= s[0] || j < 0 || j >= s[1] || k < 0 || k >= s[2] {
		panic(ErrOutOfRange)
	}
	d := G.Data().([]float64)
	p := ((i*s[1]+j)*s[2] + k) * 3
	return d[p], d[p+1], d[p+2]
}

//Scaled returns a fresh grid with every component multiplied by s; unit
//conversions go through here and never touch the receiver.
func (G *Grid) Scaled(s float64) *Grid {
	d := G.Data().([]float64)
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = v * s
	}
	sh := G.Shape()
	return &Grid{tensor.New(tensor.WithShape(sh...), tensor.WithBacking(out))}
}

//List is a flat set of points in 3D space, one row per point, wrapping a
//gonum Dense so the whole mat API stays available on it.
type List struct {
	*mat.Dense
}

//NewList builds a point list from a flat slice laid out row after row.
func NewList(data []float64) (*List, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("point data length %d is not divisible by %d", l, cols), []string{"NewList"}, true}
	}
	return &List{mat.NewDense(l/cols, cols, data)}, nil
}

//ZerosList returns a list of n points, all at the origin.
func ZerosList(n int) *List {
	return &List{mat.NewDense(n, 3, make([]float64, n*3))}
}

//ListFromDense wraps an already-built matrix as a point list. The matrix
//must have 3 columns.
func ListFromDense(d *mat.Dense) (*List, error) {
	_, c := d.Dims()
	if c != 3 {
		return nil, Error{fmt.Sprintf("a point list needs 3 columns, got %d", c), []string{"ListFromDense"}, true}
	}
	return &List{d}, nil
}

//Len returns the number of points in the list.
func (L *List) Len() int {
	r, _ := L.Dims()
	return r
}

//Scaled returns a fresh list with every component multiplied by s.
func (L *List) Scaled(s float64) *List {
	r, c := L.Dims()
	out := mat.NewDense(r, c, nil)
	out.Scale(s, L.Dense)
	return &List{out}
}

//Errors

//Error is the error type for this package. It implements cryo.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is the type for the messages of panics raised in this package,
//so they can be told apart in a recover. It satisfies error anyway.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrOutOfRange = PanicMsg("gocryo/coords: index out of range")
)
