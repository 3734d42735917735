/*
 * pose.go, part of gocryo.
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
	"math"

	"github.com/rmera/gocryo/coords"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gorgonia.org/tensor"
)

//EulerPose is an orientation given as ZYZ Euler angles, in degrees.
//Its rotation matrix is Rz(phi)*Ry(theta)*Rz(psi), acting on column
//vectors.
type EulerPose struct {
	phi   float64
	theta float64
	psi   float64
}

//NewEulerPose returns the pose for the given ZYZ angles, in degrees.
//All zeros is the identity.
func NewEulerPose(phi, theta, psi float64) *EulerPose {
	return &EulerPose{phi: phi, theta: theta, psi: psi}
}

//Angles returns the phi, theta and psi angles, in degrees.
func (P *EulerPose) Angles() (float64, float64, float64) {
	return P.phi, P.theta, P.psi
}

//Rotation returns the 3x3 rotation matrix of the pose, fresh on every
//call.
func (P *EulerPose) Rotation() *mat.Dense {
	zy := mat.NewDense(3, 3, nil)
	zy.Mul(rotZ(P.phi), rotY(P.theta))
	r := mat.NewDense(3, 3, nil)
	r.Mul(zy, rotZ(P.psi))
	return r
}

func rotZ(deg float64) *mat.Dense {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func rotY(deg float64) *mat.Dense {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

//QuatPose is an orientation given as a unit quaternion.
type QuatPose struct {
	q quat.Number
}

//NewQuatPose returns the pose for the quaternion w+xi+yj+zk, normalized
//to unit length. A zero quaternion is an error.
func NewQuatPose(w, x, y, z float64) (*QuatPose, error) {
	q := quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
	n := quat.Abs(q)
	if n == 0 {
		return nil, CError{"a pose quaternion cannot be zero", []string{"NewQuatPose"}}
	}
	return &QuatPose{q: quat.Scale(1/n, q)}, nil
}

//Quaternion returns the w, x, y and z components of the (normalized)
//quaternion.
func (P *QuatPose) Quaternion() (float64, float64, float64, float64) {
	return P.q.Real, P.q.Imag, P.q.Jmag, P.q.Kmag
}

//Rotation returns the 3x3 rotation matrix of the pose, fresh on every
//call. Column j is the rotated j-th basis vector, obtained from the
//quaternion sandwich q*e*q'.
func (P *QuatPose) Rotation() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	basis := [3]quat.Number{{Imag: 1}, {Jmag: 1}, {Kmag: 1}}
	for j, e := range basis {
		v := quat.Mul(quat.Mul(P.q, e), quat.Conj(P.q))
		r.Set(0, j, v.Imag)
		r.Set(1, j, v.Jmag)
		r.Set(2, j, v.Kmag)
	}
	return r
}

//RotateCoordinates returns a fresh list with every point of c rotated by
//the pose. The points are rows, so the forward rotation multiplies by
//the transpose of the rotation matrix, and the inverse by the matrix
//itself.
func RotateCoordinates(c *coords.List, p Pose, inverse bool) (*coords.List, error) {
	if c == nil {
		return nil, CError{NilList, []string{"RotateCoordinates"}}
	}
	if p == nil {
		return nil, CError{NilPose, []string{"RotateCoordinates"}}
	}
	n := c.Len()
	out := coords.ZerosList(n)
	if inverse {
		out.Mul(c.Dense, p.Rotation())
	} else {
		out.Mul(c.Dense, p.Rotation().T())
	}
	return out, nil
}

//RotateGrid returns a fresh coordinate grid with every point of g
//rotated by the pose.
func RotateGrid(g *coords.Grid, p Pose, inverse bool) (*coords.Grid, error) {
	if g == nil {
		return nil, CError{NilGrid, []string{"RotateGrid"}}
	}
	t, err := rotateTensor(g.Dense, p, inverse, "RotateGrid")
	if err != nil {
		return nil, err
	}
	out, err := coords.GridFromTensor(t)
	if err != nil {
		return nil, errDecorate(err, "RotateGrid")
	}
	return out, nil
}

//RotateFrequencySlice returns a fresh frequency slice with every point
//of f rotated by the pose.
func RotateFrequencySlice(f *coords.FrequencySlice, p Pose, inverse bool) (*coords.FrequencySlice, error) {
	if f == nil {
		return nil, CError{NilGrid, []string{"RotateFrequencySlice"}}
	}
	t, err := rotateTensor(f.Dense, p, inverse, "RotateFrequencySlice")
	if err != nil {
		return nil, err
	}
	out, err := coords.FrequencySliceFromTensor(t)
	if err != nil {
		return nil, errDecorate(err, "RotateFrequencySlice")
	}
	return out, nil
}

//rotateTensor rotates a (...,3) coordinate tensor by viewing it as a
//list of points.
func rotateTensor(t *tensor.Dense, p Pose, inverse bool, caller string) (*tensor.Dense, error) {
	if p == nil {
		return nil, CError{NilPose, []string{caller}}
	}
	data, err := asFloats(t, caller)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != 3 {
		return nil, CError{"coordinate tensors must have 3 as their last axis", []string{caller}}
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	pts := mat.NewDense(len(cp)/3, 3, cp)
	out := mat.NewDense(len(cp)/3, 3, nil)
	if inverse {
		out.Mul(pts, p.Rotation())
	} else {
		out.Mul(pts, p.Rotation().T())
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out.RawMatrix().Data)), nil
}
