/*
 * specimen_test.go, part of gocryo.
 *
 *
 * Copyright 2024 Raul Mera rauldotmeraatusachdotcl
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
	"testing"
)

func twoStates(Te *testing.T) []Potential {
	a, err := RealVoxelGridFromVolume(testVolume(3), 1)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := RealVoxelGridFromVolume(testVolume(4), 1)
	if err != nil {
		Te.Fatal(err)
	}
	return []Potential{a, b}
}

func TestEnsemble(Te *testing.T) {
	e, err := NewEnsemble(twoStates(Te), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if e.NStates() != 2 {
		Te.Fatalf("ensemble has %d states, want 2", e.NStates())
	}
	if e.Conformation() != 0 {
		Te.Errorf("a fresh ensemble should sit on state 0, not %d", e.Conformation())
	}
	if e.Current().Shape()[0] != 3 {
		Te.Errorf("state 0 shape is %v", e.Current().Shape())
	}
	second, err := e.WithConformation(1)
	if err != nil {
		Te.Fatal(err)
	}
	if second.Current().Shape()[0] != 4 {
		Te.Errorf("state 1 shape is %v", second.Current().Shape())
	}
	//the original is untouched
	if e.Conformation() != 0 {
		Te.Error("switching the conformation should not touch the original")
	}
	if _, err := e.WithConformation(2); err == nil {
		Te.Error("a conformation outside the states should fail")
	}
	if _, err := e.WithConformation(-1); err == nil {
		Te.Error("a negative conformation should fail")
	}
	fmt.Println("ensemble with", e.NStates(), "states")
}

func TestEnsemblePose(Te *testing.T) {
	e, err := NewEnsemble(twoStates(Te), nil)
	if err != nil {
		Te.Fatal(err)
	}
	//the default pose is the identity, so the potential comes out with
	//its coordinates unmoved
	pot, err := e.PotentialAtPose()
	if err != nil {
		Te.Fatal(err)
	}
	rg := pot.(*RealVoxelGrid)
	x, y, z := rg.CoordinateGrid().At(0, 0, 0)
	if x != -1 || y != -1 || z != -1 {
		Te.Errorf("identity pose moved the grid to (%v,%v,%v)", x, y, z)
	}
	posed, err := e.WithPose(NewEulerPose(90, 0, 0))
	if err != nil {
		Te.Fatal(err)
	}
	pot, err = posed.PotentialAtPose()
	if err != nil {
		Te.Fatal(err)
	}
	rg = pot.(*RealVoxelGrid)
	//(x,y,z) goes to (-y,x,z)
	x, y, z = rg.CoordinateGrid().At(0, 0, 0)
	if !approx(x, 1, 1e-12) || !approx(y, -1, 1e-12) || !approx(z, -1, 1e-12) {
		Te.Errorf("posed grid point is (%v,%v,%v), want (1,-1,-1)", x, y, z)
	}
	//the original ensemble keeps the identity
	if _, _, psi := e.Pose().(*EulerPose).Angles(); psi != 0 {
		Te.Error("setting a pose should not touch the original")
	}
	if _, err := posed.WithPose(nil); err == nil {
		Te.Error("a nil pose should fail")
	}
	fmt.Println("ensemble posed and projected")
}

func TestEnsembleValidation(Te *testing.T) {
	if _, err := NewEnsemble(nil, nil); err == nil {
		Te.Error("an empty ensemble should fail")
	}
	states := twoStates(Te)
	states[1] = nil
	if _, err := NewEnsemble(states, nil); err == nil {
		Te.Error("a nil state should fail")
	}
}
