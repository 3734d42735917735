/*
 * specimen.go, part of gocryo.
 *
 *
 * Copyright 2024 Raul Mera rauldotmeraatusachdotcl
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
)

//Ensemble is a biological specimen: one or more conformational states
//of a scattering potential, a pose, and the conformation currently
//selected. Like the potentials it holds, an Ensemble never changes;
//the With methods return modified copies.
type Ensemble struct {
	states       []Potential
	pose         Pose
	conformation int
}

//NewEnsemble builds a specimen from its conformational states. A nil
//pose means the identity orientation. The selected conformation starts
//at state 0.
func NewEnsemble(states []Potential, pose Pose) (*Ensemble, error) {
	if len(states) == 0 {
		return nil, CError{NoStates, []string{"NewEnsemble"}}
	}
	for i, s := range states {
		if s == nil {
			return nil, CError{fmt.Sprintf("state %d: %s", i, NilPotential), []string{"NewEnsemble"}}
		}
	}
	if pose == nil {
		pose = NewEulerPose(0, 0, 0)
	}
	own := make([]Potential, len(states))
	copy(own, states)
	return &Ensemble{states: own, pose: pose, conformation: 0}, nil
}

//NStates returns the number of conformational states.
func (E *Ensemble) NStates() int { return len(E.states) }

//Conformation returns the index of the selected state.
func (E *Ensemble) Conformation() int { return E.conformation }

//Pose returns the pose of the specimen.
func (E *Ensemble) Pose() Pose { return E.pose }

//Current returns the selected state, in its stored, unrotated
//orientation.
func (E *Ensemble) Current() Potential { return E.states[E.conformation] }

//WithConformation returns a copy of the ensemble with the given state
//selected.
func (E *Ensemble) WithConformation(i int) (*Ensemble, error) {
	if i < 0 || i >= len(E.states) {
		return nil, CError{fmt.Sprintf("conformation %d outside the %d states", i, len(E.states)), []string{"Ensemble.WithConformation"}}
	}
	return &Ensemble{states: E.states, pose: E.pose, conformation: i}, nil
}

//WithPose returns a copy of the ensemble at a new pose.
func (E *Ensemble) WithPose(p Pose) (*Ensemble, error) {
	if p == nil {
		return nil, CError{NilPose, []string{"Ensemble.WithPose"}}
	}
	return &Ensemble{states: E.states, pose: p, conformation: E.conformation}, nil
}

//PotentialAtPose returns the selected state rotated to the pose of the
//ensemble, the representation downstream projections consume.
func (E *Ensemble) PotentialAtPose() (Potential, error) {
	r, err := E.Current().RotateToPose(E.pose)
	if err != nil {
		return nil, errDecorate(err, "Ensemble.PotentialAtPose")
	}
	return r, nil
}
