/*
 * errors.go, part of gocryo.
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

//CError is the concrete error type of this package. The subpackages
//define their own, all satisfying the Error interface.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error and adds the caller's
//name to its decoration before returning it. A nil error passes
//through, so call sites can decorate unconditionally. Calling it with
//a non-nil error that does not satisfy Error is a bug, and panics.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type for the messages of panics raised in this package,
//so they can be told apart in a recover. It satisfies error anyway.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData       = PanicMsg("gocryo: nil data where a value was promised")
	ErrInconsistency = PanicMsg("gocryo: inconsistent internal state")
)

//Messages for the error values returned by this package.
const (
	NilTensor          = "nil tensor"
	NilPotential       = "nil potential"
	NilPose            = "nil pose"
	NilGrid            = "nil coordinate grid"
	NilList            = "nil coordinate list"
	NonNumericalTensor = "tensor elements must be float64 or complex128"
	NotVolume          = "tensor must have 3 axes"
	NotCubic           = "voxel volume must be cubic"
	RealTensorNeeded   = "tensor elements must be float64"
	ComplexNeeded      = "tensor elements must be complex128"
	BadVoxelSize       = "voxel size must be positive"
	PadScaleTooSmall   = "pad scale must be greater than 1.0"
	CropScaleTooBig    = "crop scale must be less than 1.0"
	GridAndCrop        = "an explicit coordinate grid and a crop scale cannot be given together"
	NoStates           = "an ensemble needs at least one state"
)
