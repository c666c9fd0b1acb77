/*
 * errors.go, part of gorism.
 *
 * Copyright 2025 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 */

package rism

import (
	"errors"
	"fmt"
)

//Error is the general error type of gorism. It carries a message, a list of
//"decorations" (the functions the error went through on its way up) and whether
//the error should stop the calculation.
type Error struct {
	message  string
	deco     []string
	critical bool
	detail   string
	err      error //wrapped error, if any
}

//NewError returns a new Error with the given message, produced in the function caller.
func NewError(message, caller string, critical bool) Error {
	return Error{message: message, deco: []string{caller}, critical: critical}
}

//WrapError returns a new Error wrapping err. The message of err is kept.
func WrapError(err error, caller string, critical bool) Error {
	return Error{message: err.Error(), deco: []string{caller}, critical: critical, err: err}
}

//Error returns a string with an error message, including the decoration, if any.
func (err Error) Error() string {
	msg := err.message
	if err.detail != "" {
		msg += ": " + err.detail
	}
	if len(err.deco) == 0 {
		return msg
	}
	ret := err.deco[len(err.deco)-1]
	for i := len(err.deco) - 2; i >= 0; i-- {
		ret += "/" + err.deco[i]
	}
	return fmt.Sprintf("gorism/%s: %s", ret, msg)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the wrapped error, so errors.Is and errors.As see through Error.
func (err Error) Unwrap() error { return err.err }

//Is reports whether target is an Error with the same message. It allows
//the package-level sentinels to be matched after decoration.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return t.message == err.message
}

//Decorate adds caller to the decorations of err, if err is an Error, and returns it.
//Other errors are wrapped in a new, critical, Error.
func Decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.deco = append([]string(nil), e.deco...)
		e.Decorate(caller)
		return e
	}
	return WrapError(err, caller, true)
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

//Panics for programming errors. Those should never reach a user.
const (
	ErrShape      = PanicMsg("gorism: Dimension mismatch")
	ErrGridMix    = PanicMsg("gorism: Fields defined on different grids")
	ErrNilField   = PanicMsg("gorism: Nil field given")
	ErrOriginMix  = PanicMsg("gorism: Fields with different origin conventions")
	ErrOutOfRange = PanicMsg("gorism: Index out of range")
)

//Sentinel errors. Compare with errors.Is.
var (
	ErrBondShape = Error{message: "bond table does not match the number of sites", critical: true}
	ErrClosure   = Error{message: "unknown closure", critical: true}
	ErrGrid      = Error{message: "invalid grid", critical: true}
	ErrSingular  = Error{message: "singular linear system", critical: true}
	ErrMolecule  = Error{message: "invalid molecule", critical: true}
	ErrRestart   = Error{message: "restart data does not match the problem", critical: false}
)

//errorf returns a copy of the sentinel s with extra details appended to the message.
//The copy still matches s with errors.Is.
func errorf(s Error, caller, format string, a ...interface{}) error {
	return Error{message: s.message, critical: s.critical, deco: []string{caller}, detail: fmt.Sprintf(format, a...)}
}

//Errorf is errorf for the sub-packages.
func Errorf(s Error, caller, format string, a ...interface{}) error {
	return errorf(s, caller, format, a...)
}
