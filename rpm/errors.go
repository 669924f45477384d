/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package rpm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error by its cause.
type Kind int

const (
	// KindIO covers failures reading from or writing to the underlying stream.
	KindIO Kind = iota
	// KindMalformedInput covers bad magic bytes, versions, sizes or alignment.
	KindMalformedInput
	// KindUnknownTag covers an index entry whose tag is not a known Tag/SignatureTag value.
	KindUnknownTag
	// KindTypeMismatch covers accessing a header entry as the wrong Value kind.
	KindTypeMismatch
	// KindTagNotFound covers a lookup for a tag that is not present in the header.
	KindTagNotFound
	// KindInvalidPath covers a file added to a Builder whose destination path
	// has no parent directory, or is not valid UTF-8.
	KindInvalidPath
	// KindCompressorFailed covers a failure in the CPIO or XZ backend.
	KindCompressorFailed
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindMalformedInput:
		return "MalformedInput"
	case KindUnknownTag:
		return "UnknownTag"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindTagNotFound:
		return "TagNotFound"
	case KindInvalidPath:
		return "InvalidPath"
	case KindCompressorFailed:
		return "CompressorFailed"
	default:
		return "Unknown"
	}
}

// Error is the one error kind used throughout this module. It always carries
// a human-readable message (usually naming the offending value or tag) and,
// for errors that wrap a lower-level fault, a cause that can be recovered
// with errors.Unwrap/errors.As.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// newError builds an Error with no wrapped cause.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewError builds an Error with no wrapped cause. Exported for use by
// collaborating packages (e.g. rpmbuild) that need to report a failure in
// one of this package's error kinds without importing unexported helpers.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return newError(kind, format, args...)
}

// WrapError builds an Error that wraps a lower-level cause. See NewError.
func WrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return wrapError(kind, cause, format, args...)
}

// wrapError builds an Error that wraps a lower-level cause (I/O, compression
// backend, etc.), using github.com/pkg/errors so the original stack trace
// is preserved in the cause chain.
func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.WithStack(cause),
	}
}
