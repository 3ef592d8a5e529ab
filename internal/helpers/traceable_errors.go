package helpers

import (
	"strings"

	"github.com/ztrue/tracerr"
)

// Error carries one or more errors, each with the stack trace captured where
// it was created or wrapped. The zero value means "no error".
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

var _ error = Error{}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) IsNil() bool {
	return e.First() == nil
}

func (e Error) HasError() bool {
	return !e.IsNil()
}

func (e Error) Error() string {
	result := []string{}
	for _, err := range e.errs {
		result = append(result, Indent(tracerr.Sprint(err), ".  "))
	}
	return strings.Join(result, "\n")
}

// String renders every error with colored source context around the frames.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSourceColor(err, 3) + "\n"
	}
	return result
}

// Message is the error text without stack traces.
func (e Error) Message() string {
	return strings.Join(MapSlice(e.errs, func(err tracerr.Error) string {
		return err.Error()
	}), "; ")
}

func (e Error) First() tracerr.Error {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

// Unwrap exposes the underlying errors to errors.Is and errors.As.
func (e Error) Unwrap() []error {
	return MapSlice(e.errs, func(err tracerr.Error) error {
		return err
	})
}

func Wrap(err error) Error {
	if IsNil(err) {
		return NilError
	}
	if traceableErr, ok := err.(Error); ok {
		return traceableErr
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return err.HasError()
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}

	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}
