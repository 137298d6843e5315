package ogrerr

import "errors"

// Error couples a nonzero Code with the native entry point that returned it.
type Error struct {
	Code   Code
	Method string
}

// New translates the status returned by a native call into an error, nil for
// None. Method names the failing entry point, e.g. "OSRImportFromEPSG".
func New(c Code, method string) error {
	if c == None {
		return nil
	}
	return &Error{Code: c, Method: method}
}

func (e *Error) Error() string {
	if err := e.Code.Err(); err != nil {
		return e.Method + ": " + err.Error()
	}
	return e.Method + ": " + e.Code.String()
}

// Unwrap exposes the code's sentinel, so errors.Is(err, UnsupportedSRS.Err())
// matches regardless of which method raised it.
func (e *Error) Unwrap() error {
	return e.Code.Err()
}

// CodeOf recovers the status code from an error chain produced by New.
func CodeOf(err error) (Code, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code, true
	}
	return None, false
}
