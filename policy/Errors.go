package policy

import "errors"

// Error implements errors unique to the policy registry.
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

var ErrNotFound error = errors.New("policy not found")

// IsNotFound returns whether or not an error reports that a referenced
// policy id is absent from the registry.
func IsNotFound(err error) bool {
	if policyErr, ok := err.(*Error); ok {
		err = policyErr.Err
	}
	return err == ErrNotFound
}
