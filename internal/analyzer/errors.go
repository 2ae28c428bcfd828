package analyzer

import "errors"

// ErrPathNotFound is matched by errors.Is for a missing analysis root.
var ErrPathNotFound = errors.New("path does not exist")

var errIsDir = errors.New("is a directory")

// PathNotFoundError reports that the analysis root could not be found.
type PathNotFoundError struct {
	Path string
	Err  error
}

func (e *PathNotFoundError) Error() string {
	return "path does not exist: " + e.Path
}

func (e *PathNotFoundError) Unwrap() error {
	return e.Err
}

func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}
