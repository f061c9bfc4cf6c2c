package cssprune

import (
	"errors"
	"fmt"
)

// File operations that can fail for a single input
const (
	OpRead   = "read"
	OpDecode = "decode"
	OpParse  = "parse"
)

// ErrInvalidUTF8 is returned for inputs that are not valid UTF-8
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// FileError records why one input file was skipped
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func fileError(path, op string, err error) *FileError {
	return &FileError{Path: path, Op: op, Err: err}
}
