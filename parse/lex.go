package parse

import (
	"errors"
	"fmt"

	"github.com/google/shlex"
)

// ErrUnterminated is returned when a command string cannot be split into words
var ErrUnterminated = errors.New("malformed command string")

// Split breaks a command string into argument words using POSIX shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnterminated, err)
	}

	return args, nil
}
