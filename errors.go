package pdostmt

import "github.com/pkg/errors"

var (
	ErrUnsupportedFetchMode = errors.New("pdostmt: unsupported fetch mode")
	ErrInvalidFetchArgument = errors.New("pdostmt: invalid fetch argument")
	ErrInvalidColumnIndex   = errors.New("pdostmt: invalid column index")
	ErrUnknownClass         = errors.New("pdostmt: unknown class")
)
