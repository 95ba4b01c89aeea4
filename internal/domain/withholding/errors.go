package withholding

import "errors"

var (
	ErrNoCells     = errors.New("no withholding cells supplied")
	ErrInvalidCell = errors.New("withholding cell has invalid values")
)
