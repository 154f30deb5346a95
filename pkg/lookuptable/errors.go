package lookuptable

import (
	"errors"
)

var (
	ErrEmpty          = errors.New("the table has no samples")
	ErrLengthMismatch = errors.New("the independent and dependent samples have different lengths")
	ErrNotSorted      = errors.New("the independent samples are not in non-decreasing order")
	ErrNaN            = errors.New("the samples contain NaN")
)
