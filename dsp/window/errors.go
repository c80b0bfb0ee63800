package window

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCoefficients = errors.New("window: empty coefficients")
	ErrZeroCoherentGain  = errors.New("window: zero coherent gain")
	ErrLengthMismatch    = errors.New("window: samples and coefficients differ in length")
)

func errBadSize(size int) error {
	return fmt.Errorf("window: size must be positive, got %d", size)
}
