package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

var ErrTotalMismatch = fmt.Errorf("%w: total price mismatch", ErrValidation)
