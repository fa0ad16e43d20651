package series

import "errors"

var (
	ErrMalformedSeries = errors.New("malformed series")
	ErrAxisMismatch    = errors.New("series date not present in axis")
)
