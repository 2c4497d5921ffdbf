package collector

import "errors"

// ErrSymbolNotFound is returned when the data source does not know a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")
