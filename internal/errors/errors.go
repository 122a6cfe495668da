package errors

import "errors"

// Доменные ошибки. Транспортный слой (handler, grpc_server) ошибки сборки документа не оборачивает.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrMissingField      = errors.New("missing required field")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
