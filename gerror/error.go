package gerror

import "errors"

var (
	// ErrTooManyRedirects is used when a remote logo fetch exceeds the redirect cap
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrInvalidURL is used when a remote logo reference cannot be parsed as a URL
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidFormat is used when the configured logo format is not supported
	ErrInvalidFormat = errors.New("invalid logo format")

	// ErrInvalidSize is used when the configured logo size is not a positive integer
	ErrInvalidSize = errors.New("invalid logo size")

	// ErrInvalidInput is used when the input batch file root is not a JSON array
	ErrInvalidInput = errors.New("input file must contain a JSON array")
)
