package erp

import "errors"

var (
	// ErrUnavailable indicates the ERP server is unreachable.
	ErrUnavailable = errors.New("erp server unavailable")

	// ErrTimeout indicates the ERP request exceeded the configured timeout.
	ErrTimeout = errors.New("erp request timed out")

	// ErrUnexpectedPayload indicates the ERP responded with a shape the
	// client does not recognize.
	ErrUnexpectedPayload = errors.New("unexpected erp response format")

	// ErrNotFound indicates the queried entity does not exist, e.g. no
	// employee with the given id or no summary for the parameters.
	ErrNotFound = errors.New("erp entity not found")
)
