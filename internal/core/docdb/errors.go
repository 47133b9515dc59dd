package docdb

import "errors"

var (
	// ErrUnsupportedOperation is returned when the store rejects a request it
	// cannot execute, such as a bulk write containing an unknown write model.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrWriteConcern is returned when a write was applied but the store could
	// not satisfy the requested write concern.
	ErrWriteConcern = errors.New("write concern violation")

	// ErrEmptyBatch is returned by BulkWrite when no write models are given.
	// It is a malformed request, not an unsupported one.
	ErrEmptyBatch = errors.New("bulk write requires at least one write model")
)
