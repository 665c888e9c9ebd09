package vectorstore

import "errors"

// Store contract errors
var (
	// ErrCollectionRequired indicates an empty collection name.
	ErrCollectionRequired = errors.New("collection name is required")

	// ErrEmptyVector indicates a query or item with no vector.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// collection's configured dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("vector store is closed")
)
