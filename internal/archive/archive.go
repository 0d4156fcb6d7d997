// Package archive provides optional object-storage archival of sync run
// reports. Backends include the local filesystem and S3-compatible
// storage.
package archive

import (
	"context"
	"errors"
)

// Common errors for archive operations.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrPutFailed      = errors.New("put failed")
	ErrGetFailed      = errors.New("get failed")
	ErrDeleteFailed   = errors.New("delete failed")
)

// ObjectStore abstracts the archival backend.
type ObjectStore interface {
	// Put stores an object at the given path, overwriting any existing
	// object.
	Put(ctx context.Context, objectPath string, data []byte) error

	// Get retrieves an object's content.
	Get(ctx context.Context, objectPath string) ([]byte, error)

	// Exists checks whether an object exists.
	Exists(ctx context.Context, objectPath string) (bool, error)

	// List returns all object paths under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes an object. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, objectPath string) error
}
