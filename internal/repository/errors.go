// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service and handler layers to distinguish between different failure
// scenarios without inspecting driver-specific errors. For example,
// ErrSnapshotNotFound indicates that no inventory row exists for a
// requested (product, city) pair, which the order-entry workflow maps
// to its product-unavailable rejection.
package repository

import "errors"

// ErrSnapshotNotFound is returned when no inventory snapshot row exists
// for the requested (product, city) pair. The order-entry workflow
// translates this into a product-unavailable rejection; handlers map it
// to an HTTP 404 response.
var ErrSnapshotNotFound = errors.New("inventory snapshot not found")
