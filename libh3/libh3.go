// Package libh3 binds the libh3 v3 C library as a native.Library.
//
// The binding is compiled only with cgo and the h3 build tag:
//
//	go build -tags h3 ./...
//
// It links -lh3 and expects <h3/h3api.h> on the include path. Without the
// tag Open reports an unavailable error so the rest of the module builds and
// tests without the C library.
//
// Scratch memory must come from Allocator. Buffers handed to libh3 are read
// and written by C code and may not live on the Go heap.
package libh3

import (
	"github.com/wippyai/h3-runtime/native"
)

// Open returns the linked library.
func Open() (native.Library, error) {
	return open()
}

// Available reports whether this build links libh3.
func Available() bool {
	return available
}
