//go:build !cgo || !h3

package libh3

import (
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
)

const available = false

// Version returns the linked library version. Empty when not linked.
func Version() string { return "" }

func open() (native.Library, error) {
	return nil, errors.Unavailable("libh3 not linked: build with cgo and -tags h3")
}
