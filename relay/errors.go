// SPDX-License-Identifier: EPL-2.0

package relay

import (
	"errors"
	"fmt"
)

var ErrClosed = errors.New("relay connection closed")

// TransportError reports a failure on the relay channel. It never affects
// local state; callers usually log it and carry on.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("relay %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
