package observer

import (
	"fmt"

	"github.com/tailored-agentic-units/observers/identity"
)

// NotifyError records a handler failure during Notify.
type NotifyError struct {
	Owner identity.Key
	Index int
	Err   error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify member %d (owner %s): %v", e.Index, e.Owner, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
