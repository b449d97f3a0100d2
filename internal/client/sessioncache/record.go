// Package sessioncache lets a cashier client resume an in-progress cash session
// across restarts. The cached record is only a hint: every read is reconciled
// against the ledger before the session is trusted.
package sessioncache

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrCorruptRecord is returned by stores whose persisted record cannot be decoded or validated.
var ErrCorruptRecord = errors.New("session cache record is corrupt")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Record is the locally persisted pointer to the active session.
type Record struct {
	SessionID  string    `json:"sessionID" validate:"required,uuid"`
	EmployeeID string    `json:"employeeID" validate:"required,max=64"`
	SavedAt    time.Time `json:"savedAt" validate:"required"`
}

// Validate checks that the record is complete.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}
