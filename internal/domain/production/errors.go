package production

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrFactoryBusy is returned when a factory already runs an open batch
type ErrFactoryBusy struct {
	FactoryID uuid.UUID
	BatchID   uuid.UUID
}

func (e *ErrFactoryBusy) Error() string {
	return fmt.Sprintf("factory %s already has open batch %s", e.FactoryID, e.BatchID)
}

// ErrFactoryInactive is returned when production is requested on a deactivated factory
type ErrFactoryInactive struct {
	FactoryID uuid.UUID
}

func (e *ErrFactoryInactive) Error() string {
	return fmt.Sprintf("factory %s is inactive", e.FactoryID)
}
